package services

// OfferExportData holds everything the Excel and PDF exports need for one
// offer: the header fields, the lines the customer actually selected and the
// totals that were computed from the same selection.
type OfferExportData struct {
	OfferNumber    string
	Title          string
	CustomerName   string
	CustomerEmail  string
	CreatedDate    string
	Lines          []SelectedLine
	TotalNet       float64
	TotalGross     float64
	VATPercent     float64
	HideUnitPrices bool
}

// BuildOfferExportData assembles export data from a catalog and the current
// selection. Lines come from SelectedLines so the export always matches what
// the configurator showed.
func BuildOfferExportData(catalog Catalog, state SelectionState) OfferExportData {
	totals := ComputeTotals(catalog, state)
	return OfferExportData{
		Lines:      SelectedLines(catalog, state),
		TotalNet:   totals.Net,
		TotalGross: totals.Gross,
		VATPercent: catalog.VATPercent,
	}
}
