package services

// OfferTotals holds the recomputed price of a selection. Net and Gross are
// unrounded; rounding happens only at display time. OptionSubtotals carries
// the per-option net amounts shown next to each block of the configurator.
type OfferTotals struct {
	Net             float64
	Gross           float64
	OptionSubtotals map[string]float64
}

// LineTotal computes the price of one item line.
func LineTotal(quantity, unitPrice, discountPercent float64) float64 {
	return quantity * unitPrice * (1 - discountPercent/100)
}

// ComputeTotals derives the offer price from scratch on every call: the
// chosen variant of the active scope, the selected upsell items of that
// scope, and the selected items of every extras scope. Recomputing fully
// from the state keeps repeated calls identical -- there is no incremental
// bookkeeping to drift.
func ComputeTotals(catalog Catalog, state SelectionState) OfferTotals {
	totals := OfferTotals{OptionSubtotals: map[string]float64{}}

	if scope := catalog.ScopeByID(state.ActiveScope); scope != nil && !scope.IsExtras {
		if option := catalog.OptionByID(state.ChosenOption[scope.ID]); option != nil {
			mandatoryCount := len(option.MandatoryItems())
			for _, it := range option.Items {
				include := false
				switch {
				case it.Optional:
					include = state.SelectedOptionalItem[it.ID]
				case mandatoryCount > 1:
					include = it.ID == state.ChosenMandatoryItem[option.ID]
				default:
					include = true
				}
				if include {
					totals.OptionSubtotals[option.ID] += LineTotal(it.Quantity, it.UnitPrice, it.DiscountPercent)
				}
			}
			totals.Net += totals.OptionSubtotals[option.ID]
		}

		for _, upsell := range catalog.UpsellsOf(scope.ID) {
			for _, it := range upsell.Items {
				if state.SelectedOptionalItem[it.ID] {
					line := LineTotal(it.Quantity, it.UnitPrice, it.DiscountPercent)
					totals.OptionSubtotals[upsell.ID] += line
					totals.Net += line
				}
			}
		}
	}

	for i := range catalog.Options {
		opt := &catalog.Options[i]
		if !catalog.isExtrasOption(opt) {
			continue
		}
		for _, it := range opt.Items {
			if state.SelectedOptionalItem[it.ID] {
				line := LineTotal(it.Quantity, it.UnitPrice, it.DiscountPercent)
				totals.OptionSubtotals[opt.ID] += line
				totals.Net += line
			}
		}
	}

	totals.Gross = totals.Net * (1 + catalog.VATPercent/100)
	return totals
}

// SelectedLine is one priced line of the current selection, grouped for
// display and export.
type SelectedLine struct {
	Group           string
	Description     string
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
	Total           float64
}

// SelectedLines lists every line ComputeTotals would include, in catalog
// order, labelled with the owning option's name. The sum of the returned
// line totals equals ComputeTotals' net amount.
func SelectedLines(catalog Catalog, state SelectionState) []SelectedLine {
	var lines []SelectedLine

	appendLine := func(group string, it Item) {
		lines = append(lines, SelectedLine{
			Group:           group,
			Description:     it.Name,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			Total:           LineTotal(it.Quantity, it.UnitPrice, it.DiscountPercent),
		})
	}

	if scope := catalog.ScopeByID(state.ActiveScope); scope != nil && !scope.IsExtras {
		if option := catalog.OptionByID(state.ChosenOption[scope.ID]); option != nil {
			mandatoryCount := len(option.MandatoryItems())
			for _, it := range option.Items {
				switch {
				case it.Optional:
					if state.SelectedOptionalItem[it.ID] {
						appendLine(option.Name, it)
					}
				case mandatoryCount > 1:
					if it.ID == state.ChosenMandatoryItem[option.ID] {
						appendLine(option.Name, it)
					}
				default:
					appendLine(option.Name, it)
				}
			}
		}
		for _, upsell := range catalog.UpsellsOf(scope.ID) {
			for _, it := range upsell.Items {
				if state.SelectedOptionalItem[it.ID] {
					appendLine(upsell.Name, it)
				}
			}
		}
	}

	for i := range catalog.Options {
		opt := &catalog.Options[i]
		if !catalog.isExtrasOption(opt) {
			continue
		}
		for _, it := range opt.Items {
			if state.SelectedOptionalItem[it.ID] {
				appendLine(opt.Name, it)
			}
		}
	}

	return lines
}
