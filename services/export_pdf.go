package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateOfferPDF creates the customer-facing PDF document for a configured
// offer using maroto/v2. It returns the raw PDF bytes or an error.
func GenerateOfferPDF(data *OfferExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addOfferHeader(m, data)
	addOfferCustomerBlock(m, data)
	addOfferLinesTable(m, data)
	addOfferTotals(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate offer PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addOfferHeader adds the offer title, the "OFFER" banner and the offer
// number.
func addOfferHeader(m core.Maroto, data *OfferExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("OFFER", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Date: "+data.CreatedDate, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(data.OfferNumber, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addOfferCustomerBlock adds the customer name and contact line.
func addOfferCustomerBlock(m core.Maroto, data *OfferExportData) {
	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	boldValue := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("PREPARED FOR", sectionLabel)).WithStyle(headerCell),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(data.CustomerName, boldValue)),
		),
	)
	if data.CustomerEmail != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(data.CustomerEmail, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addOfferLinesTable adds the selected lines as a table. Unit prices and
// discounts are blanked when the offer hides them.
func addOfferLinesTable(m core.Maroto, data *OfferExportData) {
	headerStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	headerRight := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	cellStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	cellRight := props.Text{
		Size:  8,
		Align: align.Right,
	}

	headerBg := &props.Cell{BackgroundColor: &props.Color{Red: 51, Green: 51, Blue: 51}}
	white := &props.Color{Red: 255, Green: 255, Blue: 255}
	headerStyle.Color = white
	headerRight.Color = white

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Group", headerStyle)).WithStyle(headerBg),
			col.New(4).Add(text.New("Description", headerStyle)).WithStyle(headerBg),
			col.New(1).Add(text.New("Qty", headerRight)).WithStyle(headerBg),
			col.New(2).Add(text.New("Unit Price", headerRight)).WithStyle(headerBg),
			col.New(2).Add(text.New("Total", headerRight)).WithStyle(headerBg),
		),
	)

	for _, line := range data.Lines {
		unitPrice := FormatPLN(line.UnitPrice)
		if data.HideUnitPrices {
			unitPrice = "-"
		}
		description := line.Description
		if line.DiscountPercent > 0 && !data.HideUnitPrices {
			description = fmt.Sprintf("%s (%s off)", line.Description, FormatPercent(line.DiscountPercent))
		}
		m.AddRows(
			row.New(7).Add(
				col.New(3).Add(text.New(line.Group, cellStyle)),
				col.New(4).Add(text.New(description, cellStyle)),
				col.New(1).Add(text.New(fmt.Sprintf("%g", line.Quantity), cellRight)),
				col.New(2).Add(text.New(unitPrice, cellRight)),
				col.New(2).Add(text.New(FormatPLN(line.Total), cellRight)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addOfferTotals adds the net and gross totals block.
func addOfferTotals(m core.Maroto, data *OfferExportData) {
	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Align: align.Right,
	}
	grandStyle := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Total net:", labelStyle)),
			col.New(3).Add(text.New(FormatPLN(data.TotalNet), valueStyle)),
		),
		row.New(7).Add(
			col.New(9).Add(text.New(fmt.Sprintf("VAT (%s):", FormatPercent(data.VATPercent)), labelStyle)),
			col.New(3).Add(text.New(FormatPLN(data.TotalGross-data.TotalNet), valueStyle)),
		),
		row.New(9).Add(
			col.New(9).Add(text.New("Total gross:", grandStyle)),
			col.New(3).Add(text.New(FormatPLN(data.TotalGross), grandStyle)),
		),
	)
}
