package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateOfferExcel creates an Excel summary of a configured offer and
// returns the file contents as a byte slice.
func GenerateOfferExcel(data OfferExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars by the format.
	sheetName := data.OfferNumber
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Offer"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{24, 40, 8, 16, 10, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge offer number: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Offer: "+data.OfferNumber)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge customer: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Customer: "+sanitizeExcelCell(data.CustomerName))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	if err := f.MergeCell(sheetName, "A4", lastCol+"4"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A4", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Column headers ──────────────────────────────────────────────────

	headers := []string{"Group", "Description", "Qty", "Unit Price", "Discount", "Line Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Line rows ───────────────────────────────────────────────────────

	row := 7
	for _, line := range data.Lines {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(line.Group))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(line.Description))
		f.SetCellValue(sheetName, "C"+rowStr, line.Quantity)
		if data.HideUnitPrices {
			f.SetCellValue(sheetName, "D"+rowStr, "-")
			f.SetCellValue(sheetName, "E"+rowStr, "-")
		} else {
			f.SetCellValue(sheetName, "D"+rowStr, FormatPLN(line.UnitPrice))
			f.SetCellValue(sheetName, "E"+rowStr, FormatPercent(line.DiscountPercent))
		}
		f.SetCellValue(sheetName, "F"+rowStr, FormatPLN(line.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++

	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "E"+summaryRow, "Total net:")
	f.SetCellStyle(sheetName, "E"+summaryRow, "E"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "F"+summaryRow, FormatPLN(data.TotalNet))
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "E"+summaryRow, fmt.Sprintf("Total gross (VAT %s):", FormatPercent(data.VATPercent)))
	f.SetCellStyle(sheetName, "E"+summaryRow, "E"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "F"+summaryRow, FormatPLN(data.TotalGross))
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +,
// -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin black borders for all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
