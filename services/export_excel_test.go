package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleExportData() OfferExportData {
	return OfferExportData{
		OfferNumber:  "OFF-2026-007",
		Title:        "Vehicle Detailing Package",
		CustomerName: "Anna Kowalska",
		CreatedDate:  "2026-08-28",
		Lines: []SelectedLine{
			{Group: "Premium", Description: "Premium coating", Quantity: 1, UnitPrice: 1800, DiscountPercent: 10, Total: 1620},
			{Group: "Ceramic Boost", Description: "Ceramic booster layer", Quantity: 1, UnitPrice: 200, Total: 200},
		},
		TotalNet:   1820,
		TotalGross: 2238.6,
		VATPercent: 23,
	}
}

func TestGenerateOfferExcel(t *testing.T) {
	data := sampleExportData()

	out, err := GenerateOfferExcel(data)
	if err != nil {
		t.Fatalf("GenerateOfferExcel: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "OFF-2026-007" {
		t.Errorf("expected sheet named after the offer number, got %q", sheet)
	}

	title, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue A1: %v", err)
	}
	if title != "Vehicle Detailing Package" {
		t.Errorf("expected title in A1, got %q", title)
	}

	desc, err := f.GetCellValue(sheet, "B7")
	if err != nil {
		t.Fatalf("GetCellValue B7: %v", err)
	}
	if desc != "Premium coating" {
		t.Errorf("expected first line description in B7, got %q", desc)
	}
}

func TestGenerateOfferExcel_HidesUnitPrices(t *testing.T) {
	data := sampleExportData()
	data.HideUnitPrices = true

	out, err := GenerateOfferExcel(data)
	if err != nil {
		t.Fatalf("GenerateOfferExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	unitPrice, err := f.GetCellValue(sheet, "D7")
	if err != nil {
		t.Fatalf("GetCellValue D7: %v", err)
	}
	if unitPrice != "-" {
		t.Errorf("expected hidden unit price, got %q", unitPrice)
	}

	// Line totals stay visible even when unit prices are hidden.
	lineTotal, err := f.GetCellValue(sheet, "F7")
	if err != nil {
		t.Fatalf("GetCellValue F7: %v", err)
	}
	if lineTotal == "-" || lineTotal == "" {
		t.Errorf("expected visible line total, got %q", lineTotal)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"Premium coating", "Premium coating"},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+48 600 000 000", "'+48 600 000 000"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.expect)
		}
	}
}
