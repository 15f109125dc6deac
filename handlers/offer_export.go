package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/services"
)

// loadOfferExportData assembles the export payload for one offer: header
// fields from the record, lines and totals recomputed from the stored
// selection.
func loadOfferExportData(app *pocketbase.PocketBase, offerID string) (services.OfferExportData, error) {
	offer, err := app.FindRecordById("offers", offerID)
	if err != nil {
		return services.OfferExportData{}, fmt.Errorf("export: offer %s not found: %w", offerID, err)
	}

	catalog, err := services.LoadOfferCatalog(app, offer.Id)
	if err != nil {
		return services.OfferExportData{}, fmt.Errorf("export: could not load catalog for offer %s: %w", offerID, err)
	}

	state := services.InitSelection(catalog, services.DecodeSnapshot(offer.GetString("selection_snapshot")))

	data := services.BuildOfferExportData(catalog, state)
	data.OfferNumber = offer.GetString("offer_number")
	data.Title = offer.GetString("title")
	data.CreatedDate = offer.GetDateTime("created").Time().Format("2006-01-02")
	data.HideUnitPrices = catalog.HideUnitPrices

	if customer, err := app.FindRecordById("customers", offer.GetString("customer")); err == nil {
		data.CustomerName = customer.GetString("name")
		data.CustomerEmail = customer.GetString("email")
	}

	return data, nil
}

// HandleOfferExportExcel streams the offer as an .xlsx download.
func HandleOfferExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		data, err := loadOfferExportData(app, id)
		if err != nil {
			log.Printf("offer_export: %v", err)
			return e.String(http.StatusNotFound, "Offer not found")
		}

		content, err := services.GenerateOfferExcel(data)
		if err != nil {
			log.Printf("offer_export: excel generation failed for offer %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Could not generate the Excel file.")
		}

		filename := fmt.Sprintf("offer-%s.xlsx", data.OfferNumber)
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(content)
		return err
	}
}

// HandleOfferExportPDF streams the offer as a PDF download.
func HandleOfferExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		data, err := loadOfferExportData(app, id)
		if err != nil {
			log.Printf("offer_export: %v", err)
			return e.String(http.StatusNotFound, "Offer not found")
		}

		content, err := services.GenerateOfferPDF(&data)
		if err != nil {
			log.Printf("offer_export: pdf generation failed for offer %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Could not generate the PDF file.")
		}

		filename := fmt.Sprintf("offer-%s.pdf", data.OfferNumber)
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(content)
		return err
	}
}
