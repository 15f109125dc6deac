package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/services"
	"offerdesk/templates"
)

// offerForm carries the submitted offer fields through validation.
type offerForm struct {
	Title      string
	CustomerID string
	VATPercent string
	HidePrices bool
}

func (f offerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required"), validation.Length(2, 200)),
		validation.Field(&f.CustomerID, validation.Required.Error("pick a customer")),
		validation.Field(&f.VATPercent, validation.Required.Error("VAT rate is required"), validation.By(validVATPercent)),
	)
}

func validVATPercent(value any) error {
	raw, _ := value.(string)
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return validation.NewError("validation_vat", "must be a number")
	}
	if rate < 0 || rate > 100 {
		return validation.NewError("validation_vat", "must be between 0 and 100")
	}
	return nil
}

// formErrors flattens an ozzo validation result into field -> message.
func formErrors(err error) map[string]string {
	out := map[string]string{}
	if errs, ok := err.(validation.Errors); ok {
		for field, fieldErr := range errs {
			out[fieldKey(field)] = fieldErr.Error()
		}
	}
	return out
}

func fieldKey(structField string) string {
	switch structField {
	case "Title":
		return "title"
	case "CustomerID":
		return "customer"
	case "VATPercent":
		return "vat_percent"
	}
	return structField
}

func readOfferForm(r *http.Request) offerForm {
	return offerForm{
		Title:      r.FormValue("title"),
		CustomerID: r.FormValue("customer"),
		VATPercent: r.FormValue("vat_percent"),
		HidePrices: r.FormValue("hide_unit_prices") == "true",
	}
}

func customerChoices(app *pocketbase.PocketBase) []templates.CustomerChoice {
	records, err := app.FindRecordsByFilter("customers", "id != ''", "name", 0, 0, nil)
	if err != nil {
		log.Printf("offer_create: could not fetch customers: %v", err)
		return nil
	}
	choices := make([]templates.CustomerChoice, 0, len(records))
	for _, rec := range records {
		choices = append(choices, templates.CustomerChoice{ID: rec.Id, Name: rec.GetString("name")})
	}
	return choices
}

// HandleOfferCreate renders the empty offer form.
func HandleOfferCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.OfferFormData{
			VATPercent: "23",
			Customers:  customerChoices(app),
			Errors:     map[string]string{},
		}
		return renderPage(e, "New offer", templates.OfferForm(data))
	}
}

// HandleOfferSave creates a new draft offer from the submitted form and
// assigns it the next offer number.
func HandleOfferSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form := readOfferForm(e.Request)

		if err := form.Validate(); err != nil {
			data := templates.OfferFormData{
				Title:      form.Title,
				CustomerID: form.CustomerID,
				VATPercent: form.VATPercent,
				HidePrices: form.HidePrices,
				Customers:  customerChoices(app),
				Errors:     formErrors(err),
			}
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			return renderPage(e, "New offer", templates.OfferForm(data))
		}

		col, err := app.FindCollectionByNameOrId("offers")
		if err != nil {
			log.Printf("offer_create: offers collection missing: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		number, err := services.GenerateOfferNumber(app, time.Now())
		if err != nil {
			log.Printf("offer_create: could not generate offer number: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		vat, _ := strconv.ParseFloat(form.VATPercent, 64)

		record := core.NewRecord(col)
		record.Set("title", form.Title)
		record.Set("customer", form.CustomerID)
		record.Set("offer_number", number)
		record.Set("status", "draft")
		record.Set("vat_percent", vat)
		record.Set("hide_unit_prices", form.HidePrices)

		if err := app.Save(record); err != nil {
			log.Printf("offer_create: could not save offer: %v", err)
			return e.String(http.StatusInternalServerError, "Could not save the offer. Please try again.")
		}

		return e.Redirect(http.StatusSeeOther, "/offers/"+record.Id)
	}
}

// HandleOfferEdit renders the form pre-filled with an existing offer.
func HandleOfferEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		offer, err := app.FindRecordById("offers", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Offer not found")
		}

		data := templates.OfferFormData{
			ID:         offer.Id,
			Title:      offer.GetString("title"),
			CustomerID: offer.GetString("customer"),
			VATPercent: strconv.FormatFloat(offer.GetFloat("vat_percent"), 'f', -1, 64),
			HidePrices: offer.GetBool("hide_unit_prices"),
			Customers:  customerChoices(app),
			Errors:     map[string]string{},
		}
		return renderPage(e, "Edit offer", templates.OfferForm(data))
	}
}

// HandleOfferUpdate saves edits to an existing offer's header fields. The
// selection itself is edited in the configurator, not here.
func HandleOfferUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		offer, err := app.FindRecordById("offers", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Offer not found")
		}

		form := readOfferForm(e.Request)
		if err := form.Validate(); err != nil {
			data := templates.OfferFormData{
				ID:         offer.Id,
				Title:      form.Title,
				CustomerID: form.CustomerID,
				VATPercent: form.VATPercent,
				HidePrices: form.HidePrices,
				Customers:  customerChoices(app),
				Errors:     formErrors(err),
			}
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			return renderPage(e, "Edit offer", templates.OfferForm(data))
		}

		vat, _ := strconv.ParseFloat(form.VATPercent, 64)
		offer.Set("title", form.Title)
		offer.Set("customer", form.CustomerID)
		offer.Set("vat_percent", vat)
		offer.Set("hide_unit_prices", form.HidePrices)

		if err := app.Save(offer); err != nil {
			log.Printf("offer_create: could not update offer %s: %v", offer.Id, err)
			return e.String(http.StatusInternalServerError, "Could not save the offer. Please try again.")
		}

		return e.Redirect(http.StatusSeeOther, "/offers/"+offer.Id)
	}
}

// HandleOfferDelete removes an offer together with its catalog rows.
func HandleOfferDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		offer, err := app.FindRecordById("offers", e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Offer not found")
		}

		if err := app.Delete(offer); err != nil {
			log.Printf("offer_create: could not delete offer %s: %v", offer.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete the offer.")
		}

		SetToast(e, "success", "Offer deleted.")
		return e.String(http.StatusOK, "")
	}
}
