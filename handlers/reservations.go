package handlers

import (
	"log"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/templates"
)

type reservationForm struct {
	CustomerID  string
	OfferID     string
	ScheduledAt string
	Notes       string
}

func (f reservationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CustomerID, validation.Required.Error("pick a customer")),
		validation.Field(&f.ScheduledAt, validation.Required.Error("scheduled time is required"), validation.By(validSchedule)),
	)
}

func validSchedule(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02T15:04", raw); err != nil {
		return validation.NewError("validation_schedule", "must be a valid date and time")
	}
	return nil
}

func reservationFormErrors(err error) map[string]string {
	out := map[string]string{}
	if errs, ok := err.(validation.Errors); ok {
		for field, fieldErr := range errs {
			switch field {
			case "CustomerID":
				out["customer"] = fieldErr.Error()
			case "ScheduledAt":
				out["scheduled_at"] = fieldErr.Error()
			default:
				out[field] = fieldErr.Error()
			}
		}
	}
	return out
}

func offerChoices(app *pocketbase.PocketBase) []templates.OfferChoice {
	records, err := app.FindRecordsByFilter("offers", "id != ''", "-created", 0, 0, nil)
	if err != nil {
		log.Printf("reservations: could not fetch offers: %v", err)
		return nil
	}
	choices := make([]templates.OfferChoice, 0, len(records))
	for _, rec := range records {
		choices = append(choices, templates.OfferChoice{ID: rec.Id, Title: rec.GetString("title")})
	}
	return choices
}

// HandleReservationList renders the reservation list page.
func HandleReservationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("reservations", "id != ''", "scheduled_at", 0, 0, nil)
		if err != nil {
			log.Printf("reservations: HandleReservationList: could not fetch reservations: %v", err)
			records = nil
		}

		var rows []templates.ReservationRow
		for _, rec := range records {
			row := templates.ReservationRow{
				ID:     rec.Id,
				Status: rec.GetString("status"),
				Notes:  rec.GetString("notes"),
			}
			if sched := rec.GetDateTime("scheduled_at"); !sched.IsZero() {
				row.ScheduledAt = sched.Time().Format("2006-01-02 15:04")
			}
			if customer, err := app.FindRecordById("customers", rec.GetString("customer")); err == nil {
				row.CustomerName = customer.GetString("name")
			}
			if offerID := rec.GetString("offer"); offerID != "" {
				if offer, err := app.FindRecordById("offers", offerID); err == nil {
					row.OfferTitle = offer.GetString("title")
				}
			}
			rows = append(rows, row)
		}

		return renderPage(e, "Reservations", templates.ReservationList(rows))
	}
}

// HandleReservationCreate renders the empty reservation form.
func HandleReservationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ReservationFormData{
			Customers: customerChoices(app),
			Offers:    offerChoices(app),
			Errors:    map[string]string{},
		}
		return renderPage(e, "New reservation", templates.ReservationForm(data))
	}
}

// HandleReservationSave creates a pending reservation from the submitted form.
func HandleReservationSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form := reservationForm{
			CustomerID:  e.Request.FormValue("customer"),
			OfferID:     e.Request.FormValue("offer"),
			ScheduledAt: e.Request.FormValue("scheduled_at"),
			Notes:       e.Request.FormValue("notes"),
		}

		if err := form.Validate(); err != nil {
			data := templates.ReservationFormData{
				CustomerID:  form.CustomerID,
				OfferID:     form.OfferID,
				ScheduledAt: form.ScheduledAt,
				Notes:       form.Notes,
				Customers:   customerChoices(app),
				Offers:      offerChoices(app),
				Errors:      reservationFormErrors(err),
			}
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			return renderPage(e, "New reservation", templates.ReservationForm(data))
		}

		col, err := app.FindCollectionByNameOrId("reservations")
		if err != nil {
			log.Printf("reservations: reservations collection missing: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		scheduled, _ := time.Parse("2006-01-02T15:04", form.ScheduledAt)

		record := core.NewRecord(col)
		record.Set("customer", form.CustomerID)
		record.Set("offer", form.OfferID)
		record.Set("status", "pending")
		record.Set("scheduled_at", scheduled.UTC().Format(time.RFC3339))
		record.Set("notes", form.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("reservations: could not save reservation: %v", err)
			return e.String(http.StatusInternalServerError, "Could not save the reservation. Please try again.")
		}

		return e.Redirect(http.StatusSeeOther, "/reservations")
	}
}

// HandleReservationDelete removes a reservation.
func HandleReservationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		reservation, err := app.FindRecordById("reservations", e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Reservation not found")
		}

		if err := app.Delete(reservation); err != nil {
			log.Printf("reservations: could not delete reservation %s: %v", reservation.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete the reservation.")
		}

		SetToast(e, "success", "Reservation deleted.")
		return e.String(http.StatusOK, "")
	}
}
