package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"offerdesk/testhelpers"
)

func TestHandleReservationSave_CreatesPendingReservation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Booking Customer")

	handler := HandleReservationSave(app)
	req, rec := postForm(t, "/reservations", url.Values{
		"customer":     {customer.Id},
		"scheduled_at": {"2026-09-15T10:30"},
		"notes":        {"morning slot"},
	})

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	reservations, err := app.FindRecordsByFilter("reservations", "id != ''", "", 0, 0, nil)
	if err != nil || len(reservations) != 1 {
		t.Fatalf("expected exactly one reservation, got %d (err %v)", len(reservations), err)
	}
	if got := reservations[0].GetString("status"); got != "pending" {
		t.Errorf("expected pending status, got %q", got)
	}
	if got := reservations[0].GetString("customer"); got != customer.Id {
		t.Errorf("expected customer relation, got %q", got)
	}
}

func TestHandleReservationSave_MissingFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleReservationSave(app)
	req, rec := postForm(t, "/reservations", url.Values{})

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "pick a customer", "scheduled time is required")
}

func TestHandleReservationList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Booking Customer")
	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "Linked Offer")
	testhelpers.CreateTestReservation(t, app, customer.Id, offer.Id)

	handler := HandleReservationList(app)
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Booking Customer", "Linked Offer", "pending")
}

func TestHandleReservationDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Booking Customer")
	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "Linked Offer")
	reservation := testhelpers.CreateTestReservation(t, app, customer.Id, offer.Id)

	handler := HandleReservationDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/reservations/%s", reservation.Id), nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", reservation.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("reservations", reservation.Id); err == nil {
		t.Error("expected reservation to be deleted")
	}
}
