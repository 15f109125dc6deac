package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"offerdesk/testhelpers"
)

func TestHandleOfferSave_CreatesDraftWithNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Offer Customer")

	handler := HandleOfferSave(app)
	req, rec := postForm(t, "/offers", url.Values{
		"title":       {"Spring Detailing"},
		"customer":    {customer.Id},
		"vat_percent": {"23"},
	})

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	offers, err := app.FindRecordsByFilter("offers", "title = 'Spring Detailing'", "", 0, 0, nil)
	if err != nil || len(offers) != 1 {
		t.Fatalf("expected exactly one created offer, got %d (err %v)", len(offers), err)
	}
	offer := offers[0]
	if got := offer.GetString("status"); got != "draft" {
		t.Errorf("expected draft status, got %q", got)
	}
	if num := offer.GetString("offer_number"); !strings.HasPrefix(num, "OFF-") {
		t.Errorf("expected generated offer number, got %q", num)
	}
	if loc := rec.Header().Get("Location"); loc != "/offers/"+offer.Id {
		t.Errorf("expected redirect to the new offer, got %q", loc)
	}
}

func TestHandleOfferSave_ValidationErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleOfferSave(app)
	req, rec := postForm(t, "/offers", url.Values{
		"title":       {""},
		"customer":    {""},
		"vat_percent": {"abc"},
	})

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"title is required",
		"pick a customer",
		"must be a number",
	)

	offers, _ := app.FindRecordsByFilter("offers", "id != ''", "", 0, 0, nil)
	if len(offers) != 0 {
		t.Errorf("invalid form must not create offers, got %d", len(offers))
	}
}

func TestHandleOfferUpdate_SavesHeaderFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Offer Customer")
	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "Old Title")

	handler := HandleOfferUpdate(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/save", offer.Id), url.Values{
		"title":            {"New Title"},
		"customer":         {customer.Id},
		"vat_percent":      {"8"},
		"hide_unit_prices": {"true"},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	if got := saved.GetString("title"); got != "New Title" {
		t.Errorf("expected updated title, got %q", got)
	}
	if got := saved.GetFloat("vat_percent"); got != 8 {
		t.Errorf("expected vat 8, got %v", got)
	}
	if !saved.GetBool("hide_unit_prices") {
		t.Error("expected hide_unit_prices to be set")
	}
}

func TestHandleOfferDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Offer Customer")
	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "Doomed Offer")

	handler := HandleOfferDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/offers/%s", offer.Id), nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", offer.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("offers", offer.Id); err == nil {
		t.Error("expected offer to be deleted")
	}
}

func TestHandleOfferView_RendersConfigurator(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleOfferView(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/offers/%s", offer.Id), nil)
	req.SetPathValue("id", offer.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Vehicle Detailing Package",
		"Paint Protection",
		"Interior",
		"Add-ons",
		"Standard",
		"Premium",
		"Ceramic Boost",
		`id="configurator"`,
	)
}

func TestHandleOfferView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleOfferView(app)
	req := httptest.NewRequest(http.MethodGet, "/offers/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
