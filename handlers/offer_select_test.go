package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"offerdesk/services"
	"offerdesk/testhelpers"
)

func postForm(t *testing.T, path string, values url.Values) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req, httptest.NewRecorder()
}

func TestHandleChooseVariant_UpdatesSnapshot(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, ids := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleChooseVariant(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/select/variant", offer.Id), url.Values{
		"scope":  {ids["scope-paint"]},
		"option": {ids["opt-premium"]},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	saved, err := app.FindRecordById("offers", offer.Id)
	if err != nil {
		t.Fatalf("could not reload offer: %v", err)
	}
	snap := services.DecodeSnapshot(saved.GetString("selection_snapshot"))
	if snap == nil {
		t.Fatal("expected a persisted snapshot")
	}
	if got := snap.SelectedVariants[ids["scope-paint"]]; got != ids["opt-premium"] {
		t.Errorf("expected premium variant persisted, got %q", got)
	}
	if snap.SelectedScopeID != ids["scope-paint"] {
		t.Errorf("expected paint scope active, got %q", snap.SelectedScopeID)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="configurator"`, "Premium")
}

func TestHandleChooseVariant_AcceptedOfferIsFrozen(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, ids := testhelpers.SeedConfigurableOffer(t, app)
	offer.Set("status", "accepted")
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not accept offer: %v", err)
	}

	handler := HandleChooseVariant(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/select/variant", offer.Id), url.Values{
		"scope":  {ids["scope-paint"]},
		"option": {ids["opt-premium"]},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none on rejected action")
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	if saved.GetString("selection_snapshot") != "" {
		t.Error("accepted offer's snapshot must not change")
	}
}

func TestHandleToggleItem_PersistsToggle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, ids := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleToggleItem(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/select/item", offer.Id), url.Values{
		"item": {ids["it-wax"]},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	snap := services.DecodeSnapshot(saved.GetString("selection_snapshot"))
	if snap == nil || !snap.SelectedOptionalItems[ids["it-wax"]] {
		t.Errorf("expected it-wax selected in snapshot, got %+v", snap)
	}
}

func TestHandleToggleItem_UnknownItemRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleToggleItem(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/select/item", offer.Id), url.Values{
		"item": {"nonexistent"},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none on rejected action")
	}
}

func TestHandlePickIncludedItem_PersistsPick(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, ids := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandlePickIncludedItem(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/select/included", offer.Id), url.Values{
		"option": {ids["opt-interior"]},
		"item":   {ids["it-leather"]},
	})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	snap := services.DecodeSnapshot(saved.GetString("selection_snapshot"))
	if snap == nil {
		t.Fatal("expected a persisted snapshot")
	}
	if got := snap.SelectedItemInOption[ids["opt-interior"]]; got != ids["it-leather"] {
		t.Errorf("expected leather pick persisted, got %q", got)
	}
}
