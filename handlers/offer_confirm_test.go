package handlers

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"offerdesk/testhelpers"
)

func TestHandleOfferConfirm_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleOfferConfirm(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/confirm", offer.Id), url.Values{})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("offers", offer.Id)
	if err != nil {
		t.Fatalf("could not reload offer: %v", err)
	}
	if got := saved.GetString("status"); got != "accepted" {
		t.Errorf("expected status accepted, got %q", got)
	}
	// Default selection: Standard sealant at 1000 net, 23% VAT.
	if got := saved.GetFloat("total_net"); math.Abs(got-1000) > 1e-9 {
		t.Errorf("expected total_net 1000, got %v", got)
	}
	if got := saved.GetFloat("total_gross"); math.Abs(got-1230) > 1e-9 {
		t.Errorf("expected total_gross 1230, got %v", got)
	}
	if saved.GetString("accepted_at") == "" {
		t.Error("expected accepted_at to be set")
	}
	if strings.Contains(saved.GetString("selection_snapshot"), "selectedUpsells") {
		t.Error("confirmed snapshot must not carry the legacy selectedUpsells field")
	}
}

func TestHandleOfferConfirm_NoScopeSelected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)

	// A snapshot without an active scope, as left behind by clearing the
	// selection in an older build.
	offer.Set("selection_snapshot", `{"selectedScopeId":"","selectedVariants":{},"selectedOptionalItems":{},"selectedItemInOption":{}}`)
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not save offer: %v", err)
	}

	handler := HandleOfferConfirm(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/confirm", offer.Id), url.Values{})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	if got := saved.GetString("status"); got != "draft" {
		t.Errorf("failed confirm must leave status draft, got %q", got)
	}
	if got := saved.GetFloat("total_gross"); got != 0 {
		t.Errorf("failed confirm must not write totals, got %v", got)
	}
}

func TestHandleOfferConfirm_AlreadyAccepted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)
	offer.Set("status", "accepted")
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not accept offer: %v", err)
	}

	handler := HandleOfferConfirm(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/confirm", offer.Id), url.Values{})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleOfferReopen(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)
	offer.Set("status", "accepted")
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not accept offer: %v", err)
	}

	handler := HandleOfferReopen(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/reopen", offer.Id), url.Values{})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("offers", offer.Id)
	if got := saved.GetString("status"); got != "draft" {
		t.Errorf("expected status draft after reopen, got %q", got)
	}
}

func TestHandleOfferReopen_DraftRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, _ := testhelpers.SeedConfigurableOffer(t, app)

	handler := HandleOfferReopen(app)
	req, rec := postForm(t, fmt.Sprintf("/offers/%s/reopen", offer.Id), url.Values{})
	req.SetPathValue("id", offer.Id)

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestConfirmGuard_BlocksSecondEntry(t *testing.T) {
	if !beginConfirm("offer-a") {
		t.Fatal("first beginConfirm must succeed")
	}
	if beginConfirm("offer-a") {
		t.Error("second beginConfirm for the same offer must fail")
	}
	if !beginConfirm("offer-b") {
		t.Error("other offers must not be blocked")
	}
	endConfirm("offer-a")
	endConfirm("offer-b")
	if !beginConfirm("offer-a") {
		t.Error("beginConfirm must succeed again after endConfirm")
	}
	endConfirm("offer-a")
}
