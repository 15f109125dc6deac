package collections_test

import (
	"testing"

	"offerdesk/collections"
	"offerdesk/testhelpers"
)

func TestSeed_CreatesDemoData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	customers, err := app.FindRecordsByFilter("customers", "name = 'Anna Kowalska'", "", 0, 0, nil)
	if err != nil || len(customers) != 1 {
		t.Fatalf("expected the demo customer, got %d (err %v)", len(customers), err)
	}

	offers, err := app.FindRecordsByFilter("offers", "id != ''", "", 0, 0, nil)
	if err != nil || len(offers) != 1 {
		t.Fatalf("expected one demo offer, got %d (err %v)", len(offers), err)
	}
	offer := offers[0]
	if got := offer.GetString("title"); got != "Vehicle Detailing Package" {
		t.Errorf("unexpected demo offer title %q", got)
	}
	if got := offer.GetFloat("vat_percent"); got != 23 {
		t.Errorf("expected 23%% VAT on the demo offer, got %v", got)
	}

	scopes, _ := app.FindRecordsByFilter("offer_scopes", "offer = {:id}", "sort_order", 0, 0, map[string]any{"id": offer.Id})
	if len(scopes) != 3 {
		t.Fatalf("expected 3 demo scopes, got %d", len(scopes))
	}
	if !scopes[2].GetBool("is_extras") {
		t.Error("expected the last demo scope to be extras")
	}

	options, _ := app.FindRecordsByFilter("offer_options", "offer = {:id}", "sort_order", 0, 0, map[string]any{"id": offer.Id})
	if len(options) != 5 {
		t.Errorf("expected 5 demo options, got %d", len(options))
	}
}

func TestSeed_SkipsWhenOffersExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Existing Customer")
	testhelpers.CreateTestOffer(t, app, customer.Id, "Existing Offer")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	offers, _ := app.FindRecordsByFilter("offers", "id != ''", "", 0, 0, nil)
	if len(offers) != 1 {
		t.Errorf("Seed must be a no-op when offers exist, got %d offers", len(offers))
	}
	customers, _ := app.FindRecordsByFilter("customers", "name = 'Anna Kowalska'", "", 0, 0, nil)
	if len(customers) != 0 {
		t.Error("Seed must not create the demo customer when offers exist")
	}
}
