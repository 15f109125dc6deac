package services_test

import (
	"testing"
	"time"

	"offerdesk/services"
	"offerdesk/testhelpers"
)

func TestGenerateOfferNumber_Sequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Numbering Customer")

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	first, err := services.GenerateOfferNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateOfferNumber: %v", err)
	}
	if first != "OFF-2026-001" {
		t.Errorf("expected OFF-2026-001 on an empty database, got %q", first)
	}

	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "First Offer")
	offer.Set("offer_number", first)
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not save offer: %v", err)
	}

	second, err := services.GenerateOfferNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateOfferNumber: %v", err)
	}
	if second != "OFF-2026-002" {
		t.Errorf("expected OFF-2026-002, got %q", second)
	}
}

func TestGenerateOfferNumber_NeverReusesAfterDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Numbering Customer")

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	first := testhelpers.CreateTestOffer(t, app, customer.Id, "First Offer")
	first.Set("offer_number", "OFF-2026-001")
	if err := app.Save(first); err != nil {
		t.Fatalf("could not save offer: %v", err)
	}
	second := testhelpers.CreateTestOffer(t, app, customer.Id, "Second Offer")
	second.Set("offer_number", "OFF-2026-002")
	if err := app.Save(second); err != nil {
		t.Fatalf("could not save offer: %v", err)
	}

	if err := app.Delete(first); err != nil {
		t.Fatalf("could not delete offer: %v", err)
	}

	number, err := services.GenerateOfferNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateOfferNumber: %v", err)
	}
	if number != "OFF-2026-003" {
		t.Errorf("expected OFF-2026-003 after a delete, got %q", number)
	}
}

func TestGenerateOfferNumber_RestartsEachYear(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	customer := testhelpers.CreateTestCustomer(t, app, "Numbering Customer")

	offer := testhelpers.CreateTestOffer(t, app, customer.Id, "Old Offer")
	offer.Set("offer_number", "OFF-2025-007")
	if err := app.Save(offer); err != nil {
		t.Fatalf("could not save offer: %v", err)
	}

	number, err := services.GenerateOfferNumber(app, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GenerateOfferNumber: %v", err)
	}
	if number != "OFF-2026-001" {
		t.Errorf("expected the sequence to restart in a new year, got %q", number)
	}
}

func TestLoadOfferCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	offer, ids := testhelpers.SeedConfigurableOffer(t, app)

	catalog, err := services.LoadOfferCatalog(app, offer.Id)
	if err != nil {
		t.Fatalf("LoadOfferCatalog: %v", err)
	}

	if catalog.VATPercent != 23 {
		t.Errorf("expected VAT 23, got %v", catalog.VATPercent)
	}
	if len(catalog.Scopes) != 3 {
		t.Fatalf("expected 3 scopes, got %d", len(catalog.Scopes))
	}
	if catalog.Scopes[0].Name != "Paint Protection" || catalog.Scopes[1].Name != "Interior" {
		t.Errorf("scopes not in sort order: %v, %v", catalog.Scopes[0].Name, catalog.Scopes[1].Name)
	}
	if !catalog.Scopes[2].IsExtras {
		t.Error("expected the add-ons scope to be extras")
	}

	if len(catalog.Options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(catalog.Options))
	}

	boost := catalog.OptionByID(ids["opt-boost"])
	if boost == nil || !boost.IsUpsell {
		t.Fatalf("expected the boost option to load as an upsell, got %+v", boost)
	}

	interior := catalog.OptionByID(ids["opt-interior"])
	if interior == nil {
		t.Fatal("interior option missing")
	}
	if len(interior.Items) != 2 {
		t.Fatalf("expected 2 interior items, got %d", len(interior.Items))
	}
	if interior.Items[0].Name != "Fabric care" || interior.Items[1].Name != "Leather care" {
		t.Errorf("items not in sort order: %v", interior.Items)
	}

	owner, item := catalog.ItemByID(ids["it-premium"])
	if owner == nil || owner.ID != ids["opt-premium"] {
		t.Fatalf("ItemByID returned wrong owner: %+v", owner)
	}
	if item.UnitPrice != 1800 || item.DiscountPercent != 10 {
		t.Errorf("premium item fields wrong: %+v", item)
	}
}

func TestLoadOfferCatalog_UnknownOffer(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := services.LoadOfferCatalog(app, "nonexistent"); err == nil {
		t.Error("expected error for unknown offer")
	}
}
