// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCustomer creates a customer record with the given name and returns it.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", "test@example.com")
	record.Set("phone", "+48 600 100 200")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestOffer creates a draft offer linked to a customer and returns it.
func CreateTestOffer(t *testing.T, app *pocketbase.PocketBase, customerID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("offers")
	if err != nil {
		t.Fatalf("failed to find offers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("title", title)
	record.Set("status", "draft")
	record.Set("vat_percent", 23.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test offer: %v", err)
	}

	return record
}

// CreateTestScope creates an offer scope record.
func CreateTestScope(t *testing.T, app *pocketbase.PocketBase, offerID, name string, isExtras bool, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("offer_scopes")
	if err != nil {
		t.Fatalf("failed to find offer_scopes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("offer", offerID)
	record.Set("name", name)
	record.Set("is_extras", isExtras)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test scope: %v", err)
	}

	return record
}

// CreateTestOption creates an offer option record inside a scope.
func CreateTestOption(t *testing.T, app *pocketbase.PocketBase, offerID, scopeID, name string, isUpsell bool, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("offer_options")
	if err != nil {
		t.Fatalf("failed to find offer_options collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("offer", offerID)
	record.Set("scope", scopeID)
	record.Set("name", name)
	record.Set("is_upsell", isUpsell)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test option: %v", err)
	}

	return record
}

// CreateTestItem creates an offer item record inside an option.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, optionID, name string, quantity, unitPrice, discountPercent float64, optional bool, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("offer_items")
	if err != nil {
		t.Fatalf("failed to find offer_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("option", optionID)
	record.Set("name", name)
	record.Set("quantity", quantity)
	record.Set("unit_price", unitPrice)
	record.Set("discount_percent", discountPercent)
	record.Set("is_optional", optional)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// CreateTestReservation creates a reservation record linked to a customer.
func CreateTestReservation(t *testing.T, app *pocketbase.PocketBase, customerID, offerID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("reservations")
	if err != nil {
		t.Fatalf("failed to find reservations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", customerID)
	record.Set("offer", offerID)
	record.Set("status", "pending")
	record.Set("scheduled_at", "2026-09-01 10:00:00.000Z")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test reservation: %v", err)
	}

	return record
}

// SeedConfigurableOffer creates a full offer catalog for configurator tests:
// a Paint Protection scope with Standard/Premium variants and a Ceramic
// Boost upsell, an Interior scope with a fabric/leather single-select group,
// and an extras Add-ons scope. It returns the offer record plus a map of the
// created record ids keyed by a readable name.
func SeedConfigurableOffer(t *testing.T, app *pocketbase.PocketBase) (*core.Record, map[string]string) {
	t.Helper()

	customer := CreateTestCustomer(t, app, "Test Customer")
	offer := CreateTestOffer(t, app, customer.Id, "Vehicle Detailing Package")

	ids := map[string]string{"customer": customer.Id}

	paint := CreateTestScope(t, app, offer.Id, "Paint Protection", false, 1)
	interior := CreateTestScope(t, app, offer.Id, "Interior", false, 2)
	addons := CreateTestScope(t, app, offer.Id, "Add-ons", true, 3)
	ids["scope-paint"] = paint.Id
	ids["scope-interior"] = interior.Id
	ids["scope-addons"] = addons.Id

	standard := CreateTestOption(t, app, offer.Id, paint.Id, "Standard", false, 1)
	premium := CreateTestOption(t, app, offer.Id, paint.Id, "Premium", false, 2)
	boost := CreateTestOption(t, app, offer.Id, paint.Id, "Ceramic Boost", true, 3)
	interiorCare := CreateTestOption(t, app, offer.Id, interior.Id, "Interior Care", false, 1)
	addonPack := CreateTestOption(t, app, offer.Id, addons.Id, "Detailing Add-ons", false, 1)
	ids["opt-standard"] = standard.Id
	ids["opt-premium"] = premium.Id
	ids["opt-boost"] = boost.Id
	ids["opt-interior"] = interiorCare.Id
	ids["opt-addons"] = addonPack.Id

	ids["it-standard"] = CreateTestItem(t, app, standard.Id, "Standard sealant", 1, 1000, 0, false, 1).Id
	ids["it-premium"] = CreateTestItem(t, app, premium.Id, "Premium coating", 1, 1800, 10, false, 1).Id
	ids["it-boost"] = CreateTestItem(t, app, boost.Id, "Ceramic booster layer", 1, 200, 0, true, 1).Id
	ids["it-fabric"] = CreateTestItem(t, app, interiorCare.Id, "Fabric care", 1, 300, 0, false, 1).Id
	ids["it-leather"] = CreateTestItem(t, app, interiorCare.Id, "Leather care", 1, 450, 0, false, 2).Id
	ids["it-wax"] = CreateTestItem(t, app, addonPack.Id, "Hand wax", 1, 50, 0, true, 1).Id
	ids["it-trim"] = CreateTestItem(t, app, addonPack.Id, "Trim restore", 1, 75, 0, true, 2).Id

	return offer, ids
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
