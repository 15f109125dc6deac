package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	sortOrder       int
	name            string
	quantity        float64
	unitPrice       float64
	discountPercent float64
	optional        bool
}

type optionDef struct {
	sortOrder int
	name      string
	isUpsell  bool
	items     []itemDef
}

type scopeDef struct {
	sortOrder int
	name      string
	isExtras  bool
	options   []optionDef
}

type offerDef struct {
	title          string
	vatPercent     float64
	hideUnitPrices bool
	scopes         []scopeDef
}

// demoOffer is the catalog seeded for a fresh installation: a car-detailing
// offer with two competing paint packages, an upsell, an interior variant
// with a fabric/leather single-select group, and independent add-ons.
var demoOffer = offerDef{
	title:      "Vehicle Detailing Package",
	vatPercent: 23,
	scopes: []scopeDef{
		{
			sortOrder: 1,
			name:      "Paint Protection",
			options: []optionDef{
				{
					sortOrder: 1,
					name:      "Standard",
					items: []itemDef{
						{sortOrder: 1, name: "Standard sealant", quantity: 1, unitPrice: 1000},
					},
				},
				{
					sortOrder: 2,
					name:      "Premium",
					items: []itemDef{
						{sortOrder: 1, name: "Premium ceramic coating", quantity: 1, unitPrice: 1800, discountPercent: 10},
					},
				},
				{
					sortOrder: 3,
					name:      "Ceramic Boost",
					isUpsell:  true,
					items: []itemDef{
						{sortOrder: 1, name: "Ceramic booster layer", quantity: 1, unitPrice: 200, optional: true},
					},
				},
			},
		},
		{
			sortOrder: 2,
			name:      "Interior",
			options: []optionDef{
				{
					sortOrder: 1,
					name:      "Interior Care",
					items: []itemDef{
						{sortOrder: 1, name: "Fabric care", quantity: 1, unitPrice: 300},
						{sortOrder: 2, name: "Leather care", quantity: 1, unitPrice: 450},
						{sortOrder: 3, name: "Cabin scent treatment", quantity: 1, unitPrice: 40, optional: true},
					},
				},
			},
		},
		{
			sortOrder: 3,
			name:      "Add-ons",
			isExtras:  true,
			options: []optionDef{
				{
					sortOrder: 1,
					name:      "Detailing Add-ons",
					items: []itemDef{
						{sortOrder: 1, name: "Hand wax finish", quantity: 1, unitPrice: 50, optional: true},
						{sortOrder: 2, name: "Trim restore", quantity: 1, unitPrice: 75, optional: true},
					},
				},
			},
		},
	},
}

// Seed inserts a demo customer with one configurable offer. It returns early
// when any offer already exists, so startups after the first are no-ops.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindRecordsByFilter("offers", "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	customersCol, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		return fmt.Errorf("seed: could not find customers collection: %w", err)
	}

	customer := core.NewRecord(customersCol)
	customer.Set("name", "Anna Kowalska")
	customer.Set("email", "anna.kowalska@example.com")
	customer.Set("phone", "+48 600 000 000")
	if err := app.Save(customer); err != nil {
		return fmt.Errorf("seed: could not save demo customer: %w", err)
	}

	if err := seedOffer(app, customer.Id, demoOffer); err != nil {
		return err
	}

	log.Println("Seeded demo customer and offer.")
	return nil
}

func seedOffer(app *pocketbase.PocketBase, customerID string, def offerDef) error {
	offersCol, err := app.FindCollectionByNameOrId("offers")
	if err != nil {
		return fmt.Errorf("seed: could not find offers collection: %w", err)
	}
	scopesCol, err := app.FindCollectionByNameOrId("offer_scopes")
	if err != nil {
		return fmt.Errorf("seed: could not find offer_scopes collection: %w", err)
	}
	optionsCol, err := app.FindCollectionByNameOrId("offer_options")
	if err != nil {
		return fmt.Errorf("seed: could not find offer_options collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("offer_items")
	if err != nil {
		return fmt.Errorf("seed: could not find offer_items collection: %w", err)
	}

	offer := core.NewRecord(offersCol)
	offer.Set("customer", customerID)
	offer.Set("title", def.title)
	offer.Set("status", "draft")
	offer.Set("vat_percent", def.vatPercent)
	offer.Set("hide_unit_prices", def.hideUnitPrices)
	if err := app.Save(offer); err != nil {
		return fmt.Errorf("seed: could not save offer %q: %w", def.title, err)
	}

	for _, sd := range def.scopes {
		scope := core.NewRecord(scopesCol)
		scope.Set("offer", offer.Id)
		scope.Set("name", sd.name)
		scope.Set("is_extras", sd.isExtras)
		scope.Set("sort_order", sd.sortOrder)
		if err := app.Save(scope); err != nil {
			return fmt.Errorf("seed: could not save scope %q: %w", sd.name, err)
		}

		for _, od := range sd.options {
			option := core.NewRecord(optionsCol)
			option.Set("offer", offer.Id)
			option.Set("scope", scope.Id)
			option.Set("name", od.name)
			option.Set("is_upsell", od.isUpsell)
			option.Set("sort_order", od.sortOrder)
			if err := app.Save(option); err != nil {
				return fmt.Errorf("seed: could not save option %q: %w", od.name, err)
			}

			for _, id := range od.items {
				item := core.NewRecord(itemsCol)
				item.Set("option", option.Id)
				item.Set("name", id.name)
				item.Set("quantity", id.quantity)
				item.Set("unit_price", id.unitPrice)
				item.Set("discount_percent", id.discountPercent)
				item.Set("is_optional", id.optional)
				item.Set("sort_order", id.sortOrder)
				if err := app.Save(item); err != nil {
					return fmt.Errorf("seed: could not save item %q: %w", id.name, err)
				}
			}
		}
	}

	return nil
}
