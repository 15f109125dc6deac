package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// LoadOfferCatalog assembles the read-only catalog tree for one offer from
// the offer_scopes, offer_options and offer_items collections. Scopes,
// options and items come back sorted by their sort_order, which is the order
// the rest of the engine relies on.
func LoadOfferCatalog(app *pocketbase.PocketBase, offerID string) (Catalog, error) {
	offer, err := app.FindRecordById("offers", offerID)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: offer %s not found: %w", offerID, err)
	}

	catalog := Catalog{
		VATPercent:     offer.GetFloat("vat_percent"),
		HideUnitPrices: offer.GetBool("hide_unit_prices"),
	}

	scopeRecords, err := app.FindRecordsByFilter(
		"offer_scopes",
		"offer = {:offerId}",
		"sort_order",
		0,
		0,
		map[string]any{"offerId": offerID},
	)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: could not fetch scopes for offer %s: %w", offerID, err)
	}
	for _, rec := range scopeRecords {
		catalog.Scopes = append(catalog.Scopes, Scope{
			ID:        rec.Id,
			Name:      rec.GetString("name"),
			IsExtras:  rec.GetBool("is_extras"),
			SortOrder: rec.GetInt("sort_order"),
		})
	}

	optionRecords, err := app.FindRecordsByFilter(
		"offer_options",
		"offer = {:offerId}",
		"sort_order",
		0,
		0,
		map[string]any{"offerId": offerID},
	)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: could not fetch options for offer %s: %w", offerID, err)
	}

	for _, rec := range optionRecords {
		option := Option{
			ID:        rec.Id,
			Name:      rec.GetString("name"),
			ScopeID:   rec.GetString("scope"),
			IsUpsell:  rec.GetBool("is_upsell"),
			SortOrder: rec.GetInt("sort_order"),
		}

		itemRecords, err := app.FindRecordsByFilter(
			"offer_items",
			"option = {:optionId}",
			"sort_order",
			0,
			0,
			map[string]any{"optionId": rec.Id},
		)
		if err != nil {
			return Catalog{}, fmt.Errorf("load catalog: could not fetch items for option %s: %w", rec.Id, err)
		}
		for _, ir := range itemRecords {
			option.Items = append(option.Items, Item{
				ID:              ir.Id,
				Name:            ir.GetString("name"),
				Quantity:        ir.GetFloat("quantity"),
				UnitPrice:       ir.GetFloat("unit_price"),
				DiscountPercent: ir.GetFloat("discount_percent"),
				Optional:        ir.GetBool("is_optional"),
				SortOrder:       ir.GetInt("sort_order"),
			})
		}

		catalog.Options = append(catalog.Options, option)
	}

	return catalog, nil
}
