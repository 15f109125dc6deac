package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/services"
	"offerdesk/templates"
)

// HandleOfferList returns a handler that renders the offer list page.
func HandleOfferList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("offers", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("offer_view: HandleOfferList: could not fetch offers: %v", err)
			records = nil
		}

		var rows []templates.OfferRow
		for _, rec := range records {
			row := templates.OfferRow{
				ID:          rec.Id,
				OfferNumber: rec.GetString("offer_number"),
				Title:       rec.GetString("title"),
				Status:      rec.GetString("status"),
				Created:     rec.GetDateTime("created").Time().Format("2006-01-02"),
			}
			if customer, err := app.FindRecordById("customers", rec.GetString("customer")); err == nil {
				row.CustomerName = customer.GetString("name")
			}
			if rec.GetString("status") == "accepted" {
				row.TotalGross = services.FormatPLN(rec.GetFloat("total_gross"))
			}
			rows = append(rows, row)
		}

		return renderPage(e, "Offers", templates.OfferList(rows))
	}
}

// HandleOfferView returns a handler that renders the offer configurator.
func HandleOfferView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		offer, err := app.FindRecordById("offers", id)
		if err != nil {
			log.Printf("offer_view: could not find offer %s: %v", id, err)
			return e.String(http.StatusNotFound, "Offer not found")
		}

		data, err := buildConfiguratorData(app, offer)
		if err != nil {
			log.Printf("offer_view: buildConfiguratorData failed for offer %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderPage(e, offer.GetString("title"), templates.OfferConfigurator(data))
	}
}

// buildConfiguratorData loads the catalog and the persisted selection of an
// offer, recomputes totals and maps everything onto the view structs. The
// selection state is initialized (and legacy snapshots migrated) on every
// load, so the configurator always starts from a valid selection.
func buildConfiguratorData(app *pocketbase.PocketBase, offer *core.Record) (templates.ConfiguratorData, error) {
	catalog, err := services.LoadOfferCatalog(app, offer.Id)
	if err != nil {
		return templates.ConfiguratorData{}, err
	}

	snap := services.DecodeSnapshot(offer.GetString("selection_snapshot"))
	state := services.InitSelection(catalog, snap)
	totals := services.ComputeTotals(catalog, state)

	data := templates.ConfiguratorData{
		OfferID:     offer.Id,
		OfferNumber: offer.GetString("offer_number"),
		Title:       offer.GetString("title"),
		Status:      offer.GetString("status"),
		VATLabel:    "VAT " + services.FormatPercent(catalog.VATPercent),
		TotalNet:    services.FormatPLN(totals.Net),
		TotalGross:  services.FormatPLN(totals.Gross),
		Errors:      map[string]string{},
	}

	if customer, err := app.FindRecordById("customers", offer.GetString("customer")); err == nil {
		data.CustomerName = customer.GetString("name")
	}

	for _, scope := range catalog.Scopes {
		viewScope := templates.ConfigScope{
			ID:       scope.ID,
			Name:     scope.Name,
			IsExtras: scope.IsExtras,
			Active:   scope.ID == state.ActiveScope,
		}

		for _, opt := range catalog.Options {
			if opt.ScopeID != scope.ID {
				continue
			}
			viewScope.Options = append(viewScope.Options, buildConfigOption(catalog, state, totals, opt))
		}

		data.Scopes = append(data.Scopes, viewScope)
	}

	return data, nil
}

func buildConfigOption(catalog services.Catalog, state services.SelectionState, totals services.OfferTotals, opt services.Option) templates.ConfigOption {
	viewOpt := templates.ConfigOption{
		ID:       opt.ID,
		Name:     opt.Name,
		IsUpsell: opt.IsUpsell,
		Chosen:   !opt.IsUpsell && state.ChosenOption[opt.ScopeID] == opt.ID,
	}
	if sub := totals.OptionSubtotals[opt.ID]; sub > 0 {
		viewOpt.Subtotal = services.FormatPLN(sub)
	}

	groupSize := len(opt.MandatoryItems())
	for _, it := range opt.Items {
		viewItem := templates.ConfigItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Optional: it.Optional,
		}
		if !catalog.HideUnitPrices {
			viewItem.UnitPrice = services.FormatPLN(it.UnitPrice)
			if it.DiscountPercent > 0 {
				viewItem.Discount = services.FormatPercent(it.DiscountPercent)
			}
		}
		if it.Optional {
			viewItem.Selected = state.SelectedOptionalItem[it.ID]
		} else if groupSize > 1 {
			viewItem.GroupMember = true
			viewItem.Picked = state.ChosenMandatoryItem[opt.ID] == it.ID
		}
		viewOpt.Items = append(viewOpt.Items, viewItem)
	}

	return viewOpt
}
