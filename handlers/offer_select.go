package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/services"
	"offerdesk/templates"
)

// reducer mutates a selection state in response to one configurator action.
type reducer func(services.Catalog, services.SelectionState) (services.SelectionState, error)

// applySelection runs one selection action against an offer: it loads the
// catalog, restores the persisted selection, applies the reducer, saves the
// new snapshot and re-renders the configurator panel. Accepted offers are
// frozen and reject every action.
func applySelection(app *pocketbase.PocketBase, e *core.RequestEvent, apply reducer) error {
	id := e.Request.PathValue("id")

	offer, err := app.FindRecordById("offers", id)
	if err != nil {
		log.Printf("offer_select: could not find offer %s: %v", id, err)
		return ErrorToast(e, http.StatusNotFound, "Offer not found")
	}

	if offer.GetString("status") == "accepted" {
		return ErrorToast(e, http.StatusConflict, "This offer is accepted. Reopen it to make changes.")
	}

	catalog, err := services.LoadOfferCatalog(app, offer.Id)
	if err != nil {
		log.Printf("offer_select: could not load catalog for offer %s: %v", id, err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	snap := services.DecodeSnapshot(offer.GetString("selection_snapshot"))
	state := services.InitSelection(catalog, snap)

	state, err = apply(catalog, state)
	if err != nil {
		log.Printf("offer_select: action rejected for offer %s: %v", id, err)
		return ErrorToast(e, http.StatusUnprocessableEntity, "That choice is no longer available. Refresh the page.")
	}

	encoded, err := services.EncodeSnapshot(services.BuildSnapshot(state))
	if err != nil {
		log.Printf("offer_select: could not encode snapshot for offer %s: %v", id, err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	offer.Set("selection_snapshot", encoded)
	if err := app.Save(offer); err != nil {
		log.Printf("offer_select: could not save offer %s: %v", id, err)
		return ErrorToast(e, http.StatusInternalServerError, "Could not save your selection. Please try again.")
	}

	data, err := buildConfiguratorData(app, offer)
	if err != nil {
		log.Printf("offer_select: buildConfiguratorData failed for offer %s: %v", id, err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	return templates.ConfiguratorPanel(data).Render(e.Request.Context(), e.Response)
}

// HandleChooseVariant picks a variant (or toggles an upsell) within a scope
// and makes that scope the active one.
func HandleChooseVariant(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		scopeID := e.Request.FormValue("scope")
		optionID := e.Request.FormValue("option")

		return applySelection(app, e, func(catalog services.Catalog, state services.SelectionState) (services.SelectionState, error) {
			return services.ChooseOption(catalog, state, scopeID, optionID)
		})
	}
}

// HandleToggleItem flips an optional item on or off.
func HandleToggleItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.FormValue("item")

		return applySelection(app, e, func(catalog services.Catalog, state services.SelectionState) (services.SelectionState, error) {
			return services.ToggleOptionalItem(catalog, state, itemID)
		})
	}
}

// HandlePickIncludedItem picks one item out of an option's mandatory group.
func HandlePickIncludedItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		optionID := e.Request.FormValue("option")
		itemID := e.Request.FormValue("item")

		return applySelection(app, e, func(catalog services.Catalog, state services.SelectionState) (services.SelectionState, error) {
			return services.ChooseMandatoryItem(catalog, state, optionID, itemID)
		})
	}
}
