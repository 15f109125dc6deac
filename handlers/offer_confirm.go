package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/services"
	"offerdesk/templates"
)

// confirmGuard tracks offers with a confirmation in flight so a double
// submit cannot run two overlapping confirm transactions for the same offer.
var confirmGuard = struct {
	sync.Mutex
	inFlight map[string]bool
}{inFlight: map[string]bool{}}

func beginConfirm(offerID string) bool {
	confirmGuard.Lock()
	defer confirmGuard.Unlock()
	if confirmGuard.inFlight[offerID] {
		return false
	}
	confirmGuard.inFlight[offerID] = true
	return true
}

func endConfirm(offerID string) {
	confirmGuard.Lock()
	defer confirmGuard.Unlock()
	delete(confirmGuard.inFlight, offerID)
}

// HandleOfferConfirm freezes the current selection: it validates that a
// service variant is chosen, computes the final totals and writes snapshot,
// totals and the accepted status in one transaction. On validation failure
// nothing is written and the selection stays editable.
func HandleOfferConfirm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		if !beginConfirm(id) {
			return ErrorToast(e, http.StatusConflict, "This offer is already being confirmed.")
		}
		defer endConfirm(id)

		offer, err := app.FindRecordById("offers", id)
		if err != nil {
			log.Printf("offer_confirm: could not find offer %s: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Offer not found")
		}

		if offer.GetString("status") == "accepted" {
			return ErrorToast(e, http.StatusConflict, "This offer is already accepted.")
		}

		catalog, err := services.LoadOfferCatalog(app, offer.Id)
		if err != nil {
			log.Printf("offer_confirm: could not load catalog for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		state := services.InitSelection(catalog, services.DecodeSnapshot(offer.GetString("selection_snapshot")))

		result, err := services.ConfirmSelection(catalog, state)
		if err != nil {
			if errors.Is(err, services.ErrNoScopeSelected) {
				return ErrorToast(e, http.StatusUnprocessableEntity, "Pick a service variant before confirming.")
			}
			log.Printf("offer_confirm: confirm failed for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		encoded, err := services.EncodeSnapshot(result.Snapshot)
		if err != nil {
			log.Printf("offer_confirm: could not encode snapshot for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			fresh, err := txApp.FindRecordById("offers", offer.Id)
			if err != nil {
				return err
			}
			fresh.Set("selection_snapshot", encoded)
			fresh.Set("total_net", result.Totals.Net)
			fresh.Set("total_gross", result.Totals.Gross)
			fresh.Set("status", "accepted")
			fresh.Set("accepted_at", time.Now().UTC().Format(time.RFC3339))
			return txApp.Save(fresh)
		})
		if err != nil {
			log.Printf("offer_confirm: transaction failed for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save the confirmation. Please try again.")
		}

		SetToast(e, "success", "Offer confirmed.")

		offer, err = app.FindRecordById("offers", id)
		if err != nil {
			log.Printf("offer_confirm: could not reload offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		data, err := buildConfiguratorData(app, offer)
		if err != nil {
			log.Printf("offer_confirm: buildConfiguratorData failed for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.ConfiguratorPanel(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleOfferReopen puts an accepted offer back into draft so the selection
// can be edited again. Totals stay on the record until the next confirm.
func HandleOfferReopen(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		offer, err := app.FindRecordById("offers", id)
		if err != nil {
			log.Printf("offer_confirm: HandleOfferReopen: could not find offer %s: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Offer not found")
		}

		if offer.GetString("status") != "accepted" {
			return ErrorToast(e, http.StatusConflict, "Only accepted offers can be reopened.")
		}

		offer.Set("status", "draft")
		if err := app.Save(offer); err != nil {
			log.Printf("offer_confirm: HandleOfferReopen: could not save offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not reopen the offer. Please try again.")
		}

		SetToast(e, "info", "Offer reopened for editing.")

		data, err := buildConfiguratorData(app, offer)
		if err != nil {
			log.Printf("offer_confirm: HandleOfferReopen: buildConfiguratorData failed for offer %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.ConfiguratorPanel(data).Render(e.Request.Context(), e.Response)
	}
}
