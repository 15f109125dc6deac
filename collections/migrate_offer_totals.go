package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"offerdesk/services"
)

// MigrateAcceptedOfferTotals recomputes stored totals for accepted offers
// whose totals are missing. Offers confirmed under the legacy whole-upsell
// snapshot format were saved without per-item totals; restoring the snapshot
// through the engine applies the legacy migration and yields the correct
// figures. Safe to call on every startup -- returns early if nothing to
// migrate.
func MigrateAcceptedOfferTotals(app *pocketbase.PocketBase) error {
	stale, err := app.FindRecordsByFilter(
		"offers",
		"status = 'accepted' && total_gross = 0 && selection_snapshot != ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query accepted offers: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	log.Printf("migrate: found %d accepted offer(s) without stored totals -- recomputing...\n", len(stale))

	for _, offer := range stale {
		catalog, err := services.LoadOfferCatalog(app, offer.Id)
		if err != nil {
			log.Printf("migrate: failed to load catalog for offer %s: %v\n", offer.Id, err)
			continue
		}

		snap := services.DecodeSnapshot(offer.GetString("selection_snapshot"))
		if snap == nil {
			log.Printf("migrate: offer %s has an unreadable snapshot, skipping\n", offer.Id)
			continue
		}

		state := services.InitSelection(catalog, snap)
		totals := services.ComputeTotals(catalog, state)

		offer.Set("total_net", totals.Net)
		offer.Set("total_gross", totals.Gross)
		if err := app.Save(offer); err != nil {
			log.Printf("migrate: failed to save totals for offer %s: %v\n", offer.Id, err)
			continue
		}

		log.Printf("migrate: offer %q -> net %.2f gross %.2f\n", offer.GetString("title"), totals.Net, totals.Gross)
	}

	log.Println("migrate: accepted offer totals migration complete.")
	return nil
}
