package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"

	"offerdesk/services"
)

// MigrateOffersWithoutNumbers assigns an offer number to every offer record
// that has none. Offers created before numbering existed get sequential
// numbers in creation order. Safe to call on every startup -- returns early
// if nothing to migrate.
func MigrateOffersWithoutNumbers(app *pocketbase.PocketBase) error {
	unnumbered, err := app.FindRecordsByFilter(
		"offers",
		"offer_number = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query unnumbered offers: %w", err)
	}

	if len(unnumbered) == 0 {
		return nil
	}

	log.Printf("migrate: found %d offer(s) without a number -- assigning...\n", len(unnumbered))

	for _, offer := range unnumbered {
		number, err := services.GenerateOfferNumber(app, time.Now())
		if err != nil {
			log.Printf("migrate: failed to generate number for offer %s: %v\n", offer.Id, err)
			continue
		}

		offer.Set("offer_number", number)
		if err := app.Save(offer); err != nil {
			log.Printf("migrate: failed to save offer %s: %v\n", offer.Id, err)
			continue
		}

		log.Printf("migrate: offer %q -> %s\n", offer.GetString("title"), number)
	}

	log.Println("migrate: offer number migration complete.")
	return nil
}
