package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatOfferNumber constructs the offer number string from components.
func formatOfferNumber(year int, sequence int) string {
	return fmt.Sprintf("OFF-%d-%03d", year, sequence)
}

// OfferNumberPrefix returns the shared prefix of all offer numbers issued in
// the calendar year of the given date, e.g. "OFF-2026-".
func OfferNumberPrefix(now time.Time) string {
	return fmt.Sprintf("OFF-%d-", now.Year())
}

// GenerateOfferNumber creates the next offer number.
// Format: OFF-{year}-{sequence}, with a 3-digit zero-padded sequence that
// restarts every calendar year. The sequence continues past the highest
// number ever issued this year, so deleting an offer never frees its number
// for reuse.
func GenerateOfferNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	existing, err := app.FindRecordsByFilter(
		"offers",
		"offer_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": OfferNumberPrefix(now) + "%"},
	)
	if err != nil {
		// No offers collection or no records yet, start at 1.
		existing = nil
	}

	maxSequence := 0
	for _, record := range existing {
		var year, sequence int
		if _, err := fmt.Sscanf(record.GetString("offer_number"), "OFF-%d-%d", &year, &sequence); err != nil {
			continue
		}
		if year == now.Year() && sequence > maxSequence {
			maxSequence = sequence
		}
	}

	return formatOfferNumber(now.Year(), maxSequence+1), nil
}
