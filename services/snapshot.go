package services

import (
	"encoding/json"
	"fmt"
	"log"
)

// Snapshot is the persisted wire form of a selection. The JSON field names
// are part of the stored format and must not change. SelectedUpsells is a
// legacy field from snapshots written before upsell items became
// individually selectable: it is still read and migrated by InitSelection,
// but never written back.
type Snapshot struct {
	SelectedScopeID       string            `json:"selectedScopeId"`
	SelectedVariants      map[string]string `json:"selectedVariants"`
	SelectedOptionalItems map[string]bool   `json:"selectedOptionalItems"`
	SelectedItemInOption  map[string]string `json:"selectedItemInOption"`
	SelectedUpsells       map[string]bool   `json:"selectedUpsells,omitempty"`
}

// DecodeSnapshot parses a stored snapshot. Blank, null or malformed input
// yields nil, which callers treat as "start from defaults": a broken
// snapshot must never make an offer unopenable.
func DecodeSnapshot(raw string) *Snapshot {
	if raw == "" || raw == "null" {
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("snapshot: DecodeSnapshot: discarding malformed snapshot: %v", err)
		return nil
	}
	return &snap
}

// EncodeSnapshot serializes a snapshot for storage. All current fields are
// always present in the output and the legacy selectedUpsells field never is,
// so every write upgrades the stored format.
func EncodeSnapshot(snap Snapshot) (string, error) {
	if snap.SelectedVariants == nil {
		snap.SelectedVariants = map[string]string{}
	}
	if snap.SelectedOptionalItems == nil {
		snap.SelectedOptionalItems = map[string]bool{}
	}
	if snap.SelectedItemInOption == nil {
		snap.SelectedItemInOption = map[string]string{}
	}
	snap.SelectedUpsells = nil

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}
