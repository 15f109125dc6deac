package services

import "errors"

// ErrNoScopeSelected is returned when a customer tries to confirm an offer
// without having chosen a service variant. It is a recoverable validation
// error: the selection stays intact so the customer can pick one and retry.
var ErrNoScopeSelected = errors.New("no service scope selected")

// ConfirmResult is what gets persisted when a selection is confirmed: the
// durable snapshot and the totals computed from the exact same state, so the
// stored price can never diverge from the preview.
type ConfirmResult struct {
	Snapshot Snapshot
	Totals   OfferTotals
}

// ConfirmSelection validates and freezes the current selection. The caller
// hands the result to storage together with the offer's status transition.
func ConfirmSelection(catalog Catalog, state SelectionState) (ConfirmResult, error) {
	scope := catalog.ScopeByID(state.ActiveScope)
	if state.ActiveScope == "" || scope == nil || scope.IsExtras {
		return ConfirmResult{}, ErrNoScopeSelected
	}
	return ConfirmResult{
		Snapshot: BuildSnapshot(state),
		Totals:   ComputeTotals(catalog, state),
	}, nil
}
