package services

import "fmt"

// SelectionState is the in-memory form of a customer's current choices.
// ChosenOption maps scope id to the chosen variant, SelectedOptionalItem
// holds the toggled optional items by id, and ChosenMandatoryItem maps an
// option id to the picked member of its single-select group.
//
// States are treated as immutable: every operation works on a copy and
// returns it, so a failed action can never leave a half-applied state.
type SelectionState struct {
	ActiveScope          string
	ChosenOption         map[string]string
	SelectedOptionalItem map[string]bool
	ChosenMandatoryItem  map[string]string
}

func (s SelectionState) clone() SelectionState {
	next := SelectionState{
		ActiveScope:          s.ActiveScope,
		ChosenOption:         make(map[string]string, len(s.ChosenOption)),
		SelectedOptionalItem: make(map[string]bool, len(s.SelectedOptionalItem)),
		ChosenMandatoryItem:  make(map[string]string, len(s.ChosenMandatoryItem)),
	}
	for k, v := range s.ChosenOption {
		next.ChosenOption[k] = v
	}
	for k, v := range s.SelectedOptionalItem {
		next.SelectedOptionalItem[k] = v
	}
	for k, v := range s.ChosenMandatoryItem {
		next.ChosenMandatoryItem[k] = v
	}
	return next
}

// InitSelection builds a working state from a stored snapshot, or from
// catalog defaults when the snapshot is nil. Defaults are the lowest-sort
// variant of every scope with the first regular scope active. Restored
// states get two repairs on top of the verbatim copy: legacy selectedUpsells
// flags are expanded into the upsell's items, and single-select groups
// missing a valid pick fall back to their first mandatory item.
func InitSelection(catalog Catalog, snap *Snapshot) SelectionState {
	state := SelectionState{
		ChosenOption:         map[string]string{},
		SelectedOptionalItem: map[string]bool{},
		ChosenMandatoryItem:  map[string]string{},
	}

	if snap == nil {
		for _, scope := range catalog.Scopes {
			if variants := catalog.VariantsOf(scope.ID); len(variants) > 0 {
				state.ChosenOption[scope.ID] = variants[0].ID
			}
		}
		if first := catalog.FirstNonExtrasScope(); first != nil {
			state.ActiveScope = first.ID
		}
		defaultMandatoryPicks(catalog, &state)
		return state
	}

	state.ActiveScope = snap.SelectedScopeID
	for k, v := range snap.SelectedVariants {
		state.ChosenOption[k] = v
	}
	for k, v := range snap.SelectedOptionalItems {
		state.SelectedOptionalItem[k] = v
	}
	for k, v := range snap.SelectedItemInOption {
		state.ChosenMandatoryItem[k] = v
	}

	for optionID, flagged := range snap.SelectedUpsells {
		if !flagged {
			continue
		}
		option := catalog.OptionByID(optionID)
		if option == nil || !option.IsUpsell {
			continue
		}
		for _, it := range option.Items {
			state.SelectedOptionalItem[it.ID] = true
		}
	}

	defaultMandatoryPicks(catalog, &state)
	return state
}

// defaultMandatoryPicks ensures every chosen option with a single-select
// group has a valid pick, defaulting to the group's first item.
func defaultMandatoryPicks(catalog Catalog, state *SelectionState) {
	for _, optionID := range state.ChosenOption {
		option := catalog.OptionByID(optionID)
		if option == nil {
			continue
		}
		group := option.MandatoryItems()
		if len(group) < 2 {
			continue
		}
		valid := false
		for _, it := range group {
			if it.ID == state.ChosenMandatoryItem[option.ID] {
				valid = true
				break
			}
		}
		if !valid {
			state.ChosenMandatoryItem[option.ID] = group[0].ID
		}
	}
}

// ChooseOption picks a variant within a regular scope and makes that scope
// the active one. Choices that no longer apply are pruned: variants of other
// regular scopes, optional items belonging to neither the chosen variant nor
// the scope's upsells, and group picks of no-longer-chosen options. Extras
// selections always survive.
func ChooseOption(catalog Catalog, state SelectionState, scopeID, optionID string) (SelectionState, error) {
	scope := catalog.ScopeByID(scopeID)
	if scope == nil {
		return SelectionState{}, fmt.Errorf("choose option: unknown scope %q", scopeID)
	}
	if scope.IsExtras {
		return SelectionState{}, fmt.Errorf("choose option: scope %q has no variants to choose", scopeID)
	}
	option := catalog.OptionByID(optionID)
	if option == nil {
		return SelectionState{}, fmt.Errorf("choose option: unknown option %q", optionID)
	}
	if option.ScopeID != scopeID || option.IsUpsell {
		return SelectionState{}, fmt.Errorf("choose option: option %q is not a variant of scope %q", optionID, scopeID)
	}

	next := state.clone()
	next.ActiveScope = scopeID
	next.ChosenOption[scopeID] = optionID

	for sID := range next.ChosenOption {
		s := catalog.ScopeByID(sID)
		if s == nil || (!s.IsExtras && s.ID != scopeID) {
			delete(next.ChosenOption, sID)
		}
	}

	for itemID := range next.SelectedOptionalItem {
		owner, _ := catalog.ItemByID(itemID)
		keep := owner != nil && (catalog.isExtrasOption(owner) ||
			owner.ID == optionID ||
			(owner.IsUpsell && owner.ScopeID == scopeID))
		if !keep {
			delete(next.SelectedOptionalItem, itemID)
		}
	}

	chosen := map[string]bool{}
	for _, oID := range next.ChosenOption {
		chosen[oID] = true
	}
	for oID := range next.ChosenMandatoryItem {
		if !chosen[oID] {
			delete(next.ChosenMandatoryItem, oID)
		}
	}

	defaultMandatoryPicks(catalog, &next)
	return next, nil
}

// ToggleOptionalItem flips an optional item on or off.
func ToggleOptionalItem(catalog Catalog, state SelectionState, itemID string) (SelectionState, error) {
	_, item := catalog.ItemByID(itemID)
	if item == nil {
		return SelectionState{}, fmt.Errorf("toggle item: unknown item %q", itemID)
	}
	if !item.Optional {
		return SelectionState{}, fmt.Errorf("toggle item: item %q is not optional", itemID)
	}

	next := state.clone()
	if next.SelectedOptionalItem[itemID] {
		delete(next.SelectedOptionalItem, itemID)
	} else {
		next.SelectedOptionalItem[itemID] = true
	}
	return next, nil
}

// ChooseMandatoryItem picks one member of an option's single-select group.
// Unknown option or item ids are errors; a known item that is not a group
// member of the option leaves the state unchanged.
func ChooseMandatoryItem(catalog Catalog, state SelectionState, optionID, itemID string) (SelectionState, error) {
	option := catalog.OptionByID(optionID)
	if option == nil {
		return SelectionState{}, fmt.Errorf("choose included item: unknown option %q", optionID)
	}
	if _, item := catalog.ItemByID(itemID); item == nil {
		return SelectionState{}, fmt.Errorf("choose included item: unknown item %q", itemID)
	}

	next := state.clone()
	for _, it := range option.MandatoryItems() {
		if it.ID == itemID {
			next.ChosenMandatoryItem[optionID] = itemID
			break
		}
	}
	return next, nil
}

// BuildSnapshot converts a working state into its persisted form.
func BuildSnapshot(state SelectionState) Snapshot {
	snap := Snapshot{
		SelectedScopeID:       state.ActiveScope,
		SelectedVariants:      make(map[string]string, len(state.ChosenOption)),
		SelectedOptionalItems: make(map[string]bool, len(state.SelectedOptionalItem)),
		SelectedItemInOption:  make(map[string]string, len(state.ChosenMandatoryItem)),
	}
	for k, v := range state.ChosenOption {
		snap.SelectedVariants[k] = v
	}
	for k, v := range state.SelectedOptionalItem {
		snap.SelectedOptionalItems[k] = v
	}
	for k, v := range state.ChosenMandatoryItem {
		snap.SelectedItemInOption[k] = v
	}
	return snap
}
