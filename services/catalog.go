package services

// Item is one priced line of an option. Optional items are individually
// selectable; the remaining mandatory items are either always included or,
// when an option carries more than one of them, form a pick-one group.
type Item struct {
	ID              string
	Name            string
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
	Optional        bool
	SortOrder       int
}

// Option is a selectable block within a scope: either a variant the customer
// picks one of, or an upsell whose items are toggled on top of the variant.
type Option struct {
	ID        string
	Name      string
	ScopeID   string
	IsUpsell  bool
	SortOrder int
	Items     []Item
}

// MandatoryItems returns the option's non-optional items in catalog order.
func (o *Option) MandatoryItems() []Item {
	var items []Item
	for _, it := range o.Items {
		if !it.Optional {
			items = append(items, it)
		}
	}
	return items
}

// Scope is one section of an offer. Regular scopes compete for the single
// active slot; extras scopes contribute their selected items regardless of
// which scope is active.
type Scope struct {
	ID        string
	Name      string
	IsExtras  bool
	SortOrder int
}

// Catalog is the read-only offer structure the selection engine works on.
// Scopes, Options and Items are kept in sort order.
type Catalog struct {
	Scopes         []Scope
	Options        []Option
	VATPercent     float64
	HideUnitPrices bool
}

// ScopeByID returns the scope with the given id, or nil.
func (c *Catalog) ScopeByID(id string) *Scope {
	for i := range c.Scopes {
		if c.Scopes[i].ID == id {
			return &c.Scopes[i]
		}
	}
	return nil
}

// OptionByID returns the option with the given id, or nil.
func (c *Catalog) OptionByID(id string) *Option {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

// ItemByID returns the item with the given id together with its owning
// option, or nil, nil when the id is unknown.
func (c *Catalog) ItemByID(id string) (*Option, *Item) {
	for i := range c.Options {
		for j := range c.Options[i].Items {
			if c.Options[i].Items[j].ID == id {
				return &c.Options[i], &c.Options[i].Items[j]
			}
		}
	}
	return nil, nil
}

// FirstNonExtrasScope returns the first regular scope in sort order, or nil
// when the catalog only has extras scopes.
func (c *Catalog) FirstNonExtrasScope() *Scope {
	for i := range c.Scopes {
		if !c.Scopes[i].IsExtras {
			return &c.Scopes[i]
		}
	}
	return nil
}

// VariantsOf returns the scope's non-upsell options in catalog order.
func (c *Catalog) VariantsOf(scopeID string) []Option {
	var variants []Option
	for _, opt := range c.Options {
		if opt.ScopeID == scopeID && !opt.IsUpsell {
			variants = append(variants, opt)
		}
	}
	return variants
}

// UpsellsOf returns the scope's upsell options in catalog order.
func (c *Catalog) UpsellsOf(scopeID string) []Option {
	var upsells []Option
	for _, opt := range c.Options {
		if opt.ScopeID == scopeID && opt.IsUpsell {
			upsells = append(upsells, opt)
		}
	}
	return upsells
}

// isExtrasOption reports whether the option belongs to an extras scope.
func (c *Catalog) isExtrasOption(opt *Option) bool {
	scope := c.ScopeByID(opt.ScopeID)
	return scope != nil && scope.IsExtras
}
