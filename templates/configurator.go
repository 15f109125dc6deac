package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ConfigItem is one priced line rendered inside an option block.
type ConfigItem struct {
	ID          string
	Name        string
	Quantity    float64
	UnitPrice   string // formatted, "" when unit prices are hidden
	Discount    string // formatted, "" when none or hidden
	Optional    bool
	Selected    bool
	GroupMember bool // part of a pick-one group of mandatory items
	Picked      bool
}

// ConfigOption is one selectable variant or upsell block.
type ConfigOption struct {
	ID       string
	Name     string
	IsUpsell bool
	Chosen   bool
	Subtotal string // formatted, "" when the option contributes nothing
	Items    []ConfigItem
}

// ConfigScope is one scope column of the configurator.
type ConfigScope struct {
	ID       string
	Name     string
	IsExtras bool
	Active   bool
	Options  []ConfigOption
}

// ConfiguratorData is everything the offer configurator page needs.
type ConfiguratorData struct {
	OfferID      string
	OfferNumber  string
	Title        string
	CustomerName string
	Status       string
	Scopes       []ConfigScope
	VATLabel     string
	TotalNet     string
	TotalGross   string
	Errors       map[string]string
}

// Accepted reports whether the offer is confirmed and the controls should be
// frozen.
func (d ConfiguratorData) Accepted() bool {
	return d.Status == "accepted"
}

// OfferConfigurator renders the full configurator page body.
func OfferConfigurator(data ConfiguratorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="page-header">
<h1>%s</h1>
<div class="subtitle">%s · %s · <span class="status status-%s">%s</span></div>
</header>
`,
			templ.EscapeString(data.Title),
			templ.EscapeString(data.OfferNumber),
			templ.EscapeString(data.CustomerName),
			templ.EscapeString(data.Status),
			templ.EscapeString(data.Status)); err != nil {
			return err
		}
		return ConfiguratorPanel(data).Render(ctx, w)
	})
}

// ConfiguratorPanel renders the swappable fragment: all scope blocks plus
// the totals. Every selection action re-renders this fragment.
func ConfiguratorPanel(data ConfiguratorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="configurator">
`); err != nil {
			return err
		}

		if msg, ok := data.Errors["confirm"]; ok {
			if _, err := fmt.Fprintf(w, `<div class="alert alert-error">%s</div>
`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}

		for _, scope := range data.Scopes {
			if err := scopeBlock(data, scope).Render(ctx, w); err != nil {
				return err
			}
		}

		if err := totalsBlock(data).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</div>
`)
		return err
	})
}

func scopeBlock(data ConfiguratorData, scope ConfigScope) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "scope"
		if scope.Active {
			class = "scope scope-active"
		}
		if scope.IsExtras {
			class += " scope-extras"
		}
		if _, err := fmt.Fprintf(w, `<section class="%s">
<h2>%s</h2>
`, class, templ.EscapeString(scope.Name)); err != nil {
			return err
		}

		for _, opt := range scope.Options {
			if err := optionBlock(data, scope, opt).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</section>
`)
		return err
	})
}

func optionBlock(data ConfiguratorData, scope ConfigScope, opt ConfigOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "option"
		if opt.Chosen {
			class = "option option-chosen"
		}
		if opt.IsUpsell {
			class += " option-upsell"
		}
		if _, err := fmt.Fprintf(w, `<div class="%s">
<div class="option-head">
`, class); err != nil {
			return err
		}

		// Variants of a regular scope are picked with a radio-style button;
		// upsell and extras blocks only carry item toggles.
		if !scope.IsExtras && !opt.IsUpsell && !data.Accepted() {
			if _, err := fmt.Fprintf(w,
				`<button class="choose" hx-post="/offers/%s/select/variant" hx-vals='{"scope":"%s","option":"%s"}' hx-target="#configurator" hx-swap="outerHTML">%s</button>
`,
				templ.EscapeString(data.OfferID),
				templ.EscapeString(scope.ID),
				templ.EscapeString(opt.ID),
				templ.EscapeString(opt.Name)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, `<span class="option-name">%s</span>
`, templ.EscapeString(opt.Name)); err != nil {
				return err
			}
		}

		if opt.Subtotal != "" {
			if _, err := fmt.Fprintf(w, `<span class="subtotal">%s</span>
`, templ.EscapeString(opt.Subtotal)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>
`); err != nil {
			return err
		}

		for _, item := range opt.Items {
			if err := itemRow(data, opt, item).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>
`)
		return err
	})
}

func itemRow(data ConfiguratorData, opt ConfigOption, item ConfigItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="item">
`); err != nil {
			return err
		}

		switch {
		case item.Optional && !data.Accepted():
			checked := ""
			if item.Selected {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w,
				`<label><input type="checkbox"%s hx-post="/offers/%s/select/item" hx-vals='{"item":"%s"}' hx-target="#configurator" hx-swap="outerHTML"> %s</label>
`,
				checked,
				templ.EscapeString(data.OfferID),
				templ.EscapeString(item.ID),
				templ.EscapeString(item.Name)); err != nil {
				return err
			}
		case item.GroupMember && !data.Accepted():
			checked := ""
			if item.Picked {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w,
				`<label><input type="radio" name="pick-%s"%s hx-post="/offers/%s/select/included" hx-vals='{"option":"%s","item":"%s"}' hx-target="#configurator" hx-swap="outerHTML"> %s</label>
`,
				templ.EscapeString(opt.ID),
				checked,
				templ.EscapeString(data.OfferID),
				templ.EscapeString(opt.ID),
				templ.EscapeString(item.ID),
				templ.EscapeString(item.Name)); err != nil {
				return err
			}
		default:
			marker := ""
			if (item.Optional && item.Selected) || (item.GroupMember && item.Picked) || (!item.Optional && !item.GroupMember) {
				marker = `<span class="included">✓</span> `
			}
			if _, err := fmt.Fprintf(w, `%s%s
`, marker, templ.EscapeString(item.Name)); err != nil {
				return err
			}
		}

		if item.UnitPrice != "" {
			if _, err := fmt.Fprintf(w, `<span class="price">%s</span>
`, templ.EscapeString(item.UnitPrice)); err != nil {
				return err
			}
		}
		if item.Discount != "" {
			if _, err := fmt.Fprintf(w, `<span class="discount">−%s</span>
`, templ.EscapeString(item.Discount)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>
`)
		return err
	})
}

func totalsBlock(data ConfiguratorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<aside class="totals">
<div class="totals-row"><span>Total net</span><strong>%s</strong></div>
<div class="totals-row"><span>Total gross (%s)</span><strong class="gross">%s</strong></div>
`,
			templ.EscapeString(data.TotalNet),
			templ.EscapeString(data.VATLabel),
			templ.EscapeString(data.TotalGross)); err != nil {
			return err
		}

		if data.Accepted() {
			if _, err := fmt.Fprintf(w,
				`<form hx-post="/offers/%s/reopen" hx-target="#configurator" hx-swap="outerHTML"><button class="secondary">Edit selection</button></form>
<a class="button" href="/offers/%s/export/pdf">Download PDF</a>
<a class="button" href="/offers/%s/export/excel">Download Excel</a>
`,
				templ.EscapeString(data.OfferID),
				templ.EscapeString(data.OfferID),
				templ.EscapeString(data.OfferID)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w,
				`<form hx-post="/offers/%s/confirm" hx-target="#configurator" hx-swap="outerHTML"><button class="primary">Confirm selection</button></form>
`,
				templ.EscapeString(data.OfferID)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</aside>
`)
		return err
	})
}
