package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// OfferRow is one row of the offer list.
type OfferRow struct {
	ID           string
	OfferNumber  string
	Title        string
	CustomerName string
	Status       string
	TotalGross   string // formatted, "" for unconfirmed drafts
	Created      string
}

// OfferList renders the offer list page body.
func OfferList(rows []OfferRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="page-header">
<h1>Offers</h1>
<a class="button primary" href="/offers/create">New offer</a>
</header>
<table class="list">
<thead><tr><th>Number</th><th>Title</th><th>Customer</th><th>Status</th><th>Total gross</th><th>Created</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		if len(rows) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="7" class="empty">No offers yet.</td></tr>
`); err != nil {
				return err
			}
		}

		for _, row := range rows {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td>
<td><a href="/offers/%s">%s</a></td>
<td>%s</td>
<td><span class="status status-%s">%s</span></td>
<td>%s</td>
<td>%s</td>
<td><button class="danger" hx-delete="/offers/%s" hx-confirm="Delete this offer?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td>
</tr>
`,
				templ.EscapeString(row.OfferNumber),
				templ.EscapeString(row.ID),
				templ.EscapeString(row.Title),
				templ.EscapeString(row.CustomerName),
				templ.EscapeString(row.Status),
				templ.EscapeString(row.Status),
				templ.EscapeString(row.TotalGross),
				templ.EscapeString(row.Created),
				templ.EscapeString(row.ID)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody>
</table>
`)
		return err
	})
}

// CustomerChoice is one entry of the customer dropdown on the offer form.
type CustomerChoice struct {
	ID   string
	Name string
}

// OfferFormData backs the offer create/edit form.
type OfferFormData struct {
	ID         string // "" when creating
	Title      string
	CustomerID string
	VATPercent string
	HidePrices bool
	Customers  []CustomerChoice
	Errors     map[string]string
}

// OfferForm renders the offer create/edit form body.
func OfferForm(data OfferFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/offers"
		heading := "New offer"
		if data.ID != "" {
			action = "/offers/" + data.ID + "/save"
			heading = "Edit offer"
		}

		if _, err := fmt.Fprintf(w, `<header class="page-header"><h1>%s</h1></header>
<form method="post" action="%s" class="form">
`, templ.EscapeString(heading), templ.EscapeString(action)); err != nil {
			return err
		}

		if err := formField(w, "Title", "title", data.Title, data.Errors["title"]); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<label>Customer
<select name="customer">
<option value="">— choose —</option>
`); err != nil {
			return err
		}
		for _, c := range data.Customers {
			selected := ""
			if c.ID == data.CustomerID {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>
`, templ.EscapeString(c.ID), selected, templ.EscapeString(c.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
</label>
`); err != nil {
			return err
		}
		if msg := data.Errors["customer"]; msg != "" {
			if _, err := fmt.Fprintf(w, `<div class="field-error">%s</div>
`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}

		if err := formField(w, "VAT %", "vat_percent", data.VATPercent, data.Errors["vat_percent"]); err != nil {
			return err
		}

		checked := ""
		if data.HidePrices {
			checked = " checked"
		}
		if _, err := fmt.Fprintf(w, `<label class="checkbox"><input type="checkbox" name="hide_unit_prices" value="true"%s> Hide unit prices from the customer</label>
`, checked); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button class="primary" type="submit">Save</button>
</form>
`)
		return err
	})
}

func formField(w io.Writer, label, name, value, errMsg string) error {
	if _, err := fmt.Fprintf(w, `<label>%s
<input type="text" name="%s" value="%s">
</label>
`, templ.EscapeString(label), templ.EscapeString(name), templ.EscapeString(value)); err != nil {
		return err
	}
	if errMsg != "" {
		if _, err := fmt.Fprintf(w, `<div class="field-error">%s</div>
`, templ.EscapeString(errMsg)); err != nil {
			return err
		}
	}
	return nil
}
