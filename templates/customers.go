package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// CustomerRow is one row of the customer list.
type CustomerRow struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	OfferCount int
}

// CustomerList renders the customer list page body.
func CustomerList(rows []CustomerRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="page-header">
<h1>Customers</h1>
<a class="button primary" href="/customers/create">New customer</a>
</header>
<table class="list">
<thead><tr><th>Name</th><th>Email</th><th>Phone</th><th>Offers</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		if len(rows) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="5" class="empty">No customers yet.</td></tr>
`); err != nil {
				return err
			}
		}

		for _, row := range rows {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/customers/%s/edit">%s</a></td>
<td>%s</td>
<td>%s</td>
<td>%d</td>
<td><button class="danger" hx-delete="/customers/%s" hx-confirm="Delete this customer?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td>
</tr>
`,
				templ.EscapeString(row.ID),
				templ.EscapeString(row.Name),
				templ.EscapeString(row.Email),
				templ.EscapeString(row.Phone),
				row.OfferCount,
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

// CustomerFormData backs the customer create/edit form.
type CustomerFormData struct {
	ID     string // "" when creating
	Name   string
	Email  string
	Phone  string
	Notes  string
	Errors map[string]string
}

// CustomerForm renders the customer create/edit form body.
func CustomerForm(data CustomerFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/customers"
		heading := "New customer"
		if data.ID != "" {
			action = "/customers/" + data.ID + "/save"
			heading = "Edit customer"
		}

		if _, err := fmt.Fprintf(w, `<header class="page-header"><h1>%s</h1></header>
<form method="post" action="%s" class="form">
`, templ.EscapeString(heading), templ.EscapeString(action)); err != nil {
			return err
		}

		if err := formField(w, "Name", "name", data.Name, data.Errors["name"]); err != nil {
			return err
		}
		if err := formField(w, "Email", "email", data.Email, data.Errors["email"]); err != nil {
			return err
		}
		if err := formField(w, "Phone", "phone", data.Phone, data.Errors["phone"]); err != nil {
			return err
		}
		if err := formField(w, "Notes", "notes", data.Notes, data.Errors["notes"]); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button class="primary" type="submit">Save</button>
</form>
`)
		return err
	})
}
