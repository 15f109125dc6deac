package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ReservationRow is one row of the reservation list.
type ReservationRow struct {
	ID           string
	CustomerName string
	OfferTitle   string
	ScheduledAt  string
	Status       string
	Notes        string
}

// ReservationList renders the reservation list page body.
func ReservationList(rows []ReservationRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="page-header">
<h1>Reservations</h1>
<a class="button primary" href="/reservations/create">New reservation</a>
</header>
<table class="list">
<thead><tr><th>Customer</th><th>Offer</th><th>Scheduled</th><th>Status</th><th>Notes</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		if len(rows) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="6" class="empty">No reservations yet.</td></tr>
`); err != nil {
				return err
			}
		}

		for _, row := range rows {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td><span class="status status-%s">%s</span></td>
<td>%s</td>
<td><button class="danger" hx-delete="/reservations/%s" hx-confirm="Delete this reservation?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td>
</tr>
`,
				templ.EscapeString(row.CustomerName),
				templ.EscapeString(row.OfferTitle),
				templ.EscapeString(row.ScheduledAt),
				templ.EscapeString(row.Status),
				templ.EscapeString(row.Status),
				templ.EscapeString(row.Notes),
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

// ReservationFormData backs the reservation create form.
type ReservationFormData struct {
	CustomerID  string
	OfferID     string
	ScheduledAt string
	Notes       string
	Customers   []CustomerChoice
	Offers      []OfferChoice
	Errors      map[string]string
}

// OfferChoice is one entry of the offer dropdown on the reservation form.
type OfferChoice struct {
	ID    string
	Title string
}

// ReservationForm renders the reservation create form body.
func ReservationForm(data ReservationFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="page-header"><h1>New reservation</h1></header>
<form method="post" action="/reservations" class="form">
<label>Customer
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

		if _, err := io.WriteString(w, `<label>Offer (optional)
<select name="offer">
<option value="">— none —</option>
`); err != nil {
			return err
		}
		for _, o := range data.Offers {
			selected := ""
			if o.ID == data.OfferID {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>
`, templ.EscapeString(o.ID), selected, templ.EscapeString(o.Title)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
</label>
`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<label>Scheduled at
<input type="datetime-local" name="scheduled_at" value="%s">
</label>
`, templ.EscapeString(data.ScheduledAt)); err != nil {
			return err
		}
		if msg := data.Errors["scheduled_at"]; msg != "" {
			if _, err := fmt.Fprintf(w, `<div class="field-error">%s</div>
`, templ.EscapeString(msg)); err != nil {
				return err
			}
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
