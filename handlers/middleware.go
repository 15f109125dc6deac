package handlers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/templates"
)

type contextKey string

const SidebarDataKey contextKey = "sidebarData"

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{}
}

// SidebarMiddleware counts customers, offers per status and reservations and
// stores the result in the request context so every page can render the
// navigation without repeating the queries.
func SidebarMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.SidebarData{
			CustomerCount:    countRecords(app, "customers", "id != ''"),
			DraftOffers:      countRecords(app, "offers", "status = 'draft'"),
			AcceptedOffers:   countRecords(app, "offers", "status = 'accepted'"),
			ReservationCount: countRecords(app, "reservations", "id != ''"),
		}

		ctx := context.WithValue(e.Request.Context(), SidebarDataKey, data)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

func countRecords(app *pocketbase.PocketBase, collection, filter string) int {
	records, err := app.FindRecordsByFilter(collection, filter, "", 0, 0, nil)
	if err != nil {
		return 0
	}
	return len(records)
}

// renderPage wraps a body component in the shared layout and writes it.
func renderPage(e *core.RequestEvent, title string, body templ.Component) error {
	page := templates.Layout(title, GetSidebarData(e.Request), body)
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	return page.Render(e.Request.Context(), e.Response)
}
