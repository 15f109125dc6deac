// Package templates contains the templ components for the console. The
// components are thin HTMX fragments, so they are built directly with
// templ.ComponentFunc instead of generated files.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SidebarData carries the navigation counters shown on every page.
type SidebarData struct {
	CustomerCount    int
	DraftOffers      int
	AcceptedOffers   int
	ReservationCount int
}

// Layout wraps a page body with the shared chrome: head, sidebar navigation
// and the toast listener.
func Layout(title string, sidebar SidebarData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s — OfferDesk</title>
<script src="/static/htmx.min.js"></script>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<div class="shell">
`, templ.EscapeString(title)); err != nil {
			return err
		}

		if err := sidebarNav(sidebar).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
</div>
<div id="toast-container"></div>
<script>
document.body.addEventListener("showToast", function (evt) {
  const d = evt.detail;
  const el = document.createElement("div");
  el.className = "toast toast-" + d.type;
  el.textContent = d.message;
  document.getElementById("toast-container").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
});
</script>
</body>
</html>`)
		return err
	})
}

func sidebarNav(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<nav class="sidebar">
<div class="brand">OfferDesk</div>
<a href="/offers">Offers <span class="count">%d draft / %d accepted</span></a>
<a href="/customers">Customers <span class="count">%d</span></a>
<a href="/reservations">Reservations <span class="count">%d</span></a>
</nav>
`, data.DraftOffers, data.AcceptedOffers, data.CustomerCount, data.ReservationCount)
		return err
	})
}
