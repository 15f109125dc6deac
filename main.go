package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"offerdesk/collections"
	"offerdesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and run data migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateOffersWithoutNumbers(app); err != nil {
			log.Printf("Warning: offer number migration failed: %v", err)
		}
		if err := collections.MigrateAcceptedOfferTotals(app); err != nil {
			log.Printf("Warning: offer totals migration failed: %v", err)
		}
		return se.Next()
	})

	// Optional demo data for local evaluation: `offerdesk seed-demo`
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "seed-demo",
		Short: "Create the demo customer and a configurable demo offer",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.Bootstrap(); err != nil {
				log.Fatalf("seed-demo: bootstrap failed: %v", err)
			}
			collections.Setup(app)
			if err := collections.Seed(app); err != nil {
				log.Fatalf("seed-demo: %v", err)
			}
			log.Println("seed-demo: demo data created")
		},
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.SidebarMiddleware(app))

		// ── Offer CRUD ───────────────────────────────────────────
		se.Router.GET("/offers", handlers.HandleOfferList(app))
		se.Router.GET("/offers/create", handlers.HandleOfferCreate(app))
		se.Router.POST("/offers", handlers.HandleOfferSave(app))
		se.Router.GET("/offers/{id}/edit", handlers.HandleOfferEdit(app))
		se.Router.POST("/offers/{id}/save", handlers.HandleOfferUpdate(app))
		se.Router.DELETE("/offers/{id}", handlers.HandleOfferDelete(app))

		// ── Configurator actions ─────────────────────────────────
		se.Router.POST("/offers/{id}/select/variant", handlers.HandleChooseVariant(app))
		se.Router.POST("/offers/{id}/select/item", handlers.HandleToggleItem(app))
		se.Router.POST("/offers/{id}/select/included", handlers.HandlePickIncludedItem(app))
		se.Router.POST("/offers/{id}/confirm", handlers.HandleOfferConfirm(app))
		se.Router.POST("/offers/{id}/reopen", handlers.HandleOfferReopen(app))

		// ── Offer export ─────────────────────────────────────────
		se.Router.GET("/offers/{id}/export/excel", handlers.HandleOfferExportExcel(app))
		se.Router.GET("/offers/{id}/export/pdf", handlers.HandleOfferExportPDF(app))

		// Offer view (after specific /offers/{id}/* routes)
		se.Router.GET("/offers/{id}", handlers.HandleOfferView(app))

		// ── Customer CRUD ────────────────────────────────────────
		se.Router.GET("/customers", handlers.HandleCustomerList(app))
		se.Router.GET("/customers/create", handlers.HandleCustomerCreate(app))
		se.Router.POST("/customers", handlers.HandleCustomerSave(app))
		se.Router.GET("/customers/{id}/edit", handlers.HandleCustomerEdit(app))
		se.Router.POST("/customers/{id}/save", handlers.HandleCustomerUpdate(app))
		se.Router.DELETE("/customers/{id}", handlers.HandleCustomerDelete(app))

		// ── Reservations ─────────────────────────────────────────
		se.Router.GET("/reservations", handlers.HandleReservationList(app))
		se.Router.GET("/reservations/create", handlers.HandleReservationCreate(app))
		se.Router.POST("/reservations", handlers.HandleReservationSave(app))
		se.Router.DELETE("/reservations/{id}", handlers.HandleReservationDelete(app))

		// Redirect home to the offer list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/offers")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
