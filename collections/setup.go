package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the customers, offers,
// offer_scopes, offer_options, offer_items and reservations collections
// exist.
func Setup(app *pocketbase.PocketBase) {
	customers := ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	offers := ensureCollection(app, "offers", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "customer",
			Required:     true,
			CollectionId: customers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "offer_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "accepted"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "vat_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "hide_unit_prices"})
		c.Fields.Add(&core.TextField{Name: "selection_snapshot", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_net", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_gross", Required: false})
		c.Fields.Add(&core.DateField{Name: "accepted_at"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	offerScopes := ensureCollection(app, "offer_scopes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "offer",
			Required:      true,
			CollectionId:  offers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_extras"})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	offerOptions := ensureCollection(app, "offer_options", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "offer",
			Required:      true,
			CollectionId:  offers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Options may survive a deleted scope in historical data, so the
		// relation stays optional.
		c.Fields.Add(&core.RelationField{
			Name:         "scope",
			Required:     false,
			CollectionId: offerScopes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_upsell"})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "offer_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "option",
			Required:      true,
			CollectionId:  offerOptions.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_optional"})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "reservations", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "customer",
			Required:     true,
			CollectionId: customers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "offer",
			Required:     false,
			CollectionId: offers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.DateField{Name: "scheduled_at"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "confirmed", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
