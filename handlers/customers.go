package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offerdesk/templates"
)

type customerForm struct {
	Name  string
	Email string
	Phone string
	Notes string
}

func (f customerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.Length(2, 200)),
		validation.Field(&f.Email, is.Email.Error("must be a valid email address")),
		validation.Field(&f.Phone, validation.Length(0, 30)),
	)
}

func customerFormErrors(err error) map[string]string {
	out := map[string]string{}
	if errs, ok := err.(validation.Errors); ok {
		for field, fieldErr := range errs {
			switch field {
			case "Name":
				out["name"] = fieldErr.Error()
			case "Email":
				out["email"] = fieldErr.Error()
			case "Phone":
				out["phone"] = fieldErr.Error()
			default:
				out[field] = fieldErr.Error()
			}
		}
	}
	return out
}

func readCustomerForm(r *http.Request) customerForm {
	return customerForm{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
		Notes: r.FormValue("notes"),
	}
}

// HandleCustomerList renders the customer list with per-customer offer counts.
func HandleCustomerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("customers", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("customers: HandleCustomerList: could not fetch customers: %v", err)
			records = nil
		}

		var rows []templates.CustomerRow
		for _, rec := range records {
			offers, err := app.FindRecordsByFilter(
				"offers",
				"customer = {:customerId}",
				"",
				0,
				0,
				map[string]any{"customerId": rec.Id},
			)
			if err != nil {
				offers = nil
			}
			rows = append(rows, templates.CustomerRow{
				ID:         rec.Id,
				Name:       rec.GetString("name"),
				Email:      rec.GetString("email"),
				Phone:      rec.GetString("phone"),
				OfferCount: len(offers),
			})
		}

		return renderPage(e, "Customers", templates.CustomerList(rows))
	}
}

// HandleCustomerCreate renders the empty customer form.
func HandleCustomerCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderPage(e, "New customer", templates.CustomerForm(templates.CustomerFormData{
			Errors: map[string]string{},
		}))
	}
}

// HandleCustomerSave creates a customer from the submitted form.
func HandleCustomerSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form := readCustomerForm(e.Request)

		if err := form.Validate(); err != nil {
			data := templates.CustomerFormData{
				Name:   form.Name,
				Email:  form.Email,
				Phone:  form.Phone,
				Notes:  form.Notes,
				Errors: customerFormErrors(err),
			}
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			return renderPage(e, "New customer", templates.CustomerForm(data))
		}

		col, err := app.FindCollectionByNameOrId("customers")
		if err != nil {
			log.Printf("customers: customers collection missing: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", form.Name)
		record.Set("email", form.Email)
		record.Set("phone", form.Phone)
		record.Set("notes", form.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("customers: could not save customer: %v", err)
			return e.String(http.StatusInternalServerError, "Could not save the customer. Please try again.")
		}

		return e.Redirect(http.StatusSeeOther, "/customers")
	}
}

// HandleCustomerEdit renders the form pre-filled with an existing customer.
func HandleCustomerEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customer, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Customer not found")
		}

		data := templates.CustomerFormData{
			ID:     customer.Id,
			Name:   customer.GetString("name"),
			Email:  customer.GetString("email"),
			Phone:  customer.GetString("phone"),
			Notes:  customer.GetString("notes"),
			Errors: map[string]string{},
		}
		return renderPage(e, "Edit customer", templates.CustomerForm(data))
	}
}

// HandleCustomerUpdate saves edits to an existing customer.
func HandleCustomerUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customer, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Customer not found")
		}

		form := readCustomerForm(e.Request)
		if err := form.Validate(); err != nil {
			data := templates.CustomerFormData{
				ID:     customer.Id,
				Name:   form.Name,
				Email:  form.Email,
				Phone:  form.Phone,
				Notes:  form.Notes,
				Errors: customerFormErrors(err),
			}
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			return renderPage(e, "Edit customer", templates.CustomerForm(data))
		}

		customer.Set("name", form.Name)
		customer.Set("email", form.Email)
		customer.Set("phone", form.Phone)
		customer.Set("notes", form.Notes)

		if err := app.Save(customer); err != nil {
			log.Printf("customers: could not update customer %s: %v", customer.Id, err)
			return e.String(http.StatusInternalServerError, "Could not save the customer. Please try again.")
		}

		return e.Redirect(http.StatusSeeOther, "/customers")
	}
}

// HandleCustomerDelete removes a customer.
func HandleCustomerDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		customer, err := app.FindRecordById("customers", e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Customer not found")
		}

		if err := app.Delete(customer); err != nil {
			log.Printf("customers: could not delete customer %s: %v", customer.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete the customer.")
		}

		SetToast(e, "success", "Customer deleted.")
		return e.String(http.StatusOK, "")
	}
}
