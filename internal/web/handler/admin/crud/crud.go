// Package crud implements the list, create, edit and delete pages shared by
// the content sections of the dashboard.
package crud

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/cache"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

// Status values carried in the redirect after a mutation.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusDeleted = "deleted"
)

// ErrLoadFailed is shown when records cannot be read.
var ErrLoadFailed = errors.New("failed to load records")

// Normalizer is implemented by forms that clean their input before validation.
type Normalizer interface {
	Normalize()
}

// Resource wires a content model T edited through form F.
type Resource[T content.Model, F any] struct {
	// Singular and Plural name the records in titles and messages.
	Singular string
	Plural   string

	Path         string
	Section      string
	ListTemplate string
	FormTemplate string

	// FormOf fills a form from a record. A nil record yields the blank form.
	FormOf func(*T) F
	// Apply copies a validated form onto a record.
	Apply func(*F, *T) error
	// Paths returns the public paths showing the record.
	Paths func(*T) []string
	// FormData adds values to the form template, e.g. select options.
	FormData fiber.Map

	DB          *gorm.DB
	Revalidator cache.Revalidator
}

// Register adds the routes of the resource, all behind RequireAdmin.
func (r *Resource[T, F]) Register(app *fiber.App) {
	app.Get(r.Path, auth.RequireAdmin, r.List)
	app.Get(r.Path+"/new", auth.RequireAdmin, r.New)
	app.Post(r.Path, auth.RequireAdmin, r.Create)
	app.Get(r.Path+"/:id/edit", auth.RequireAdmin, r.Edit)
	app.Post(r.Path+"/:id", auth.RequireAdmin, r.Update)
	app.Post(r.Path+"/:id/delete", auth.RequireAdmin, r.Delete)
}

func (r *Resource[T, F]) nav(title string) *navigation.Context {
	nav := navigation.NewContext(title, r.Section, r.Section).
		AddBreadcrumb("Dashboard", handler.AdminPath, false)

	if title == r.Plural {
		return nav.AddBreadcrumb(r.Plural, r.Path, true)
	}

	return nav.AddBreadcrumb(r.Plural, r.Path, false).
		AddBreadcrumb(title, "", true)
}

func statusMessage(singular, status string) string {
	switch status {
	case StatusCreated:
		return singular + " created successfully"
	case StatusUpdated:
		return singular + " updated successfully"
	case StatusDeleted:
		return singular + " deleted successfully"
	default:
		return ""
	}
}

func (r *Resource[T, F]) revalidate(record *T) {
	if r.Revalidator == nil {
		return
	}

	var paths []string
	if r.Paths != nil {
		paths = r.Paths(record)
	}

	done := r.Revalidator.Revalidate(paths...)
	log.Debug().Strs("paths", done).Str("resource", r.Plural).Msg("revalidated pages")
}

// List renders all records, newest first.
func (r *Resource[T, F]) List(c *fiber.Ctx) error {
	nav := r.nav(r.Plural)

	items, err := content.List[T](r.DB, content.Query{Order: content.OrderNewestFirst})
	if err != nil {
		log.Error().Err(err).Str("resource", r.Plural).Msg("failed to list records")

		return c.Status(fiber.StatusInternalServerError).Render(r.ListTemplate, fiber.Map{
			"Navigation": nav,
			"Error":      ErrLoadFailed.Error(),
		}, handler.AdminLayout)
	}

	data := fiber.Map{
		"Navigation": nav,
		"Items":      items,
		"Path":       r.Path,
	}

	if msg := statusMessage(r.Singular, c.Query("status")); msg != "" {
		data["Success"] = msg
	}

	return c.Render(r.ListTemplate, data, handler.AdminLayout)
}

func (r *Resource[T, F]) renderForm(c *fiber.Ctx, status int, form F, id uint64, errs []string) error {
	title := "New " + r.Singular
	action := r.Path

	if id > 0 {
		title = "Edit " + r.Singular
		action = fmt.Sprintf("%s/%d", r.Path, id)
	}

	data := fiber.Map{
		"Navigation": r.nav(title),
		"Form":       form,
		"ID":         id,
		"IsNew":      id == 0,
		"Action":     action,
		"Path":       r.Path,
	}

	for k, v := range r.FormData {
		data[k] = v
	}

	if len(errs) > 0 {
		data["Error"] = errs
	}

	return c.Status(status).Render(r.FormTemplate, data, handler.AdminLayout)
}

// parse reads and validates the submitted form.
func (r *Resource[T, F]) parse(c *fiber.Ctx) (F, []string) {
	var form F
	if err := c.BodyParser(&form); err != nil {
		log.Debug().Err(err).Msg("failed to parse form")

		return form, []string{"Invalid form submission"}
	}

	if n, ok := any(&form).(Normalizer); ok {
		n.Normalize()
	}

	if errs := handler.Validate(&form); len(errs) > 0 {
		return form, handler.Messages(errs)
	}

	return form, nil
}

// New renders the blank form.
func (r *Resource[T, F]) New(c *fiber.Ctx) error {
	return r.renderForm(c, fiber.StatusOK, r.FormOf(nil), 0, nil)
}

// Create stores a new record.
func (r *Resource[T, F]) Create(c *fiber.Ctx) error {
	form, errs := r.parse(c)
	if len(errs) > 0 {
		return r.renderForm(c, fiber.StatusBadRequest, form, 0, errs)
	}

	record := new(T)
	if err := r.Apply(&form, record); err != nil {
		return r.renderForm(c, fiber.StatusBadRequest, form, 0, []string{err.Error()})
	}

	if err := content.Create(r.DB, record); err != nil {
		log.Error().Err(err).Str("resource", r.Plural).Msg("failed to create record")

		return r.renderForm(c, fiber.StatusInternalServerError, form, 0,
			[]string{"Failed to save " + r.Singular})
	}

	r.revalidate(record)

	return c.Redirect(r.Path + "?status=" + StatusCreated)
}

// load fetches the record named by the id route parameter.
// ok is false when a response has already been rendered.
func (r *Resource[T, F]) load(c *fiber.Ctx) (uint64, *T, bool, error) {
	id, valid := handler.ParseID(c.Params("id"))
	if !valid {
		return 0, nil, false, c.Redirect(r.Path)
	}

	record, err := content.Get[T](r.DB, id)
	if errors.Is(err, content.ErrNotFound) {
		return id, nil, false, c.Redirect(r.Path)
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Str("resource", r.Plural).Msg("failed to load record")

		return id, nil, false, c.Status(fiber.StatusInternalServerError).Render(r.ListTemplate, fiber.Map{
			"Navigation": r.nav(r.Plural),
			"Error":      ErrLoadFailed.Error(),
		}, handler.AdminLayout)
	}

	return id, record, true, nil
}

// Edit renders the form of an existing record.
func (r *Resource[T, F]) Edit(c *fiber.Ctx) error {
	id, record, ok, err := r.load(c)
	if !ok {
		return err
	}

	return r.renderForm(c, fiber.StatusOK, r.FormOf(record), id, nil)
}

// Update saves changes to an existing record.
func (r *Resource[T, F]) Update(c *fiber.Ctx) error {
	id, record, ok, err := r.load(c)
	if !ok {
		return err
	}

	form, errs := r.parse(c)
	if len(errs) > 0 {
		return r.renderForm(c, fiber.StatusBadRequest, form, id, errs)
	}

	if err = r.Apply(&form, record); err != nil {
		return r.renderForm(c, fiber.StatusBadRequest, form, id, []string{err.Error()})
	}

	if err = content.Update(r.DB, record); err != nil {
		log.Error().Err(err).Uint64("id", id).Str("resource", r.Plural).Msg("failed to update record")

		return r.renderForm(c, fiber.StatusInternalServerError, form, id,
			[]string{"Failed to save " + r.Singular})
	}

	r.revalidate(record)

	return c.Redirect(r.Path + "?status=" + StatusUpdated)
}

// Delete removes a record.
func (r *Resource[T, F]) Delete(c *fiber.Ctx) error {
	id, record, ok, err := r.load(c)
	if !ok {
		return err
	}

	if err = content.Delete[T](r.DB, id); err != nil {
		log.Error().Err(err).Uint64("id", id).Str("resource", r.Plural).Msg("failed to delete record")

		return c.Status(fiber.StatusInternalServerError).Render(r.ListTemplate, fiber.Map{
			"Navigation": r.nav(r.Plural),
			"Error":      "Failed to delete " + r.Singular,
		}, handler.AdminLayout)
	}

	r.revalidate(record)

	return c.Redirect(r.Path + "?status=" + StatusDeleted)
}
