// Package messages provides the inbox of contact form submissions.
package messages

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db/controller/content"
	"github.com/jlsurveying/jls-web/internal/db/models"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const (
	// Path is the base path of the inbox.
	Path = handler.AdminPath + "/messages"

	// TemplateList is the template for the inbox.
	TemplateList = "admin/messages/list"
	// TemplateView is the template for a single message.
	TemplateView = "admin/messages/view"
)

// Filters lists the inbox filters in display order.
var Filters = []string{content.FilterAll, content.FilterUnread, content.FilterRead} //nolint:gochecknoglobals

// Service is the inbox handler.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, auth.RequireAdmin, s.List)
	app.Get(Path+"/:id", auth.RequireAdmin, s.View)
	app.Post(Path+"/:id/unread", auth.RequireAdmin, s.MarkUnread)
	app.Post(Path+"/:id/delete", auth.RequireAdmin, s.Delete)
}

func filterOf(c *fiber.Ctx) string {
	switch f := c.Query("filter"); f {
	case content.FilterUnread, content.FilterRead:
		return f
	default:
		return content.FilterAll
	}
}

// List renders the inbox, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Messages", navigation.SectionMessages, "list").
		AddBreadcrumb("Dashboard", handler.AdminPath, false).
		AddBreadcrumb("Messages", Path, true)

	filter := filterOf(c)

	items, err := content.List[models.Message](s.db, content.MessageQuery(filter))
	if err != nil {
		log.Error().Err(err).Msg("failed to list messages")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
			"Navigation": nav,
			"Filter":     filter,
			"Filters":    Filters,
			"Error":      "Failed to load messages",
		}, handler.AdminLayout)
	}

	unread, err := content.Count[models.Message](s.db, map[string]any{"read": false})
	if err != nil {
		log.Warn().Err(err).Msg("failed to count unread messages")
	}

	data := fiber.Map{
		"Navigation": nav,
		"Messages":   items,
		"Filter":     filter,
		"Filters":    Filters,
		"Unread":     unread,
	}

	if c.Query("status") == "deleted" {
		data["Success"] = "Message deleted successfully"
	}

	return c.Render(TemplateList, data, handler.AdminLayout)
}

func (s *Service) load(c *fiber.Ctx) (*models.Message, error) {
	id, ok := handler.ParseID(c.Params("id"))
	if !ok {
		return nil, content.ErrNotFound
	}

	return content.Get[models.Message](s.db, id)
}

func (s *Service) failed(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, content.ErrNotFound) {
		return c.Redirect(Path)
	}

	log.Error().Err(err).Msg(msg)

	return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
		"Navigation": navigation.NewContext("Messages", navigation.SectionMessages, "list"),
		"Filters":    Filters,
		"Filter":     content.FilterAll,
		"Error":      "Failed to process message",
	}, handler.AdminLayout)
}

// View renders a message and marks it read.
func (s *Service) View(c *fiber.Ctx) error {
	msg, err := s.load(c)
	if err != nil {
		return s.failed(c, err, "failed to load message")
	}

	if !msg.Read {
		if err = content.SetRead(s.db, msg.ID, true); err != nil {
			return s.failed(c, err, "failed to mark message read")
		}

		msg.Read = true
	}

	nav := navigation.NewContext("Message from "+msg.Name, navigation.SectionMessages, "view").
		AddBreadcrumb("Dashboard", handler.AdminPath, false).
		AddBreadcrumb("Messages", Path, false).
		AddBreadcrumb(msg.Name, "", true)

	return c.Render(TemplateView, fiber.Map{
		"Navigation": nav,
		"Message":    msg,
	}, handler.AdminLayout)
}

// MarkUnread flags a message unread and returns to the inbox.
func (s *Service) MarkUnread(c *fiber.Ctx) error {
	msg, err := s.load(c)
	if err != nil {
		return s.failed(c, err, "failed to load message")
	}

	if err = content.SetRead(s.db, msg.ID, false); err != nil {
		return s.failed(c, err, "failed to mark message unread")
	}

	return c.Redirect(fmt.Sprintf("%s?filter=%s", Path, content.FilterUnread))
}

// Delete removes a message.
func (s *Service) Delete(c *fiber.Ctx) error {
	msg, err := s.load(c)
	if err != nil {
		return s.failed(c, err, "failed to load message")
	}

	if err = content.Delete[models.Message](s.db, msg.ID); err != nil {
		return s.failed(c, err, "failed to delete message")
	}

	log.Info().Uint64("message_id", msg.ID).Msg("message deleted")

	return c.Redirect(Path + "?status=deleted")
}
