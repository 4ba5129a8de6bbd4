package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

// NotFound renders the public 404 page.
func NotFound(c *fiber.Ctx) error {
	nav := navigation.NewContext("Page Not Found", "", "")

	return c.Status(fiber.StatusNotFound).Render(NotFoundTemplate, fiber.Map{
		"Navigation": nav,
	}, PublicLayout)
}

// ServerError renders the public error page with status 500.
func ServerError(c *fiber.Ctx, msg string) error {
	nav := navigation.NewContext("Something went wrong", "", "")

	return c.Status(fiber.StatusInternalServerError).Render(ServerErrorTemplate, fiber.Map{
		"Navigation": nav,
		"Error":      msg,
	}, PublicLayout)
}
