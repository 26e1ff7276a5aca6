package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saifinance/loan-inquiry-api/internal/application"
	"github.com/saifinance/loan-inquiry-api/internal/auth"
)

// RegisterAdminRoutes wires the login endpoint and the protected review
// endpoints. Login stays public; everything under /applications requires a
// bearer token.
func RegisterAdminRoutes(r fiber.Router, authHandler *auth.Handler, appHandler *application.Handler, bearer fiber.Handler) {
	group := r.Group("/admin")
	group.Post("/login", authHandler.Login)

	apps := group.Group("/applications", bearer)
	apps.Get("/", appHandler.List)
	apps.Get("/:id", appHandler.Get)
	apps.Get("/:id/pdf", appHandler.ExportPDF)
	apps.Delete("/:id", appHandler.Delete)
}
