package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saifinance/loan-inquiry-api/internal/application"
)

// RegisterSubmissionRoutes wires the public form submission endpoint.
func RegisterSubmissionRoutes(r fiber.Router, appHandler *application.Handler) {
	group := r.Group("/api/application")
	group.Post("/formsubmit", appHandler.Submit)
}
