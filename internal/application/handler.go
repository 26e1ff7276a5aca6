package application

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Renderer turns an application into a downloadable PDF document.
type Renderer interface {
	Render(app Application) ([]byte, error)
}

// Handler exposes the public submission endpoint and the protected review
// endpoints.
type Handler struct {
	svc      *Service
	renderer Renderer
	logger   *slog.Logger
}

// NewHandler builds the application HTTP handler.
func NewHandler(svc *Service, renderer Renderer, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, renderer: renderer, logger: logger}
}

type submitRequest struct {
	Name                 string `json:"name"`
	PhoneNumber          string `json:"phoneNumber"`
	PrimaryContactNumber string `json:"primaryContactNumber"`
	Address              string `json:"address"`
	DateOfBirth          string `json:"dateOfBirth"`
	Gender               string `json:"gender"`
	LoanCategory         string `json:"loanCategory"`
	LoanCategoryOther    string `json:"loanCategoryOther"`
	ReferralName1        string `json:"referralName1"`
	ReferralPhone1       string `json:"referralPhone1"`
	ReferralName2        string `json:"referralName2"`
	ReferralPhone2       string `json:"referralPhone2"`
}

// Submit accepts a new application from the public form. No authentication.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	app, err := h.svc.Submit(c.UserContext(), SubmitInput{
		Name:                 req.Name,
		PhoneNumber:          req.PhoneNumber,
		PrimaryContactNumber: req.PrimaryContactNumber,
		Address:              req.Address,
		DateOfBirth:          req.DateOfBirth,
		Gender:               req.Gender,
		LoanCategory:         req.LoanCategory,
		LoanCategoryOther:    req.LoanCategoryOther,
		ReferralName1:        req.ReferralName1,
		ReferralPhone1:       req.ReferralPhone1,
		ReferralName2:        req.ReferralName2,
		ReferralPhone2:       req.ReferralPhone2,
	})
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": ve.Message, "field": ve.Field})
		}
		h.logger.Error("submit application", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":       "Application submitted",
		"applicationId": app.ID,
	})
}

// List returns all applications matching the optional query filters, most
// recent first. The full matching set is returned in one response; pagination
// is deliberately absent.
func (h *Handler) List(c *fiber.Ctx) error {
	apps, err := h.svc.List(c.UserContext(), ListInput{
		Search:       c.Query("search"),
		Gender:       c.Query("gender"),
		LoanCategory: c.Query("loanCategory"),
		FromDate:     c.Query("fromDate"),
		ToDate:       c.Query("toDate"),
	})
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": ve.Message, "field": ve.Field})
		}
		h.logger.Error("list applications", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(http.StatusOK).JSON(apps)
}

// Get returns a single application.
func (h *Handler) Get(c *fiber.Ctx) error {
	app, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
		}
		h.logger.Error("get application", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(http.StatusOK).JSON(app)
}

// ExportPDF renders the application into a fixed-layout PDF download.
func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	app, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
		}
		h.logger.Error("get application for pdf", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	buf, err := h.renderer.Render(app)
	if err != nil {
		h.logger.Error("render pdf", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", SanitizeFilename(app.Name)+".pdf"))
	return c.Status(http.StatusOK).Send(buf)
}

// Delete permanently removes an application.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "Application not found"})
		}
		h.logger.Error("delete application", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Application deleted successfully"})
}

// SanitizeFilename strips characters that could corrupt a Content-Disposition
// header built from an applicant-supplied name. Quotes, control bytes, path
// separators and non-ASCII runes are dropped; an empty result falls back to
// "application".
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f || r > 0x7e:
			return -1
		case r == '"' || r == '\\' || r == '/' || r == ';':
			return -1
		default:
			return r
		}
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "application"
	}
	return cleaned
}
