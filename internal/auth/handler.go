package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the admin login endpoint.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the auth HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login validates credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Missing credentials"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Missing credentials"})
	}

	token, err := h.svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		h.logger.Error("login", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.Status(http.StatusOK).JSON(loginResponse{Token: token, Username: req.Username})
}
