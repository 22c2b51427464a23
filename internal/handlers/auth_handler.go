package handlers

import (
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for operator authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new operator registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	operator, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}

	// Operator.Password is never serialized.
	return created(c, operator, "Operator registered successfully")
}

// HandleLogin handles operator login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(Response{
		IsSuccess: true,
		Data:      fiber.Map{"token": token},
		Message:   "Login successful",
	})
}
