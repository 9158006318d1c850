package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/api/v1/middleware"
	"github.com/clienttrack/clienttrack/internal/logger"
	"github.com/clienttrack/clienttrack/internal/services"
)

// AuthHandler handles HTTP requests for identity operations
type AuthHandler struct {
	*APIHandler
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(api *APIHandler) *AuthHandler {
	return &AuthHandler{
		APIHandler: api,
	}
}

// signinRequest carries the fields of a signin
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// callbackRequest carries the profile fields of an externally-authenticated
// principal
type callbackRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Signup registers a new client account
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgMissingFields})
	}

	user, err := h.auth.Register(c.Context(), req)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgMissingFields})
	case errors.Is(err, services.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgWeakPassword})
	case errors.Is(err, services.ErrEmailExists):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgEmailExists})
	case err != nil:
		logger.Errorf("signup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgSignupFailed})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"client":  user,
	})
}

// Signin verifies credentials and returns the profile with a session token
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req signinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgMissingLogin})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgMissingLogin})
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidLogin) {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: ErrMsgInvalidLogin})
	}
	if err != nil {
		logger.Errorf("signin failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgSigninFailed})
	}

	return c.JSON(fiber.Map{
		"client": user,
		"token":  token,
	})
}

// Me returns the signed-in principal's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := h.users.GetByID(c.Context(), principal.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgProfileNotFound})
	}
	if err != nil {
		logger.Errorf("profile lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
	}

	return c.JSON(fiber.Map{"client": user})
}

// Signout acknowledges a signout. Sessions are bearer tokens held by the
// client; there is no server-side session to tear down.
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// Callback ensures a profile exists for an externally-authenticated
// principal, creating one on first sign-in
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	var req callbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgProfileRequired})
	}

	user, err := h.auth.EnsureProfile(c.Context(), req.Email, req.Name, req.Company, req.Phone)
	if errors.Is(err, services.ErrMissingFields) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgProfileRequired})
	}
	if err != nil {
		logger.Errorf("profile upsert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"client":  user,
	})
}
