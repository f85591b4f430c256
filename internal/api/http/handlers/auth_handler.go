package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	result, err := h.auth.Signup(c.Context(), service.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Password:    req.Password,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}

	payload := fiber.Map{"user": dto.NewUserResponse(result.User)}
	if result.Auth != nil {
		payload["auth"] = authResponse(result.Auth)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": payload})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": authResponse(pair),
	}})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}

	user, pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": authResponse(pair),
	}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me. The should_refresh flag tells clients their access
// token is close enough to expiry to exchange the refresh token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user":           dto.NewUserResponse(principal.User),
		"should_refresh": h.auth.TokenManager().ShouldRefresh(principal.Claims, time.Now()),
	}})
}

func authResponse(pair *service.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
