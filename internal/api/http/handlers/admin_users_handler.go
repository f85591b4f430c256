package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AdminUsersHandler exposes platform-admin account management.
type AdminUsersHandler struct {
	service *service.UserService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(userService *service.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{service: userService}
}

// List GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.UserFilter{Limit: limit, Offset: offset}

	if raw := c.Query("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": raw})
		}
		filter.Role = &role
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseUserStatus(raw)
		if !ok {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	if companyID := c.Query("company_id"); companyID != "" {
		filter.CompanyID = &companyID
	}

	users, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/users/:id.
func (h *AdminUsersHandler) Get(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update PUT /admin/users/:id.
func (h *AdminUsersHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UserUpdateInput{Name: req.Name, Phone: req.Phone}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": *req.Role})
		}
		input.Role = &role
	}

	user, err := h.service.Update(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete DELETE /admin/users/:id.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Approve POST /admin/users/:id/approve.
func (h *AdminUsersHandler) Approve(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Approve(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Deny POST /admin/users/:id/deny.
func (h *AdminUsersHandler) Deny(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Deny(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// SetAccess POST /admin/users/:id/access.
func (h *AdminUsersHandler) SetAccess(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.SetAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.SetAccess(c.Context(), actor, c.Params("id"), req.Enabled)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func requireActor(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}
