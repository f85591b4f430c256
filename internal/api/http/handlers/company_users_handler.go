package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// CompanyUsersHandler exposes company-admin member management.
type CompanyUsersHandler struct {
	service *service.UserService
}

// NewCompanyUsersHandler constructs handler.
func NewCompanyUsersHandler(userService *service.UserService) *CompanyUsersHandler {
	return &CompanyUsersHandler{service: userService}
}

// List GET /companies/:companyId/users.
func (h *CompanyUsersHandler) List(c *fiber.Ctx) error {
	_, companyID, err := h.scopedCompany(c)
	if err != nil {
		return err
	}

	limit, offset := parsePagination(c)
	users, err := h.service.List(c.Context(), repository.UserFilter{
		CompanyID: &companyID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Approve POST /companies/:companyId/users/:id/approve.
func (h *CompanyUsersHandler) Approve(c *fiber.Ctx) error {
	principal, _, err := h.scopedCompany(c)
	if err != nil {
		return err
	}
	user, err := h.service.Approve(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Deny POST /companies/:companyId/users/:id/deny.
func (h *CompanyUsersHandler) Deny(c *fiber.Ctx) error {
	principal, _, err := h.scopedCompany(c)
	if err != nil {
		return err
	}
	user, err := h.service.Deny(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// scopedCompany checks the path company against the caller's own company.
// Platform admins may act on any company.
func (h *CompanyUsersHandler) scopedCompany(c *fiber.Ctx) (*auth.Principal, string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, "", apperrors.NewUnauthorized("authentication required")
	}
	companyID := c.Params("companyId")
	if companyID != principal.User.CompanyID && !principal.User.Role.IsAdmin() {
		return nil, "", apperrors.NewForbidden("outside company scope")
	}
	return principal, companyID, nil
}
