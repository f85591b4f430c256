package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AdminCompaniesHandler exposes platform-admin company management.
type AdminCompaniesHandler struct {
	service *service.CompanyService
}

// NewAdminCompaniesHandler constructs handler.
func NewAdminCompaniesHandler(companyService *service.CompanyService) *AdminCompaniesHandler {
	return &AdminCompaniesHandler{service: companyService}
}

// List GET /admin/companies.
func (h *AdminCompaniesHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.CompanyFilter{Limit: limit, Offset: offset}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseCompanyStatus(raw)
		if !ok {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}

	summaries, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, dto.NewCompanyResponse(&summaries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/companies/:id.
func (h *AdminCompaniesHandler) Get(c *fiber.Ctx) error {
	summary, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(summary)})
}

// Create POST /admin/companies.
func (h *AdminCompaniesHandler) Create(c *fiber.Ctx) error {
	_, input, err := parseCompanyRequest(c)
	if err != nil {
		return err
	}

	company, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	summary := &service.CompanySummary{Company: *company}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(summary)})
}

// Update PUT /admin/companies/:id.
func (h *AdminCompaniesHandler) Update(c *fiber.Ctx) error {
	_, input, err := parseCompanyRequest(c)
	if err != nil {
		return err
	}

	company, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	summary, err := h.service.Get(c.Context(), company.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(summary)})
}

// Delete DELETE /admin/companies/:id.
func (h *AdminCompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCompanyRequest(c *fiber.Ctx) (*dto.CompanyRequest, service.CompanyInput, error) {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, service.CompanyInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.CompanyInput{Name: req.Name, EmailDomain: req.Domain}
	if req.Status != "" {
		status, ok := domain.ParseCompanyStatus(req.Status)
		if !ok {
			return nil, service.CompanyInput{}, apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
		}
		input.Status = &status
	}
	return &req, input, nil
}
