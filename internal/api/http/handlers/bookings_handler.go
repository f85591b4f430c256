package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// BookingsHandler manages company-scoped booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	booking, err := h.service.Create(c.Context(), principal.User, service.BookingCreateInput{
		AssetID:        req.AssetID,
		JobTypes:       req.JobTypes,
		FlightDate:     req.FlightDate,
		Scheduling:     req.Scheduling,
		ServiceOptions: req.ServiceOptions,
		SiteContact:    req.SiteContact,
		Location:       req.Location,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// List GET /bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := parsePagination(c)

	input := service.BookingListInput{
		CompanyID: principal.User.CompanyID,
		Status:    c.Query("status"),
		Limit:     limit,
		Offset:    offset,
	}
	// Regular members only see their own bookings; company admins and up see
	// the whole company.
	if !principal.User.Role.AtLeast(domain.RoleCompanyAdmin) {
		userID := principal.User.ID
		input.UserID = &userID
	}

	bookings, err := h.service.List(c.Context(), input)
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.NewBookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	booking, err := h.service.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// ListResources GET /bookings/:id/resources.
func (h *BookingsHandler) ListResources(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	resources, err := h.service.ListResources(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		items = append(items, dto.NewResourceResponse(&resources[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
