package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AdminBookingsHandler exposes platform-admin booking management.
type AdminBookingsHandler struct {
	service *service.BookingService
}

// NewAdminBookingsHandler constructs handler.
func NewAdminBookingsHandler(bookingService *service.BookingService) *AdminBookingsHandler {
	return &AdminBookingsHandler{service: bookingService}
}

// List GET /admin/bookings.
func (h *AdminBookingsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	bookings, err := h.service.List(c.Context(), service.BookingListInput{
		CompanyID: c.Query("company_id"),
		Status:    c.Query("status"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.NewBookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/bookings/:id.
func (h *AdminBookingsHandler) Get(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	booking, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// UpdateStatus PUT /admin/bookings/:id/status.
func (h *AdminBookingsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	booking, err := h.service.UpdateStatus(c.Context(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// Delete DELETE /admin/bookings/:id.
func (h *AdminBookingsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AttachResource POST /admin/bookings/:id/resources.
func (h *AdminBookingsHandler) AttachResource(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.AttachResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resource, err := h.service.AttachResource(c.Context(), actor, c.Params("id"), service.ResourceInput{
		Type:       domain.ResourceType(strings.ToUpper(req.Type)),
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		StorageKey: req.StorageKey,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewResourceResponse(resource)})
}
