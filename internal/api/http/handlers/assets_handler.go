package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/dto"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AssetsHandler manages asset endpoints.
type AssetsHandler struct {
	service *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{service: assetService}
}

// Create POST /assets.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.service.Create(c.Context(), principal.User, service.AssetCreateInput{
		Name:        req.Name,
		AssetType:   req.AssetType,
		Address:     req.Address,
		Postcode:    req.Postcode,
		Area:        req.Area,
		Coordinates: req.Coordinates,
		CenterPoint: req.CenterPoint,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// List GET /assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := parsePagination(c)

	assets, err := h.service.List(c.Context(), principal.User, c.Query("company_id"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, dto.NewAssetResponse(&assets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	asset, err := h.service.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Delete DELETE /assets/:id.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "50"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	return limit, offset
}
