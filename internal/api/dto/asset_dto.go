package dto

import (
	"time"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// CreateAssetRequest payload.
type CreateAssetRequest struct {
	Name        string         `json:"name"`
	AssetType   string         `json:"asset_type"`
	Address     string         `json:"address"`
	Postcode    string         `json:"postcode"`
	Area        float64        `json:"area"`
	Coordinates []domain.Point `json:"coordinates"`
	CenterPoint *domain.Point  `json:"center_point"`
}

// AssetResponse is the public asset shape.
type AssetResponse struct {
	ID          string         `json:"id"`
	CompanyID   string         `json:"company_id"`
	CreatedBy   string         `json:"created_by"`
	Name        string         `json:"name"`
	AssetType   string         `json:"asset_type"`
	Address     string         `json:"address,omitempty"`
	Postcode    string         `json:"postcode,omitempty"`
	Area        float64        `json:"area"`
	Coordinates []domain.Point `json:"coordinates"`
	CenterPoint *domain.Point  `json:"center_point,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewAssetResponse maps a domain asset.
func NewAssetResponse(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:          asset.ID,
		CompanyID:   asset.CompanyID,
		CreatedBy:   asset.CreatedBy,
		Name:        asset.Name,
		AssetType:   asset.AssetType,
		Address:     asset.Address,
		Postcode:    asset.Postcode,
		Area:        asset.Area,
		Coordinates: asset.Coordinates,
		CenterPoint: asset.CenterPoint,
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
}
