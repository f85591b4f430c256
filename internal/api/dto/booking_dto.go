package dto

import (
	"time"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	AssetID        string              `json:"asset_id"`
	JobTypes       []string            `json:"job_types"`
	FlightDate     *time.Time          `json:"flight_date"`
	Scheduling     string              `json:"scheduling"`
	ServiceOptions map[string]any      `json:"service_options"`
	SiteContact    *domain.SiteContact `json:"site_contact"`
	Location       string              `json:"location"`
	Notes          string              `json:"notes"`
}

// UpdateBookingStatusRequest payload. Status is accepted case-insensitively.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse is the public booking shape.
type BookingResponse struct {
	ID             string               `json:"id"`
	CompanyID      string               `json:"company_id"`
	UserID         string               `json:"user_id"`
	AssetID        string               `json:"asset_id"`
	AssetName      string               `json:"asset_name"`
	Status         domain.BookingStatus `json:"status"`
	JobTypes       []string             `json:"job_types"`
	FlightDate     *time.Time           `json:"flight_date,omitempty"`
	Scheduling     string               `json:"scheduling,omitempty"`
	ServiceOptions map[string]any       `json:"service_options,omitempty"`
	SiteContact    *domain.SiteContact  `json:"site_contact,omitempty"`
	Postcode       string               `json:"postcode,omitempty"`
	Location       string               `json:"location,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID,
		CompanyID:      booking.CompanyID,
		UserID:         booking.UserID,
		AssetID:        booking.AssetID,
		AssetName:      booking.AssetName,
		Status:         booking.Status,
		JobTypes:       booking.JobTypes,
		FlightDate:     booking.FlightDate,
		Scheduling:     booking.Scheduling,
		ServiceOptions: booking.ServiceOptions,
		SiteContact:    booking.SiteContact,
		Postcode:       booking.Postcode,
		Location:       booking.Location,
		Notes:          booking.Notes,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}
}

// AttachResourceRequest payload.
type AttachResourceRequest struct {
	Type       string `json:"type"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	StorageKey string `json:"storage_key"`
}

// ResourceResponse is the public resource shape.
type ResourceResponse struct {
	ID         string              `json:"id"`
	BookingID  string              `json:"booking_id"`
	Type       domain.ResourceType `json:"type"`
	FileName   string              `json:"file_name"`
	MimeType   string              `json:"mime_type,omitempty"`
	SizeBytes  int64               `json:"size_bytes"`
	StorageKey string              `json:"storage_key"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewResourceResponse maps a domain resource.
func NewResourceResponse(resource *domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:         resource.ID,
		BookingID:  resource.BookingID,
		Type:       resource.Type,
		FileName:   resource.FileName,
		MimeType:   resource.MimeType,
		SizeBytes:  resource.SizeBytes,
		StorageKey: resource.StorageKey,
		CreatedAt:  resource.CreatedAt,
	}
}
