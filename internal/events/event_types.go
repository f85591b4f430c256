package events

import (
	"time"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventBookingReminder      EventType = "booking_reminder"
	EventUserApproved         EventType = "user_approved"
	EventUserDenied           EventType = "user_denied"
	EventUserAccessChanged    EventType = "user_access_changed"
	EventAssetCreated         EventType = "asset_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	CompanyID string      `json:"company_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID  string     `json:"booking_id"`
	AssetID    string     `json:"asset_id"`
	JobTypes   []string   `json:"job_types"`
	FlightDate *time.Time `json:"flight_date,omitempty"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	BookingID string               `json:"booking_id"`
	OldStatus domain.BookingStatus `json:"old_status"`
	NewStatus domain.BookingStatus `json:"new_status"`
}

// BookingReminderPayload payload.
type BookingReminderPayload struct {
	BookingID  string    `json:"booking_id"`
	AssetName  string    `json:"asset_name"`
	FlightDate time.Time `json:"flight_date"`
}

// UserModerationPayload payload for approve/deny/access events.
type UserModerationPayload struct {
	UserID  string            `json:"user_id"`
	Status  domain.UserStatus `json:"status"`
	Enabled bool              `json:"enabled"`
}

// AssetCreatedPayload payload.
type AssetCreatedPayload struct {
	AssetID   string `json:"asset_id"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
}
