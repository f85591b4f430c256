package domain

import (
	"strings"
	"time"
)

// BookingStatus enumerates lifecycle states for inspection bookings.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusScheduled BookingStatus = "SCHEDULED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus folds case so "pending", "Pending" and "PENDING" all
// resolve to the same canonical status.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return BookingStatusPending, true
	case "SCHEDULED":
		return BookingStatusScheduled, true
	case "COMPLETED":
		return BookingStatusCompleted, true
	case "CANCELLED":
		return BookingStatusCancelled, true
	default:
		return "", false
	}
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusScheduled, BookingStatusCancelled},
	BookingStatusScheduled: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// COMPLETED and CANCELLED are terminal.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SiteContact is the on-site point of contact for a flight.
type SiteContact struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	AvailableOnsite bool   `json:"available_onsite"`
}

// Booking is the aggregate for a drone inspection job.
type Booking struct {
	ID             string
	CompanyID      string
	UserID         string
	AssetID        string
	AssetName      string
	Status         BookingStatus
	JobTypes       []string
	FlightDate     *time.Time
	Scheduling     string
	ServiceOptions map[string]any
	SiteContact    *SiteContact
	Postcode       string
	Location       string
	Notes          string
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
