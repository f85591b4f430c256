package domain

import "time"

// ResourceType enumerates booking deliverable kinds.
type ResourceType string

const (
	ResourceTypeImage   ResourceType = "IMAGE"
	ResourceTypeGeoTIFF ResourceType = "GEOTIFF"
)

// Resource is metadata for a deliverable attached to a booking. Object
// contents live in external storage and are addressed by StorageKey.
type Resource struct {
	ID         string
	BookingID  string
	Type       ResourceType
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
