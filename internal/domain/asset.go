package domain

import "time"

// Point is a [longitude, latitude] pair.
type Point [2]float64

// Asset is a geographic area registered by a company for inspections.
type Asset struct {
	ID          string
	CompanyID   string
	CreatedBy   string
	Name        string
	AssetType   string
	Address     string
	Postcode    string
	Area        float64
	Coordinates []Point
	CenterPoint *Point
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
