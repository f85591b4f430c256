package dto

import (
	"time"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
)

// UpdateUserRequest payload for admin user mutation. Role accepts the legacy
// aliases and folds case.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

// SetAccessRequest payload for the enable/disable toggle.
type SetAccessRequest struct {
	Enabled bool `json:"enabled"`
}

// CompanyRequest payload for company create/update.
type CompanyRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Status string `json:"status"`
}

// CompanyResponse is the public company shape.
type CompanyResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	EmailDomain string               `json:"email_domain"`
	Status      domain.CompanyStatus `json:"status"`
	UserCount   int                  `json:"user_count"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewCompanyResponse maps a company summary.
func NewCompanyResponse(summary *service.CompanySummary) CompanyResponse {
	return CompanyResponse{
		ID:          summary.Company.ID,
		Name:        summary.Company.Name,
		EmailDomain: summary.Company.EmailDomain,
		Status:      summary.Company.Status,
		UserCount:   summary.UserCount,
		CreatedAt:   summary.Company.CreatedAt,
		UpdatedAt:   summary.Company.UpdatedAt,
	}
}
