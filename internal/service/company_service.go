package service

import (
	"context"
	"strings"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// CompanySummary pairs a company with its derived member count.
type CompanySummary struct {
	Company   domain.Company
	UserCount int
}

// CompanyService manages company records.
type CompanyService struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository, users repository.UserRepository) *CompanyService {
	return &CompanyService{companies: companies, users: users}
}

// CompanyInput describes create/update fields.
type CompanyInput struct {
	Name        string
	EmailDomain string
	Status      *domain.CompanyStatus
}

// List returns companies with user counts.
func (s *CompanyService) List(ctx context.Context, filter repository.CompanyFilter) ([]CompanySummary, error) {
	companies, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summaries := make([]CompanySummary, 0, len(companies))
	for _, company := range companies {
		count, err := s.users.CountByCompany(ctx, company.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		summaries = append(summaries, CompanySummary{Company: company, UserCount: count})
	}
	return summaries, nil
}

// Get loads one company with its user count.
func (s *CompanyService) Get(ctx context.Context, id string) (*CompanySummary, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	count, err := s.users.CountByCompany(ctx, company.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &CompanySummary{Company: *company, UserCount: count}, nil
}

// Create registers a company. Domains are unique.
func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	emailDomain := strings.ToLower(strings.TrimSpace(input.EmailDomain))
	if input.Name == "" || emailDomain == "" {
		return nil, apperrors.NewValidationError("name and domain required", nil)
	}
	if _, err := s.companies.GetByDomain(ctx, emailDomain); err == nil {
		return nil, apperrors.NewConflict("domain already registered", map[string]any{"domain": emailDomain})
	}

	status := domain.CompanyStatusActive
	if input.Status != nil {
		status = *input.Status
	}
	company := &domain.Company{
		Name:        input.Name,
		EmailDomain: emailDomain,
		Status:      status,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

// Update mutates company fields.
func (s *CompanyService) Update(ctx context.Context, id string, input CompanyInput) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.Name != "" {
		company.Name = input.Name
	}
	if input.EmailDomain != "" {
		company.EmailDomain = strings.ToLower(strings.TrimSpace(input.EmailDomain))
	}
	if input.Status != nil {
		company.Status = *input.Status
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

// Delete removes a company. Companies with members cannot be removed.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	count, err := s.users.CountByCompany(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("company has members", map[string]any{"user_count": count})
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
