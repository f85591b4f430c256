package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// AssetService manages geographic assets.
type AssetService struct {
	assets     repository.AssetRepository
	dispatcher events.Dispatcher
}

// NewAssetService constructs the service.
func NewAssetService(assets repository.AssetRepository, dispatcher events.Dispatcher) *AssetService {
	return &AssetService{assets: assets, dispatcher: dispatcher}
}

// AssetCreateInput describes asset creation.
type AssetCreateInput struct {
	Name        string
	AssetType   string
	Address     string
	Postcode    string
	Area        float64
	Coordinates []domain.Point
	CenterPoint *domain.Point
}

// Create registers an asset for the actor's company.
func (s *AssetService) Create(ctx context.Context, actor *domain.User, input AssetCreateInput) (*domain.Asset, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if len(input.Coordinates) < 3 {
		return nil, apperrors.NewValidationError("coordinates must describe a polygon", map[string]any{"points": len(input.Coordinates)})
	}

	asset := &domain.Asset{
		CompanyID:   actor.CompanyID,
		CreatedBy:   actor.ID,
		Name:        strings.TrimSpace(input.Name),
		AssetType:   input.AssetType,
		Address:     input.Address,
		Postcode:    input.Postcode,
		Area:        input.Area,
		Coordinates: input.Coordinates,
		CenterPoint: input.CenterPoint,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAssetCreated,
			ActorID:   actor.ID,
			CompanyID: asset.CompanyID,
			Timestamp: time.Now(),
			Payload: events.AssetCreatedPayload{
				AssetID:   asset.ID,
				Name:      asset.Name,
				AssetType: asset.AssetType,
			},
		})
	}
	return asset, nil
}

// List returns company assets. Admin actors may list another company by id.
func (s *AssetService) List(ctx context.Context, actor *domain.User, companyID string, limit, offset int) ([]domain.Asset, error) {
	scope := actor.CompanyID
	if companyID != "" && companyID != actor.CompanyID {
		if !actor.Role.IsAdmin() {
			return nil, apperrors.NewForbidden("outside company scope")
		}
		scope = companyID
	}
	assets, err := s.assets.ListByCompany(ctx, scope, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

// Get loads one asset within the actor's scope.
func (s *AssetService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if asset.CompanyID != actor.CompanyID && !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("outside company scope")
	}
	return asset, nil
}

// Delete removes an asset. Only the creator, a company admin or a platform
// admin may delete.
func (s *AssetService) Delete(ctx context.Context, actor *domain.User, id string) error {
	asset, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if asset.CreatedBy != actor.ID && !actor.Role.AtLeast(domain.RoleCompanyAdmin) {
		return apperrors.NewForbidden("insufficient role")
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
