package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// UserService handles admin and company-admin account moderation.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UserUpdateInput describes mutable account fields.
type UserUpdateInput struct {
	Name  *string
	Phone *string
	Role  *domain.Role
}

// List returns accounts matching the filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Get loads one account, enforcing company scope for non-admin actors.
func (s *UserService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.checkScope(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update mutates account fields. Only platform admins may change roles.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		if !actor.Role.IsAdmin() {
			return nil, apperrors.NewForbidden("admin role required to change roles")
		}
		user.Role = *input.Role
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Approve activates a pending account. The operation is idempotent: approving
// an already-active account returns it unchanged.
func (s *UserService) Approve(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusActive && user.Enabled {
		return user, nil
	}
	user.Status = domain.UserStatusActive
	user.Enabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishModeration(ctx, events.EventUserApproved, actor, user)
	return user, nil
}

// Deny rejects a pending account. Idempotent like Approve.
func (s *UserService) Deny(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusDenied && !user.Enabled {
		return user, nil
	}
	user.Status = domain.UserStatusDenied
	user.Enabled = false
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishModeration(ctx, events.EventUserDenied, actor, user)
	return user, nil
}

// SetAccess toggles the enabled flag on an account.
func (s *UserService) SetAccess(ctx context.Context, actor *domain.User, id string, enabled bool) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if user.Enabled == enabled {
		return user, nil
	}
	user.Enabled = enabled
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishModeration(ctx, events.EventUserAccessChanged, actor, user)
	return user, nil
}

// checkScope allows platform admins everywhere and company admins within
// their own company.
func (s *UserService) checkScope(actor, target *domain.User) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	if actor.Role.AtLeast(domain.RoleCompanyAdmin) && actor.CompanyID == target.CompanyID {
		return nil
	}
	return apperrors.NewForbidden("outside company scope")
}

func (s *UserService) publishModeration(ctx context.Context, eventType events.EventType, actor, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actor.ID,
		CompanyID: user.CompanyID,
		Timestamp: time.Now(),
		Payload: events.UserModerationPayload{
			UserID:  user.ID,
			Status:  user.Status,
			Enabled: user.Enabled,
		},
	})
}
