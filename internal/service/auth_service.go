package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/config"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/session"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// SignupInput describes a registration request.
type SignupInput struct {
	Username    string
	Email       string
	Name        string
	Phone       string
	Password    string
	CompanyName string
}

// SignupResult is the outcome of registration. Auth is nil when the account
// awaits approval.
type SignupResult struct {
	User *domain.User
	Auth *TokenPair
}

// AuthService owns the session lifecycle: signup, login, refresh, logout.
// All token state flows through the session manager; nothing else writes it.
type AuthService struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	sessions   *session.Manager
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	CompanyRepo repository.CompanyRepository
	Sessions    *session.Manager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		companies:  deps.CompanyRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshAheadMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup registers an account. The email domain resolves company membership:
// an unknown domain creates the company and its first user becomes an active
// company admin; joining an existing company yields a pending member that an
// admin must approve.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	emailDomain := domain.EmailDomain(email)
	if emailDomain == "" {
		return nil, apperrors.NewValidationError("valid email required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	company, firstUser, err := s.resolveCompany(ctx, emailDomain, input.CompanyName)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: hash,
		CompanyID:    company.ID,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusPending,
		Enabled:      false,
	}
	if firstUser {
		user.Role = domain.RoleCompanyAdmin
		user.Status = domain.UserStatusActive
		user.Enabled = true
	}
	if user.Username == "" {
		user.Username = email
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &SignupResult{User: user}
	if user.CanLogin() {
		pair, err := s.issueTokens(ctx, user)
		if err != nil {
			return nil, err
		}
		result.Auth = pair
	}
	return result, nil
}

// Login authenticates an account and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := s.checkLoginAllowed(user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token and issues a fresh pair. The presented
// token is consumed whether or not issuance succeeds; a concurrent refresh
// with the same token fails with 401 rather than clobbering the winner.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *TokenPair, error) {
	newToken, sess, err := s.sessions.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorized("invalid refresh token")
		}
		return nil, nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		_ = s.sessions.Revoke(ctx, newToken)
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := s.checkLoginAllowed(user); err != nil {
		_ = s.sessions.Revoke(ctx, newToken)
		return nil, nil, err
	}

	access, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		_ = s.sessions.Revoke(ctx, newToken)
		return nil, nil, apperrors.MapError(err)
	}
	return user, &TokenPair{AccessToken: access, RefreshToken: newToken, ExpiresAt: exp}, nil
}

// Logout revokes the presented session. Everything written at login is gone
// afterwards.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) checkLoginAllowed(user *domain.User) error {
	switch {
	case user.Status == domain.UserStatusPending:
		return apperrors.NewForbidden("account pending approval")
	case user.Status == domain.UserStatusDenied:
		return apperrors.NewForbidden("account denied")
	case !user.Enabled:
		return apperrors.NewForbidden("account disabled")
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	refresh, _, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *AuthService) resolveCompany(ctx context.Context, emailDomain, companyName string) (*domain.Company, bool, error) {
	company, err := s.companies.GetByDomain(ctx, emailDomain)
	if err == nil {
		return company, false, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, apperrors.MapError(err)
	}

	name := strings.TrimSpace(companyName)
	if name == "" {
		name = domain.CompanyNameFromDomain(emailDomain)
	}
	company = &domain.Company{
		Name:        name,
		EmailDomain: emailDomain,
		Status:      domain.CompanyStatusActive,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	return company, true, nil
}
