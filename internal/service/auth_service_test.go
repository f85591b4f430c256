package service

import (
	"context"
	"testing"

	"github.com/AlexMorrigan04/pilotforce-api/internal/config"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/session"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			RefreshTokenTTLHours:  720,
			RefreshAheadMinutes:   5,
			BcryptCost:            4,
		},
	}
}

type authFixture struct {
	service   *AuthService
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	sessions  *memSessionStore
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	store := newMemSessionStore()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:    users,
		CompanyRepo: companies,
		Sessions:    session.NewManager(store, 720),
	})
	return &authFixture{service: svc, users: users, companies: companies, sessions: store}
}

func assertStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	de := apperrors.ToDomainError(err)
	if de == nil {
		t.Fatalf("expected error with status %d, got nil", wantStatus)
	}
	if de.HTTPStatus != wantStatus {
		t.Fatalf("status = %d (%s), want %d", de.HTTPStatus, de.Message, wantStatus)
	}
}

func TestSignupFirstUserBecomesCompanyAdmin(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	result, err := fx.service.Signup(ctx, SignupInput{
		Email:       "founder@acme.com",
		Password:    "secret",
		CompanyName: "Acme Surveys",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if result.User.Role != domain.RoleCompanyAdmin {
		t.Errorf("Role = %q, want COMPANY_ADMIN", result.User.Role)
	}
	if result.User.Status != domain.UserStatusActive || !result.User.Enabled {
		t.Errorf("first user should be active and enabled, got %s enabled=%v", result.User.Status, result.User.Enabled)
	}
	if result.Auth == nil {
		t.Fatal("first user should receive tokens at signup")
	}
	if result.Auth.AccessToken == "" || result.Auth.RefreshToken == "" {
		t.Error("expected both access and refresh tokens")
	}

	company, err := fx.companies.GetByDomain(ctx, "acme.com")
	if err != nil {
		t.Fatalf("company should exist: %v", err)
	}
	if company.Name != "Acme Surveys" {
		t.Errorf("company name = %q", company.Name)
	}
	if result.User.CompanyID != company.ID {
		t.Error("user should belong to the created company")
	}
}

func TestSignupJoinerIsPending(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"}); err != nil {
		t.Fatalf("founder signup: %v", err)
	}
	result, err := fx.service.Signup(ctx, SignupInput{Email: "second@acme.com", Password: "secret"})
	if err != nil {
		t.Fatalf("joiner signup: %v", err)
	}
	if result.User.Role != domain.RoleUser {
		t.Errorf("Role = %q, want USER", result.User.Role)
	}
	if result.User.Status != domain.UserStatusPending || result.User.Enabled {
		t.Errorf("joiner should be pending and disabled, got %s enabled=%v", result.User.Status, result.User.Enabled)
	}
	if result.Auth != nil {
		t.Error("pending account must not receive tokens")
	}
}

func TestSignupDerivesCompanyNameFromDomain(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "pilot@skyview.co.uk", Password: "secret"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	company, err := fx.companies.GetByDomain(ctx, "skyview.co.uk")
	if err != nil {
		t.Fatalf("company should exist: %v", err)
	}
	if company.Name != "skyview" {
		t.Errorf("derived name = %q, want skyview", company.Name)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := fx.service.Signup(ctx, SignupInput{Email: "Founder@ACME.com", Password: "other"})
	assertStatus(t, err, 409)
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.service.Signup(context.Background(), SignupInput{Email: "not-an-email", Password: "secret"})
	assertStatus(t, err, 400)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, pair, err := fx.service.Login(ctx, "founder@acme.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "founder@acme.com" {
		t.Errorf("Email = %q", user.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected tokens")
	}

	claims, err := fx.service.TokenManager().ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, _, err := fx.service.Login(ctx, "founder@acme.com", "wrong")
	assertStatus(t, err, 401)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	fx := newAuthFixture()
	_, _, err := fx.service.Login(context.Background(), "nobody@acme.com", "secret")
	assertStatus(t, err, 401)
}

func TestLoginRejectsUnapprovedAccounts(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	if _, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"}); err != nil {
		t.Fatalf("founder signup: %v", err)
	}
	joiner, err := fx.service.Signup(ctx, SignupInput{Email: "pending@acme.com", Password: "secret"})
	if err != nil {
		t.Fatalf("joiner signup: %v", err)
	}

	_, _, err = fx.service.Login(ctx, "pending@acme.com", "secret")
	assertStatus(t, err, 403)

	joiner.User.Status = domain.UserStatusDenied
	if err := fx.users.Update(ctx, joiner.User); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, _, err = fx.service.Login(ctx, "pending@acme.com", "secret")
	assertStatus(t, err, 403)

	joiner.User.Status = domain.UserStatusActive
	joiner.User.Enabled = false
	if err := fx.users.Update(ctx, joiner.User); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, _, err = fx.service.Login(ctx, "pending@acme.com", "secret")
	assertStatus(t, err, 403)
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	result, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, pair, err := fx.service.Refresh(ctx, result.Auth.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if user.ID != result.User.ID {
		t.Errorf("user = %q, want %q", user.ID, result.User.ID)
	}
	if pair.RefreshToken == result.Auth.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	_, _, err = fx.service.Refresh(ctx, result.Auth.RefreshToken)
	assertStatus(t, err, 401)
}

func TestRefreshRevokesSessionWhenAccountLocked(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	result, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	result.User.Enabled = false
	if err := fx.users.Update(ctx, result.User); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, _, err = fx.service.Refresh(ctx, result.Auth.RefreshToken)
	assertStatus(t, err, 403)
	if len(fx.sessions.sessions) != 0 {
		t.Error("failed refresh must not leave a live session behind")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	result, err := fx.service.Signup(ctx, SignupInput{Email: "founder@acme.com", Password: "secret"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := fx.service.Logout(ctx, result.Auth.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(fx.sessions.sessions) != 0 {
		t.Error("logout must clear session state")
	}
	_, _, err = fx.service.Refresh(ctx, result.Auth.RefreshToken)
	assertStatus(t, err, 401)
}

func TestLogoutRequiresToken(t *testing.T) {
	fx := newAuthFixture()
	err := fx.service.Logout(context.Background(), "  ")
	assertStatus(t, err, 400)
}
