package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/AlexMorrigan04/pilotforce-api/internal/api/http"
	"github.com/AlexMorrigan04/pilotforce-api/internal/api/http/handlers"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/config"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/observability"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
)

type stubUserRepo struct {
	user       *domain.User
	lastFilter repository.UserFilter
	listCalled bool
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (r *stubUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (r *stubUserRepo) Delete(ctx context.Context, id string) error         { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		copied := *r.user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.listCalled = true
	r.lastFilter = filter
	return nil, nil
}

func (r *stubUserRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	return 0, nil
}

func adminUser() *domain.User {
	now := time.Now()
	return &domain.User{
		ID:        "admin-1",
		Username:  "ops",
		Email:     "ops@pilotforce.io",
		Name:      "Ops Admin",
		Role:      domain.RoleAdmin,
		CompanyID: "company-1",
		Status:    domain.UserStatusActive,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestApp() *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	return app
}

func bearerRequest(t *testing.T, method, target, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAdminUsersListFoldsStatusCase(t *testing.T) {
	repo := &stubUserRepo{user: adminUser()}
	tokens := auth.NewTokenManager("handler-test-secret", 60, 5)
	token, _, err := tokens.GenerateToken(repo.user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	mw := auth.NewAuthMiddleware(tokens, repo)
	handler := handlers.NewAdminUsersHandler(service.NewUserService(repo, events.NewInMemoryDispatcher()))

	app := newTestApp()
	app.Get("/admin/users", mw.Handle, auth.RequireAdmin(), handler.List)

	resp, err := app.Test(bearerRequest(t, http.MethodGet, "/admin/users?status=pending", token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !repo.listCalled {
		t.Fatal("expected repository List to be called")
	}
	if repo.lastFilter.Status == nil {
		t.Fatal("expected status filter to be set")
	}
	if *repo.lastFilter.Status != domain.UserStatusPending {
		t.Fatalf("expected canonical status %q, got %q", domain.UserStatusPending, *repo.lastFilter.Status)
	}

	resp, err = app.Test(bearerRequest(t, http.MethodGet, "/admin/users?status=archived", token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestMeReportsShouldRefresh(t *testing.T) {
	cases := []struct {
		name        string
		ttlMinutes  int
		wantRefresh bool
	}{
		{name: "fresh token", ttlMinutes: 60, wantRefresh: false},
		{name: "token near expiry", ttlMinutes: 2, wantRefresh: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubUserRepo{user: adminUser()}
			cfg := config.Config{}
			cfg.Auth.JWTSecret = "handler-test-secret"
			cfg.Auth.AccessTokenTTLMinutes = tc.ttlMinutes
			cfg.Auth.RefreshAheadMinutes = 5

			authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: repo})
			token, _, err := authService.TokenManager().GenerateToken(repo.user)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}

			mw := auth.NewAuthMiddleware(authService.TokenManager(), repo)
			handler := handlers.NewAuthHandler(authService)

			app := newTestApp()
			app.Get("/auth/me", mw.Handle, handler.Me)

			resp, err := app.Test(bearerRequest(t, http.MethodGet, "/auth/me", token))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}

			var body struct {
				Data struct {
					ShouldRefresh bool `json:"should_refresh"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Data.ShouldRefresh != tc.wantRefresh {
				t.Fatalf("expected should_refresh=%v, got %v", tc.wantRefresh, body.Data.ShouldRefresh)
			}
		})
	}
}
