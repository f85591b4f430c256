package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlexMorrigan04/pilotforce-api/internal/api/http/handlers"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Assets         *handlers.AssetsHandler
	Bookings       *handlers.BookingsHandler
	CompanyUsers   *handlers.CompanyUsersHandler
	AdminUsers     *handlers.AdminUsersHandler
	AdminCompanies *handlers.AdminCompaniesHandler
	AdminBookings  *handlers.AdminBookingsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/me", cfg.Auth.Me)

	assets := app.Group("/assets", cfg.AuthMiddleware.Handle)
	assets.Post("/", cfg.Assets.Create)
	assets.Get("/", cfg.Assets.List)
	assets.Get("/:id", cfg.Assets.Get)
	assets.Delete("/:id", cfg.Assets.Delete)

	bookings := app.Group("/bookings", cfg.AuthMiddleware.Handle)
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Get("/", cfg.Bookings.List)
	bookings.Get("/:id", cfg.Bookings.Get)
	bookings.Get("/:id/resources", cfg.Bookings.ListResources)

	companies := app.Group("/companies/:companyId", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCompanyAdmin))
	companies.Get("/users", cfg.CompanyUsers.List)
	companies.Post("/users/:id/approve", cfg.CompanyUsers.Approve)
	companies.Post("/users/:id/deny", cfg.CompanyUsers.Deny)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())

	admin.Get("/users", cfg.AdminUsers.List)
	admin.Get("/users/:id", cfg.AdminUsers.Get)
	admin.Put("/users/:id", cfg.AdminUsers.Update)
	admin.Delete("/users/:id", cfg.AdminUsers.Delete)
	admin.Post("/users/:id/approve", cfg.AdminUsers.Approve)
	admin.Post("/users/:id/deny", cfg.AdminUsers.Deny)
	admin.Post("/users/:id/access", cfg.AdminUsers.SetAccess)

	admin.Get("/companies", cfg.AdminCompanies.List)
	admin.Post("/companies", cfg.AdminCompanies.Create)
	admin.Get("/companies/:id", cfg.AdminCompanies.Get)
	admin.Put("/companies/:id", cfg.AdminCompanies.Update)
	admin.Delete("/companies/:id", cfg.AdminCompanies.Delete)

	admin.Get("/bookings", cfg.AdminBookings.List)
	admin.Get("/bookings/:id", cfg.AdminBookings.Get)
	admin.Put("/bookings/:id/status", cfg.AdminBookings.UpdateStatus)
	admin.Delete("/bookings/:id", cfg.AdminBookings.Delete)
	admin.Post("/bookings/:id/resources", cfg.AdminBookings.AttachResource)
}
