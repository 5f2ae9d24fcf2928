package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/farm-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/farm-helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	FarmerIssues   *handlers.FarmerIssuesHandler
	AdminIssues    *handlers.AdminIssuesHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api/v1")

	api.Get("/health/live", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	farmer := api.Group("/farmer", cfg.AuthMiddleware.Handle, auth.RequireFarmer())
	farmer.Post("/issues", cfg.FarmerIssues.CreateIssue)
	farmer.Get("/issues", cfg.FarmerIssues.ListIssues)
	farmer.Get("/issues/:id", cfg.FarmerIssues.GetIssue)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/issues", cfg.AdminIssues.ListIssues)
	admin.Get("/issues/:id", cfg.AdminIssues.GetIssue)
	admin.Patch("/issues/:id/status", cfg.AdminIssues.UpdateStatus)
	admin.Patch("/issues/:id/respond", cfg.AdminIssues.Respond)
	admin.Get("/analytics/summary", cfg.Analytics.Summary)
	admin.Get("/analytics/trends", cfg.Analytics.Trends)
}
