package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/api/http/handlers"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/auth"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sla            *handlers.SlaHandler
	Assignments    *handlers.AssignmentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	adminGroup := protected.Group("/admin", auth.RequireRole(domain.UserRoleAdmin))
	adminGroup.Post("/sla/sweep", cfg.Sla.TriggerSweep)
	adminGroup.Get("/sla/status", cfg.Sla.Status)

	protected.Post("/assignments/resolve", cfg.Assignments.Resolve)
}
