package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/http/handlers"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Elections      *handlers.ElectionHandler
	Watchlists     *handlers.WatchlistHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Protected groups chain the identity
// guard first, then a role gate where the route needs one.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/states", cfg.Elections.ListStates)
	protected.Get("/states/:id", cfg.Elections.GetState)

	protected.Get("/elections", cfg.Elections.ListElections)
	protected.Get("/elections/:id", cfg.Elections.GetElection)
	protected.Get("/elections/:id/candidates", cfg.Elections.ListCandidates)
	protected.Get("/candidates/:id", cfg.Elections.GetCandidate)

	editors := auth.Require(domain.RoleAdmin, domain.RoleEditor)
	protected.Post("/elections", editors, cfg.Elections.CreateElection)
	protected.Put("/elections/:id", editors, cfg.Elections.UpdateElection)
	protected.Delete("/elections/:id", editors, cfg.Elections.DeleteElection)
	protected.Post("/candidates", editors, cfg.Elections.CreateCandidate)

	protected.Get("/watchlist", cfg.Watchlists.List)
	protected.Post("/watchlist", cfg.Watchlists.Add)
	protected.Delete("/watchlist/:id", cfg.Watchlists.Remove)

	protected.Get("/audit", auth.Require(domain.RoleAdmin), cfg.Audit.ListRecent)
}
