package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/job-tracker/internal/api/http/handlers"
	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/observability"
	"github.com/spec-kit/job-tracker/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Tracker        *handlers.TrackerHandler
	AuthMiddleware *auth.AuthMiddleware
	AuthLimiter    ratelimit.Limiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth", ratelimit.Middleware(cfg.AuthLimiter))
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	requireAuth := cfg.AuthMiddleware.Handle
	publisher := auth.RequireRole(domain.RolePublisher)
	applicant := auth.RequireRole(domain.RoleApplicant)
	approver := auth.RequireRole(domain.RoleApprover)

	jobs := api.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", requireAuth, publisher, cfg.Jobs.Create)
	jobs.Put("/:id", requireAuth, publisher, cfg.Jobs.Update)
	jobs.Delete("/:id", requireAuth, publisher, cfg.Jobs.Close)

	applications := api.Group("/applications", requireAuth)
	applications.Post("/", applicant, cfg.Applications.Apply)
	applications.Get("/my-applications", applicant, cfg.Applications.ListMine)
	applications.Get("/job/:job_id", publisher, cfg.Applications.ListForJob)
	applications.Put("/:id/status", approver, cfg.Applications.UpdateStatus)

	legacy := api.Group("/legacy/applications")
	legacy.Get("/", cfg.Tracker.List)
	legacy.Post("/", cfg.Tracker.Create)
	legacy.Get("/:id", cfg.Tracker.Get)
	legacy.Delete("/:id", cfg.Tracker.Delete)
}
