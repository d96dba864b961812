package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upm-platform/complaint-service/internal/api/http/handlers"
	"github.com/upm-platform/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Complaints *handlers.ComplaintsHandler
	Admin      *handlers.AdminHandler
	Session    *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Session.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", auth.RequireAuthenticated(), cfg.Auth.Logout)

	app.Get("/", auth.RequireStudent(), cfg.Complaints.Home)
	app.Post("/", auth.RequireStudent(), cfg.Complaints.Create)
	// handler renders the {success:false} denial shape itself
	app.Post("/delete-complaint", cfg.Complaints.Delete)
	app.Get("/track-complaints", cfg.Complaints.Track)
	app.Get("/complaint-data/:id", auth.RequireAuthenticated(), cfg.Complaints.Data)
	app.Post("/submit-rating", auth.RequireAuthenticated(), cfg.Complaints.SubmitRating)

	adminGroup := app.Group("/admin", auth.RequireAdmin())
	adminGroup.Get("/dashboard", cfg.Admin.Dashboard)
	adminGroup.Get("/respond/:complaint_id", cfg.Admin.RespondForm)
	adminGroup.Post("/respond/:complaint_id", cfg.Admin.Respond)

	app.Post("/reply-complaint/:id", auth.RequireAdmin(), cfg.Admin.Reply)
}
