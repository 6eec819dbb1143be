package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skill-bridge/server/api/http/handlers"
)

// Handlers bundles everything Register wires onto the app.
type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Interview   *handlers.InterviewHandler
	Message     *handlers.MessageHandler
	Health      *handlers.HealthHandler
}

// Middlewares are the three auth boundaries: company JWT, candidate identity
// token, and either-of-the-two for shared routes.
type Middlewares struct {
	Company   fiber.Handler
	Candidate fiber.Handler
	Principal fiber.Handler
}

// Register wires all HTTP routes onto the given Fiber app.
func Register(app *fiber.App, h Handlers, mw Middlewares) {
	api := app.Group("/api")

	// Probes for monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	co := api.Group("/company")
	co.Post("/register", h.Auth.Register)
	co.Post("/login", h.Auth.Login)

	au := api.Group("/auth")
	au.Post("/forgot-password", h.Auth.ForgotPassword)
	au.Post("/reset-password", h.Auth.ResetPassword)

	jobs := api.Group("/jobs", mw.Company)
	jobs.Post("/", h.Job.Create)
	jobs.Get("/company", h.Job.ListCompany)

	// Static segments go before the :applicationId routes so "company" is
	// never parsed as an id.
	apps := api.Group("/applications", mw.Company)
	apps.Get("/company", h.Application.ListCompany)
	apps.Get("/job/:jobId", h.Application.ListJob)
	apps.Get("/job/:jobId/stats", h.Application.Stats)
	apps.Get("/:applicationId", h.Application.Get)
	apps.Put("/:applicationId", h.Application.UpdateStatus)
	apps.Put("/:applicationId/review", h.Application.Review)

	users := api.Group("/users", mw.Candidate)
	users.Post("/profile", h.User.CreateProfile)
	users.Get("/profile", h.User.GetProfile)
	users.Put("/profile", h.User.UpdateProfile)
	users.Post("/resume", h.User.UploadResume)
	users.Post("/apply", h.User.Apply)
	users.Get("/applications", h.User.Applications)

	iv := api.Group("/interviews")
	iv.Post("/company/schedule", mw.Company, h.Interview.Schedule)
	iv.Get("/company/list", mw.Company, h.Interview.ListCompany)
	iv.Put("/company/:interviewId/status", mw.Company, h.Interview.UpdateStatus)
	iv.Put("/candidate/:interviewId/confirm", mw.Candidate, h.Interview.Confirm)
	iv.Get("/candidate/list", mw.Candidate, h.Interview.ListCandidate)

	msgs := api.Group("/messages", mw.Principal)
	msgs.Post("/send", h.Message.Send)
	msgs.Get("/application/:applicationId", h.Message.ListApplication)
	msgs.Get("/unread", h.Message.Unread)
}
