// Package api assembles the HTTP surface: middleware chain, public
// routes, and the guarded admin routes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/puentehua/centro-admin/internal/api/handlers"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/rbac"
	"github.com/puentehua/centro-admin/pkg/config"
	"gorm.io/gorm"
)

// NewRouter wires the full middleware chain. Order matters: the CSRF
// origin check runs before authentication so a cross-site request is
// rejected before any credential is even looked at, and the body size
// cap is in place before any handler reads a byte.
func NewRouter(
	cfg *config.Config,
	db *gorm.DB,
	logger *slog.Logger,
	jwtService *auth.JWTService,
	h *handlers.Handler,
) http.Handler {
	allowedOrigins := cfg.Server.AllowedOrigins()

	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.CSRF(allowedOrigins))
	r.Use(middleware.MaxBytes(middleware.MaxBodyBytes))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: no session required, still behind CSRF and
		// the body cap.
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/invitations/token/{token}", h.GetInvitationByToken)
		r.Post("/invitations/token/{token}/accept", h.AcceptInvitation)
		r.Post("/inquiries", h.CreateInquiry)
		r.Post("/exams/{id}/register", h.RegisterForExam)
		r.Get("/public/classes", h.ListPublicClasses)
		r.Get("/public/events", h.ListPublicEvents)
		r.Get("/public/exams", h.ListPublicExamSessions)

		// Admin surface: authentication resolves the session, then each
		// route group re-reads the profile row for authorization.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService))

			r.With(middleware.RequireRole(db, rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleOfficer)).
				Get("/auth/me", h.Me)
			r.With(middleware.RequireRole(db, rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleOfficer)).
				Put("/auth/me", h.UpdateSelf)

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionView)).
					Get("/", h.ListUsers)
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionEdit)).
					Patch("/{id}", h.UpdateUser)
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionDelete)).
					Delete("/{id}", h.DeleteUser)
			})

			r.Route("/invitations", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionView)).
					Get("/", h.ListInvitations)
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionCreate)).
					Post("/", h.CreateInvitation)
				r.With(middleware.RequirePermission(db, rbac.ResourceUsers, rbac.ActionEdit)).
					Delete("/{id}", h.RevokeInvitation)
			})

			r.Route("/classes", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceClasses, rbac.ActionView)).
					Get("/", h.ListClasses)
				r.With(middleware.RequirePermission(db, rbac.ResourceClasses, rbac.ActionView)).
					Get("/{id}", h.GetClass)
				r.With(middleware.RequirePermission(db, rbac.ResourceClasses, rbac.ActionCreate)).
					Post("/", h.CreateClass)
				r.With(middleware.RequirePermission(db, rbac.ResourceClasses, rbac.ActionEdit)).
					Put("/{id}", h.UpdateClass)
				r.With(middleware.RequirePermission(db, rbac.ResourceClasses, rbac.ActionDelete)).
					Delete("/{id}", h.DeleteClass)
			})

			r.Route("/events", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceEvents, rbac.ActionView)).
					Get("/", h.ListEvents)
				r.With(middleware.RequirePermission(db, rbac.ResourceEvents, rbac.ActionView)).
					Get("/{id}", h.GetEvent)
				r.With(middleware.RequirePermission(db, rbac.ResourceEvents, rbac.ActionCreate)).
					Post("/", h.CreateEvent)
				r.With(middleware.RequirePermission(db, rbac.ResourceEvents, rbac.ActionEdit)).
					Put("/{id}", h.UpdateEvent)
				r.With(middleware.RequirePermission(db, rbac.ResourceEvents, rbac.ActionDelete)).
					Delete("/{id}", h.DeleteEvent)
			})

			r.Route("/team", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceTeam, rbac.ActionView)).
					Get("/", h.ListTeamMembers)
				r.With(middleware.RequirePermission(db, rbac.ResourceTeam, rbac.ActionCreate)).
					Post("/", h.CreateTeamMember)
				r.With(middleware.RequirePermission(db, rbac.ResourceTeam, rbac.ActionEdit)).
					Put("/{id}", h.UpdateTeamMember)
				r.With(middleware.RequirePermission(db, rbac.ResourceTeam, rbac.ActionDelete)).
					Delete("/{id}", h.DeleteTeamMember)
			})

			r.Route("/exams", func(r chi.Router) {
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionView)).
					Get("/", h.ListExamSessions)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionView)).
					Get("/{id}", h.GetExamSession)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionCreate)).
					Post("/", h.CreateExamSession)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionEdit)).
					Put("/{id}", h.UpdateExamSession)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionDelete)).
					Delete("/{id}", h.DeleteExamSession)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionView)).
					Get("/{id}/registrations", h.ListExamRegistrations)
				r.With(middleware.RequirePermission(db, rbac.ResourceHSK, rbac.ActionEdit)).
					Patch("/registrations/{id}", h.UpdateExamRegistration)
			})

			// Registered directly rather than via Route(): a mounted
			// subrouter at /inquiries would shadow the public POST above.
			r.With(middleware.RequirePermission(db, rbac.ResourceInquiries, rbac.ActionView)).
				Get("/inquiries", h.ListInquiries)
			r.With(middleware.RequirePermission(db, rbac.ResourceInquiries, rbac.ActionEdit)).
				Patch("/inquiries/{id}", h.UpdateInquiryStatus)
			r.With(middleware.RequirePermission(db, rbac.ResourceInquiries, rbac.ActionDelete)).
				Delete("/inquiries/{id}", h.DeleteInquiry)

			r.With(middleware.RequirePermission(db, rbac.ResourceAuditLogs, rbac.ActionView)).
				Get("/audit-logs", h.ListAuditLogs)
		})
	})

	return r
}
