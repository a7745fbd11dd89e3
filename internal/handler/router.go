package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vorapat/event-registry-api/internal/config"
	"github.com/vorapat/event-registry-api/internal/middleware"
	"github.com/vorapat/event-registry-api/pkg/auth"
	"github.com/vorapat/event-registry-api/pkg/httpx"
)

// NewRouter wires the API routes. Auth endpoints are public; events require
// authentication; the attendee surface additionally requires the admin role.
func NewRouter(
	logger *zerolog.Logger,
	cfg *config.Config,
	jwtAuth auth.JWTAuthenticator,
	authHandler *AuthHandler,
	attendeeHandler *AttendeeHandler,
	eventHandler *EventHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	authenticated := middleware.Authenticate(jwtAuth, cfg.Token.AccessTokenSecret)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/login/mobile", authHandler.LoginMobile)
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/verify", authHandler.VerifyEmail)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		r.Route("/attendees", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireAdmin)

			r.Get("/", attendeeHandler.ListAttendees)
			r.Get("/pending", attendeeHandler.ListPendingAttendees)
			r.Get("/{id}", attendeeHandler.GetAttendee)
			r.Post("/{id}/approve", attendeeHandler.ApproveAttendee)
			r.Post("/{id}/reject", attendeeHandler.RejectAttendee)
			r.Delete("/{id}", attendeeHandler.DeleteAttendee)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(authenticated)

			r.Get("/", eventHandler.ListEvents)
			r.Get("/{id}", eventHandler.GetEvent)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Error(w, http.StatusNotFound, "not found")
	})

	return r
}
