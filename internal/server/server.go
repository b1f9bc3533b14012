// Package server exposes the tracker over HTTP. Identity comes from either
// the tsnet whois middleware or a dev fallback; the sync endpoint is
// additionally gated by an API key.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/fitmyself/internal/models"
	"github.com/claude/fitmyself/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Store is the persistence surface the HTTP layer needs: everything the
// tracker sessions use plus the direct read and update paths.
type Store interface {
	tracker.Store
	UpdateProfile(ctx context.Context, userID int, p models.UserProfile) error
	QueryVerifications(ctx context.Context, userID, limit int) ([]models.VerificationRow, error)
	QueryVerificationsByDate(ctx context.Context, userID int, date string) ([]models.VerificationRow, error)
}

// Verifier assesses task photos and answers coach chat. *verify.Client
// satisfies it.
type Verifier interface {
	Configured() bool
	VerifyWorkoutImage(ctx context.Context, imageB64, mimeType, workoutType string) (models.AIVerdict, error)
	VerifyMealImage(ctx context.Context, imageB64, mimeType, mealType string) (models.AIVerdict, error)
	Chat(ctx context.Context, message, userContext string) (string, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	svc      *tracker.Service
	verifier Verifier
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a Server with all routes configured. identity is the
// middleware that resolves the caller to a user ID (DevIdentity or
// TailscaleIdentity).
func New(store Store, verifier Verifier, apiKey string, log *slog.Logger, identity func(http.Handler) http.Handler) *Server {
	s := &Server{
		store:    store,
		svc:      tracker.NewService(store, log),
		verifier: verifier,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes(identity)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(identity func(http.Handler) http.Handler) {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(identity)

		r.Get("/me", s.handleMe)

		r.Post("/profile", s.handleCreateProfile)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleUpdateProfile)

		r.Get("/today", s.handleToday)
		r.Post("/today/water", s.handleLogWater)
		r.Post("/today/sleep", s.handleLogSleep)
		r.Post("/today/complete", s.handleCompleteTask)

		r.Post("/verify", s.handleVerify)
		r.Get("/verifications", s.handleVerifications)
		r.Post("/chat", s.handleChat)

		r.Get("/stats", s.handleStats)

		// Offline-log replay (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/sync", s.handleSync)
		})
	})
}
