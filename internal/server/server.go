package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/cache"
	"github.com/claude/liftlog/internal/draft"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale"
)

const (
	sessionCacheSize = 128
	sessionCacheTTL  = 30 * time.Second
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	drafts   *draft.Store
	sessions *cache.Cache[[]models.SessionRow]
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	ts       *tailscale.LocalClient
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, drafts *draft.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		drafts:   drafts,
		sessions: cache.New[[]models.SessionRow](sessionCacheSize, sessionCacheTTL),
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale wires the tsnet local client used to resolve user identity.
func (s *Server) SetTailscale(lc *tailscale.LocalClient) {
	s.ts = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.Identity)

	// Health (no auth)
	s.router.Get("/api/v1/health", s.handleHealth)
	s.router.Post("/api/v1/health", s.handleHealthReport)

	s.router.Get("/api/v1/me", s.handleMe)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/sessions", s.handleQuerySessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/charts", s.handleChartSeries)
	s.router.Get("/api/v1/calendar", s.handleCalendar)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Get("/api/v1/programs", s.handleQueryPrograms)
	s.router.Get("/api/v1/program-names", s.handleProgramNames)
	s.router.Get("/api/v1/goals", s.handleQueryGoals)
	s.router.Get("/api/v1/measurements", s.handleQueryMeasurements)
	s.router.Get("/api/v1/draft", s.handleGetDraft)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/sessions", s.handleCreateSession)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Delete("/api/v1/programs/{id}", s.handleDeleteProgram)
		r.Post("/api/v1/goals", s.handleCreateGoal)
		r.Put("/api/v1/goals/{id}/progress", s.handleUpdateGoalProgress)
		r.Delete("/api/v1/goals/{id}", s.handleDeleteGoal)
		r.Post("/api/v1/measurements", s.handleCreateMeasurement)
		r.Delete("/api/v1/measurements/{id}", s.handleDeleteMeasurement)
		r.Put("/api/v1/draft", s.handlePutDraft)
		r.Delete("/api/v1/draft", s.handleClearDraft)
	})
}
