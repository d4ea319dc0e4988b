package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/covolex/internal/config"
	"github.com/dgallion1/covolex/internal/session"
)

// Server is the HTTP boundary of covolex: it exposes document loading,
// brand/category/field resolution, selection accumulation, and report
// generation to the interactive layer.
type Server struct {
	router    chi.Router
	cache     *session.Cache
	selection *session.Selection
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cache *session.Cache, selection *session.Selection, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		cache:     cache,
		selection: selection,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints (auth is skipped when no API key is set).
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleLoadDocument)
		r.Delete("/api/documents", s.handleInvalidateDocument)
		r.Get("/api/documents/brands", s.handleBrands)
		r.Get("/api/documents/categories", s.handleCategories)
		r.Get("/api/categories/{category}/subtags", s.handleSubtags)

		r.Post("/api/resolve", s.handleResolve)

		r.Post("/api/selection", s.handleAddSelection)
		r.Get("/api/selection", s.handleListSelection)
		r.Delete("/api/selection", s.handleClearSelection)
		r.Delete("/api/selection/item", s.handleRemoveSelection)

		r.Post("/api/reports", s.handleGenerateReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
