// Package api provides the HTTP API server and handlers for the SteamWatch application.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/steamwatch/steamwatch-server/internal/http/response"
	"github.com/steamwatch/steamwatch-server/internal/service"
	"github.com/steamwatch/steamwatch-server/internal/steam"
	"github.com/steamwatch/steamwatch-server/internal/store"
	"github.com/steamwatch/steamwatch-server/internal/validation"
)

// SearchClient runs free-text storefront searches for the proxy endpoint.
type SearchClient interface {
	Search(ctx context.Context, term string) ([]steam.SearchResult, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *store.Store
	tracker   *service.TrackerService
	search    SearchClient
	notifier  service.Notifier
	validator *validation.Validator
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, tracker *service.TrackerService, search SearchClient, notifier service.Notifier, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		tracker:   tracker,
		search:    search,
		notifier:  notifier,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	// Games.
	s.router.Get("/games", s.handleListGames)
	s.router.Get("/games/latest", s.handleListGamesLatest)
	s.router.Post("/games", s.handleAddGame)
	s.router.Post("/games/track", s.handleTrackGame)
	s.router.Delete("/games/{appid}", s.handleDeleteGame)

	// Single-game lookups.
	s.router.Get("/game", s.handleGetGame)
	s.router.Get("/game/{appid}/history", s.handleGetHistory)

	// Tracking cycle.
	s.router.Post("/track/run", s.handleRunCycle)

	// Alerts.
	s.router.Post("/alert/discount", s.handleCreateAlert)
	s.router.Get("/alerts", s.handleListAlerts)
	s.router.Delete("/alert/{id}", s.handleDeleteAlert)

	// Storefront search proxy.
	s.router.Get("/steam/search", s.handleSteamSearch)

	// Mail transport check.
	s.router.Post("/test-email", s.handleTestEmail)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"message": "backend is running",
	}, s.logger)
}
