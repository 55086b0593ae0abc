package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/jobs"
	"github.com/mhower/cu-basketball-analytics/internal/service"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, corpus *service.Corpus, analyticsSvc *service.AnalyticsService, jobSvc *jobs.Service) *Server {
	handler := NewHandler(corpus, analyticsSvc)
	ingestHandler := NewIngestHandler(jobSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.ListGames).Methods("GET")
	api.HandleFunc("/games/{fileID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{fileID}/lineups", handler.GetGameLineups).Methods("GET")
	api.HandleFunc("/games/{fileID}/runs", handler.GetGameRuns).Methods("GET")
	api.HandleFunc("/games/{fileID}/swings", handler.GetGameSwings).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.ListPlayers).Methods("GET")
	api.HandleFunc("/players/{name}", handler.GetPlayer).Methods("GET")

	// Season analytics
	api.HandleFunc("/advanced", handler.GetAdvanced).Methods("GET")

	// Ingest operations
	api.HandleFunc("/ingest", ingestHandler.HandleIngestRequest).Methods("POST")
	api.HandleFunc("/ingest/status", ingestHandler.HandleIngestStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
