package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rci-tools/rcigen/cmd/rcigen-web/api"
	rcilog "github.com/rci-tools/rcigen/pkg/log"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port    int
	DBPath  string
	Version string
	Logger  *slog.Logger
}

// Server is the HTTP server of the generation service.
type Server struct {
	config ServerConfig
	router *mux.Router
	server *http.Server
	store  *api.Store
	genAPI *api.GenerateAPI
	logger *slog.Logger
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	store, err := api.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: mux.NewRouter(),
		store:  store,
		genAPI: api.NewGenerateAPI(store, rcilog.NewSlogAdapter(logger)),
		logger: logger,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.Use(s.requestLogging)

	s.router.HandleFunc("/api/v1/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/info", s.handleInfo).Methods(http.MethodGet)

	s.router.HandleFunc("/api/v1/generate", s.genAPI.HandleGenerate).Methods(http.MethodPost)

	s.router.HandleFunc("/api/v1/runs", s.genAPI.HandleList).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/runs/{id}", s.genAPI.HandleGet).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/runs/{id}", s.genAPI.HandleDelete).Methods(http.MethodDelete)
	s.router.HandleFunc("/api/v1/runs/{id}/artifacts/{name}", s.genAPI.HandleArtifact).Methods(http.MethodGet)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version := s.config.Version
	if version == "" {
		version = "dev"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

// handleInfo returns server information.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	runCount, _ := s.store.CountRuns()
	writeJSON(w, http.StatusOK, map[string]int{
		"run_count": runCount,
	})
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close shuts down the server and closes the store.
func (s *Server) Close() error {
	if s.store != nil {
		s.store.Close()
	}
	return nil
}
