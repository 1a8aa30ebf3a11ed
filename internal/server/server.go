// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/assistant"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/conversation"
	"github.com/jonathan/resume-studio/internal/document"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/llm"
)

// Server represents the HTTP server and the session state it owns: one
// resume document, one conversation log, one settings store.
type Server struct {
	httpServer *http.Server
	port       int
	store      *document.Store
	log        *conversation.Log
	settings   *config.SettingsStore
	assistant  *assistant.Assistant
	logger     zerolog.Logger

	// swappable in tests
	fetchPosting func(ctx context.Context, url string, opts *ingestion.Options) (*ingestion.Result, error)
	printPDF     func(ctx context.Context, previewURL string, opts *export.Options) ([]byte, error)
}

// Config holds server configuration.
type Config struct {
	Port         int
	SettingsPath string
	Provider     llm.Provider
	Logger       zerolog.Logger
	// ClientFactory overrides how model clients are built. Tests use this
	// to avoid real network calls.
	ClientFactory assistant.ClientFactory
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	settings, err := config.NewSettingsStore(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s := &Server{
		port:         cfg.Port,
		store:        document.NewStore(nil),
		log:          conversation.NewLog(),
		settings:     settings,
		logger:       cfg.Logger,
		fetchPosting: ingestion.FetchJobPosting,
		printPDF:     export.PrintPDF,
	}

	s.assistant = assistant.New(assistant.Options{
		Store:    s.store,
		Log:      s.log,
		Settings: settings,
		Provider:  cfg.Provider,
		NewClient: cfg.ClientFactory,
		Logger:    cfg.Logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document endpoints
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume/field", s.handleSetField)
	mux.HandleFunc("POST /api/resume/items", s.handleAddItem)
	mux.HandleFunc("DELETE /api/resume/items/{section}/{index}", s.handleDeleteItem)
	mux.HandleFunc("POST /api/resume/sections/move", s.handleMoveSection)

	// Rendering endpoints
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("POST /api/export", s.handleExport)

	// Assistant endpoints
	mux.HandleFunc("POST /api/assistant", s.handleAssistant)
	mux.HandleFunc("GET /api/conversation", s.handleConversation)

	// Settings and job-context endpoints
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handlePutSettings)
	mux.HandleFunc("PUT /api/job", s.handlePutJob)
	mux.HandleFunc("POST /api/job/fetch", s.handleFetchJob)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // model calls and PDF export can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
