// Package server provides the HTTP REST API for résumé generation and storage.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resu/internal/db"
	"github.com/jonathan/resu/internal/observability"
	"github.com/jonathan/resu/internal/pipeline"
	"github.com/jonathan/resu/internal/profile"
)

// maxBodyBytes caps request bodies; job descriptions and résumés are small
const maxBodyBytes = 1 << 20

// Generator runs the two-phase pipeline
type Generator interface {
	Start(ctx context.Context, req pipeline.StartRequest) (*pipeline.ReviewResult, error)
	Confirm(ctx context.Context, req pipeline.ConfirmRequest) (*pipeline.ConfirmResult, error)
	Status(ctx context.Context) (pipeline.Status, error)
}

// Options configures a Server
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// CORSOrigin, when set, is the single origin allowed cross-origin access
	CORSOrigin string

	Generator Generator
	Store     db.ResumeStore
	Profile   profile.Source
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	generator       Generator
	store           db.ResumeStore
	profile         profile.Source
	metrics         *observability.Metrics
	logger          *zap.Logger
	corsOrigin      string
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(opts Options) *Server {
	s := &Server{
		generator:       opts.Generator,
		store:           opts.Store,
		profile:         opts.Profile,
		metrics:         opts.Metrics,
		logger:          observability.WithFields(opts.Logger, zap.String("component", "server")),
		corsOrigin:      opts.CORSOrigin,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Generation
	mux.HandleFunc("POST /api/generate/parse", s.handleParse)
	mux.HandleFunc("POST /api/generate/confirm", s.handleConfirm)
	mux.HandleFunc("GET /api/generate/status", s.handleStatus)

	// Stored résumés
	mux.HandleFunc("GET /api/resumes", s.handleListResumes)
	mux.HandleFunc("GET /api/resume/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE /api/resume/{id}", s.handleDeleteResume)
	mux.HandleFunc("POST /api/resume/{id}/score", s.handleScoreResume)

	mux.HandleFunc("GET /api/templates", s.handleTemplates)
	mux.HandleFunc("GET /api/profile", s.handleProfile)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return s.withRecover(s.withLogging(s.withCORS(mux)))
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the configured origin
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// withRecover turns handler panics into 500s
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("handler panic", zap.Any("panic", v), zap.String("path", r.URL.Path), zap.Stack("stack"))
				s.errorResponse(w, http.StatusInternalServerError, msgInternal)
			}
		}()
		next.ServeHTTP(w, r)
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
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorBody{Error: message})
}

// decodeJSON reads a size-capped JSON body into v, rejecting unknown trailing data
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &pipeline.RequestError{Field: "(body)", Message: err.Error()}
	}
	if dec.More() {
		return &pipeline.RequestError{Field: "(body)", Message: "unexpected data after JSON body"}
	}
	return nil
}
