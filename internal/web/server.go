package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/tastetrails/internal/service"
)

// DefaultMaxImportBytes caps the size of an uploaded import file.
const DefaultMaxImportBytes = 10 * 1024 * 1024

type Server struct {
	service        *service.PlaceService
	mux            *http.ServeMux
	logger         *slog.Logger
	maxImportBytes int64
}

func NewServer(svc *service.PlaceService, logger *slog.Logger, maxImportBytes int64) *Server {
	if maxImportBytes <= 0 {
		maxImportBytes = DefaultMaxImportBytes
	}
	s := &Server{
		service:        svc,
		mux:            http.NewServeMux(),
		logger:         logger,
		maxImportBytes: maxImportBytes,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/places", s.handleListPlaces)
	s.mux.HandleFunc("POST /api/places", s.handleCreatePlace)
	s.mux.HandleFunc("GET /api/places/{id}", s.handleGetPlace)
	s.mux.HandleFunc("PATCH /api/places/{id}", s.handleUpdatePlace)
	s.mux.HandleFunc("DELETE /api/places/{id}", s.handleDeletePlace)
	s.mux.HandleFunc("POST /api/places/{id}/favorite", s.handleToggleFavorite)
	s.mux.HandleFunc("GET /api/places/{id}/next", s.handleNextPlace)

	s.mux.HandleFunc("GET /api/cities", s.handleCities)
	s.mux.HandleFunc("GET /api/progress", s.handleProgress)
	s.mux.HandleFunc("GET /api/wrapped", s.handleWrapped)
	s.mux.HandleFunc("GET /api/wrapped/story", s.handleWrappedStory)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/options", s.handleOptions)

	s.mux.HandleFunc("POST /api/import", s.handleImport)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("GET /api/archives", s.handleListArchives)
	s.mux.HandleFunc("GET /api/archives/{key}", s.handleGetArchive)
	s.mux.HandleFunc("DELETE /api/archives/{key}", s.handleDeleteArchive)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// HTTPServer returns an *http.Server serving s on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.HTTPServer(addr).ListenAndServe()
}
