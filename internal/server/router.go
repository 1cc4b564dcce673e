package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chipi-ai/chipi/internal/api"
	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/version"
)

// router builds the HTTP routing table.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post(api.LoginPath, s.handleLogin)
	r.Post(api.RegisterPath, s.handleRegister)
	r.Post(api.MessagePath, s.handleMessage)

	r.Get("/healthz", s.handleHealth)
	r.Get("/debug/events", s.events.ServeHTTP)

	return r
}

// handleHealth reports liveness plus a few counters for quick inspection.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"users":   s.store.Count(),
		"remote":  s.assistant.RemoteEnabled(),
	})
}

// requestLogger logs each request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
