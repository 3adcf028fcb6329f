// Package api exposes the widget gateway over HTTP for browser clients.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rokovo/widgetd/internal/events"
	"github.com/rokovo/widgetd/internal/session"
	"github.com/rokovo/widgetd/internal/store"
)

type Server struct {
	router   *chi.Mux
	port     int
	sessions *session.Manager
	store    *store.Store      // nil when persistence is not configured
	events   *events.Publisher // nil when no broker is configured
	logger   *slog.Logger
}

func NewServer(port int, sessions *session.Manager, db *store.Store, pub *events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		sessions: sessions,
		store:    db,
		events:   pub,
		logger:   logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/widget/status", s.status)
	router.Route("/api/v1/widget/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Post("/{sessionID}/messages", s.sendMessage)
		r.Get("/{sessionID}/messages", s.listMessages)
		r.Get("/{sessionID}/transcript", s.transcript)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":  "widgetd",
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
