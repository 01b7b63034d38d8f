package api

import (
	"log/slog"
	"net/http"

	"github.com/coolbeans/lawchunk/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API over the chunk corpus.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
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

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/api/chunk", s.handleChunk)
		r.Get("/api/chunks", s.handleListChunks)
		r.Get("/api/chunks/{chunkID}", s.handleGetChunk)
		r.Get("/api/search", s.handleSearch)
		r.Post("/api/ask", s.handleAsk)
		r.Get("/api/sections/{code}/related", s.handleRelated)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
