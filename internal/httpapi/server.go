// Package httpapi serves the console over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/internal/config"
)

// Server is the HTTP server for the console.
type Server struct {
	deps   console.Deps
	config config.ServerConfig
	logger *slog.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server. A nil logger uses deps.Logger.
func NewServer(deps console.Deps, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = deps.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		deps:   deps,
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	users := &resource[domain.User]{
		server:  s,
		service: func(*http.Request) *console.Service[domain.User] { return console.Users(s.deps) },
		param:   "id",
	}
	vendors := &resource[domain.Vendor]{
		server:  s,
		service: func(*http.Request) *console.Service[domain.Vendor] { return console.Vendors(s.deps) },
		param:   "id",
	}
	links := &resource[domain.Link]{
		server: s,
		service: func(r *http.Request) *console.Service[domain.Link] {
			return console.Links(s.deps, chi.URLParam(r, "id"))
		},
		param: "itemID",
	}
	descriptions := &resource[domain.Description]{
		server: s,
		service: func(r *http.Request) *console.Service[domain.Description] {
			return console.Descriptions(s.deps, chi.URLParam(r, "id"))
		},
		param: "itemID",
	}
	products := &resource[domain.Product]{
		server: s,
		service: func(r *http.Request) *console.Service[domain.Product] {
			return console.Products(s.deps, chi.URLParam(r, "id"))
		},
		param: "itemID",
	}

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Route("/users", func(r chi.Router) {
		users.mount(r)
		r.Route("/{id}/links", links.mount)
		r.Route("/{id}/descriptions", descriptions.mount)
	})

	s.router.Route("/vendors", func(r chi.Router) {
		vendors.mount(r)
		r.Route("/{id}/products", products.mount)
	})
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.logger.Info("server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
