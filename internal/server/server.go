// Package server exposes the skeletonization pipeline over HTTP.
//
// The API is a thin layer over pipeline.Runner and store.Store: a POST
// computes and persists a skeleton, GETs retrieve and re-render stored
// skeletons. All responses are JSON except rendered artifacts, which are
// served with their native content types.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/httputil"
	"github.com/matzehuels/polyskel/pkg/pipeline"
	"github.com/matzehuels/polyskel/pkg/store"
)

// Server is the HTTP API for skeleton computation and retrieval.
type Server struct {
	router *chi.Mux
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server over the given runner and store.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		store:  st,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/healthz", s.handleHealth)

	// Rendered artifacts are deterministic per URI, so the render endpoint
	// sits behind a response cache backed by the runner's cache.
	renderCache := httputil.NewResponseCache(s.runner.Cache, s.runner.Keyer, "render", cache.TTLArtifact)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/skeletons", s.handleCreateSkeleton)
		r.Get("/skeletons", s.handleListSkeletons)
		r.Get("/skeletons/{id}", s.handleGetSkeleton)
		r.With(renderCache.Middleware).Get("/skeletons/{id}/render", s.handleRenderSkeleton)
		r.Delete("/skeletons/{id}", s.handleDeleteSkeleton)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully within the given timeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
