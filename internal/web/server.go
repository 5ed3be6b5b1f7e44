// Package web provides the HTTP API for storing and reading date submissions.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/date-invite/internal/logging"
	"github.com/evcraddock/date-invite/internal/submission"
)

// Options configures the server.
type Options struct {
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
	// Now is the clock used for health timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Server is the date-invite HTTP API server.
type Server struct {
	store  submission.Store
	now    func() time.Time
	router chi.Router
}

// NewServer creates a server backed by the given store.
func NewServer(store submission.Store, opts Options) *Server {
	s := &Server{
		store:  store,
		now:    opts.Now,
		router: chi.NewRouter(),
	}
	if s.now == nil {
		s.now = time.Now
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(
		middleware.RequestID,
		logging.RequestLogger,
		recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}),
	)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, r, "Not found", http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/save-date", s.handleSaveDate)
		r.Get("/dates", s.handleListDates)
		r.Get("/dates/{id}", s.handleGetDate)
		r.Get("/health", s.handleHealth)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// A failed listen cancels gctx, which lets the shutdown side return.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// recoverer turns a panic in a handler into a JSON 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.ErrorContext(r.Context(), "panic in handler",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
				apiError(w, r, msgInternal, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
