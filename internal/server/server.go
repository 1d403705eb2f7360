// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hybel/portfolio/internal/handler"
	"github.com/hybel/portfolio/internal/source"
	"github.com/hybel/portfolio/internal/store"
	"github.com/hybel/portfolio/internal/worker"
)

// Config holds server configuration.
type Config struct {
	Port   int
	Store  *store.Store
	Source source.DataSource
	Loader *worker.Loader
}

// Router builds the chi router with all routes registered.
func Router(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	ph := handler.NewPortfolioHandler(cfg.Store, cfg.Loader, cfg.Source)
	sh := handler.NewStreamHandler(cfg.Store)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/portfolio", ph.GetViewModel)
		r.Get("/portfolio/properties", ph.ListProperties)
		r.Patch("/portfolio/filters", ph.UpdateFilters)
		r.Post("/portfolio/filters/reset", ph.ResetFilters)
		r.Post("/portfolio/reload", ph.Reload)
		r.Get("/portfolio/stream", sh.ServeHTTP)

		r.Get("/properties/{id}", ph.GetPropertyDetail)
	})

	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: Router(cfg),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
