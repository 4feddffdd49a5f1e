package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mixread/srs-api/internal/api"
	apiMiddleware "github.com/mixread/srs-api/internal/api/middleware"
)

// setupRouter configures the application router with middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	reviewHandler := api.NewReviewHandler(
		app.store,
		app.engine,
		app.registry,
		api.BatchLimits{
			Due: app.config.Review.DueLimit,
			New: app.config.Review.NewLimit,
		},
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		reviewHandler.RegisterRoutes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
