// Package api exposes the scoring engines over HTTP.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes builds the HTTP router. Stateless scoring endpoints are always
// mounted; customer endpoints require a store and 501 without one.
func Routes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Liveness (no body, no store required).
	r.Get("/health", h.Liveness)

	r.Route("/api", func(r chi.Router) {
		// Stateless scoring: the profile travels in the request body.
		r.Post("/score/health", h.ScoreHealth)
		r.Post("/score/risk", h.ScoreRisk)
		r.Post("/score/renewal", h.EstimateRenewal)
		r.Post("/score/behavior", h.ScoreBehavior)
		r.Post("/trends", h.Trends)
		r.Post("/alerts", h.Alerts)
		r.Post("/evaluate", h.Evaluate)
		r.Post("/portfolio/summary", h.PortfolioSummary)

		// Stored-customer summary, cached for the summary TTL.
		r.Get("/portfolio/summary", h.StoredPortfolioSummary)

		// Stored customers.
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Put("/{id}", h.UpsertCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
			r.Get("/{id}/evaluation", h.CustomerEvaluation)
			r.Get("/{id}/history", h.CustomerHistory)
		})
	})

	return r
}
