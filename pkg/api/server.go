// Package api is the HTTP shell over the catalog store and the
// snapshot subsystem.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the chi router for a server.
func Routes(server *Server, metrics *Metrics, apiKey string) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication for everything else
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(apiKey))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Post("/login", metrics.InstrumentHandler("POST", "/api/v1/login", server.handleLogin))

		// Snapshot inspection (no owner context)
		r.Get("/snapshots/verify", metrics.InstrumentHandler("GET", "/api/v1/snapshots/verify", server.handleVerify))
		r.Get("/snapshots/preview", metrics.InstrumentHandler("GET", "/api/v1/snapshots/preview", server.handlePreview))

		// Per-owner catalog and snapshot operations
		r.Route("/users/{owner}", func(r chi.Router) {
			r.Post("/games", metrics.InstrumentHandler("POST", "/api/v1/users/{owner}/games", server.handleAddGame))
			r.Get("/games", metrics.InstrumentHandler("GET", "/api/v1/users/{owner}/games", server.handleListGames))
			r.Post("/games/search", metrics.InstrumentHandler("POST", "/api/v1/users/{owner}/games/search", server.handleSearchGames))
			r.Get("/games/{id}", metrics.InstrumentHandler("GET", "/api/v1/users/{owner}/games/{id}", server.handleGetGame))
			r.Put("/games/{id}", metrics.InstrumentHandler("PUT", "/api/v1/users/{owner}/games/{id}", server.handleUpdateGame))
			r.Delete("/games/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/users/{owner}/games/{id}", server.handleDeleteGame))
			r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/users/{owner}/stats", server.handleStats))
			r.Get("/tags", metrics.InstrumentHandler("GET", "/api/v1/users/{owner}/tags", server.handleTags))

			r.Post("/snapshots/export", metrics.InstrumentHandler("POST", "/api/v1/users/{owner}/snapshots/export", server.handleExport))
			r.Post("/snapshots/import", metrics.InstrumentHandler("POST", "/api/v1/users/{owner}/snapshots/import", server.handleImport))
		})
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(catalogStore CatalogStore, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(catalogStore, config, metrics)
	r := Routes(server, metrics, config.APIKey)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("Temporium API listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
