package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/prodeapp/engine/internal/api/handler"
	"github.com/prodeapp/engine/internal/cache"
	"github.com/prodeapp/engine/internal/config"
	"github.com/prodeapp/engine/internal/tournament"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(catalog *tournament.Catalog, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(catalog, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.Get("/tournaments", h.ListTournaments)

		// Official-result views
		r.Get("/tournaments/{tournamentID}/standings", h.GetStandings)
		r.Get("/tournaments/{tournamentID}/bracket", h.GetBracket)

		// What-if projections from user guesses
		r.Post("/tournaments/{tournamentID}/projection", h.PostProjection)

		// Stateless resolution of an inline definition
		r.Post("/resolve", h.PostResolve)
	})

	return r
}
