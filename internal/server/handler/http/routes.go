package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/icfoundry/icvault/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the backend
// stub. It applies JSON content-type enforcement, request logging, metrics,
// delegation-based identity resolution, and per-principal rate limiting,
// and mounts the canister and session endpoints under /api.
//
// Routes:
//
//	POST   /api/canister/greet   canisterHandler.Greet
//	POST   /api/canister/whoami  canisterHandler.Whoami
//	POST   /api/session          sessionHandler.Login
//	GET    /api/session          sessionHandler.Introspect
//	DELETE /api/session          sessionHandler.Logout
//	GET    /metrics              prometheus exposition
func NewRouter(
	canisterHandler *CanisterHandler,
	sessionHandler *SessionHandler,
	verifier middleware.Verifier,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Resolve the caller principal from a bearer delegation, if present
	r.Use(middleware.Identity(verifier))
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Record request counters and latencies
	r.Use(metrics.Handler)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Identity provider surface (development)
		r.Post("/session", sessionHandler.Login)
		r.Get("/session", sessionHandler.Introspect)
		r.Delete("/session", sessionHandler.Logout)

		// Canister operations: throttled per principal
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/canister/greet", canisterHandler.Greet)
			r.Post("/canister/whoami", canisterHandler.Whoami)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
