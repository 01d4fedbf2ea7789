package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/tuxaco/countries-api/internal/server"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server.
//
// Why this exists:
//   - Avoid scattering middleware construction throughout routing/setup code.
//   - Provide a single place where shared dependencies (like *server.Server
//     and the New Relic application instance) are wired into middleware.
//
// This is dependency injection in its simplest form: build once, reuse everywhere.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, optional trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach custom
	// attributes on transactions.
	Tracing *TracingMiddleware

	// RateLimit throttles clients by IP using an in-memory token bucket.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
//
// It also extracts the New Relic application instance (if configured) from
// the server's LoggerService and injects it into TracingMiddleware.
//
// Behavior when New Relic is not configured:
// - nrApp will be nil.
// - tracing middleware degrades into a no-op (no transactions, no attributes).
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
