package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/tuxaco/countries-api/internal/errs"
	"github.com/tuxaco/countries-api/internal/server"
)

// RateLimitMiddleware throttles clients by IP with an in-memory token
// bucket. The store is process-local, matching the rest of this service's
// state: a multi-instance deployment would need a shared store instead.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns Echo's rate limiter middleware configured from
// Server.RateLimit (requests per second, per client IP).
//
// A zero/negative limit disables throttling entirely (no-op middleware).
// Denied requests go through the global error funnel as 429s, and each hit
// is recorded as a New Relic custom event when the agent is enabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	limit := r.server.Config.Server.RateLimit
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(limit)),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.recordRateLimitHit(c.Path())
			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Extractor failures (no identifiable client) are treated as
			// denied rather than silently exempt.
			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// recordRateLimitHit records a New Relic custom event for a throttled
// request, so limit tuning has data behind it.
func (r *RateLimitMiddleware) recordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
