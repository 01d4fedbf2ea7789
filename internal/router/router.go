// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/handler"
	"github.com/tuxaco/countries-api/internal/middleware"
)

// New builds the Echo instance with the full middleware chain and all routes.
//
// Middleware order matters:
//  1. New Relic transaction first, so everything downstream can attach to it
//  2. RequestID before ContextEnhancer, so the request logger carries the id
//  3. ContextEnhancer before anything that calls middleware.GetLogger
//  4. Recovery wraps the handlers so panics become 500s, not crashes
//  5. Rate limiting last, closest to the handlers it protects
func New(h *handler.Handlers, mws *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Every error, from any layer, funnels through here.
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	e.Use(mws.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(mws.ContextEnhancer.EnhanceContext())
	e.Use(mws.Tracing.EnhanceTracing())
	e.Use(mws.Global.CORS())
	e.Use(mws.Global.Secure())
	e.Use(mws.Global.RequestLogger())
	e.Use(mws.Global.Recover())
	e.Use(mws.RateLimit.Limit())

	registerSystemRoutes(e, h)
	registerRecordRoutes(e, h)

	return e
}
