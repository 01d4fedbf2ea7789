package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/errs"
	"github.com/tuxaco/countries-api/internal/server"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// Why a struct?
//   - So middleware functions can access shared app dependencies from
//     *server.Server, especially config and logging.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by server config.
//
// It allows browser-based clients to call the API from specific origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware with a custom LogValuesFunc.
//
// Why custom?
//   - Structured logs via zerolog.
//   - Correlation fields (request_id).
//   - Correct status codes even when the handler returns an error and the
//     global error handler sets the final response later.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		// LogValuesFunc is called at the end of request handling.
		// v contains measured request metadata: latency, status, error, etc.
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, Echo may not have written the
			// final status yet; the GlobalErrorHandler decides it afterwards.
			// Derive the status from the error type so an error request is
			// never logged as status=200.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			// Pull the enhanced request logger from context.
			// ContextEnhancer middleware should have stored this already.
			logger := GetLogger(c)

			// Pick log level based on status:
			// - 5xx = server fault -> Error
			// - 4xx = client fault -> Warn (validation failures land here)
			// - otherwise -> Info
			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
//
// If a handler panics, Recover prevents the whole process from crashing.
// Panics become 500 responses (and are logged).
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error ends up here, regardless of where it happened, and is
// translated into a clean response for the client:
//   - validation failures (HTTPError with Detail) become a 422 whose body
//     is a mapping with a single "detail" key holding the field error list
//   - unknown routes become a 404 in the standard shape
//   - anything unrecognized becomes a safe 500
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Keep the original error for logging. `err` may be replaced with a
	// friendlier/sanitized error for the client, but logs keep the real one.
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		// Echo has its own HTTPError type; the main one that matters here
		// is the router's 404 for unknown paths.
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", nil)
			}
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var detail []errs.FieldError

	switch {
	case errors.As(err, &httpErr):
		// Our custom error already has the full response schema.
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		detail = httpErr.Detail

	case errors.As(err, &echoErr):
		// Convert Echo's error into our schema.
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		// Echo error message can be a string or any type; normalize it.
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		// Absolute fallback: safe 500.
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	// Log the original error. Validation failures are client-input
	// problems, never server faults, so they log at warn.
	logger := *GetLogger(c)

	var e *zerolog.Event
	if status >= 500 {
		e = logger.Error().Stack().Err(originalErr)
	} else {
		e = logger.Warn().Err(originalErr)
	}
	e.Int("status", status).
		Str("error_code", code).
		Msg(message)

	// Only write a response if it hasn't already been written.
	if c.Response().Committed {
		return
	}

	if len(detail) > 0 {
		// Validation error body shape: {"detail": [{loc, msg, type}, ...]}
		_ = c.JSON(status, errs.ValidationErrorResponse{Detail: detail})
		return
	}

	_ = c.JSON(status, errs.HTTPError{
		Code:    code,
		Message: message,
		Status:  status,
	})
}
