package handler

// HealthHandler exposes a "system" endpoint that external systems can use to
// verify the service is alive and its state is reachable.
//
// Backend systems should expose a health endpoint so Kubernetes / uptime
// monitors / load balancers can check whether the service is running. The
// only stateful dependency here is the in-memory record store, so the check
// reports its record count rather than database or cache connectivity.
import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/middleware"
	"github.com/tuxaco/countries-api/internal/server"
	"github.com/tuxaco/countries-api/internal/service"
)

// HealthHandler embeds the base Handler to reuse shared server dependencies.
// This endpoint is not "business logic", but embedding keeps handler
// patterns consistent.
type HealthHandler struct {
	Handler
	country *service.CountryService
}

// NewHealthHandler constructs a HealthHandler with access to shared app
// dependencies and the country service (for the store check).
func NewHealthHandler(s *server.Server, country *service.CountryService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		country: country,
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes:
// - overall status (healthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (record store: record count, response time)
//
// The in-memory store cannot fail to respond short of the process itself
// being gone, so this endpoint answers 200 whenever it answers at all.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	storeStart := time.Now()
	recordCount := h.country.Count()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks": map[string]interface{}{
			"store": map[string]interface{}{
				"status":        "healthy",
				"records":       recordCount,
				"response_time": time.Since(storeStart).String(),
			},
		},
	}

	logger.Info().
		Int("records", recordCount).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	// If the JSON write fails, record telemetry and surface the error.
	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
			h.server.LoggerService.GetApplication().RecordCustomEvent(
				"HealthCheckError",
				map[string]interface{}{
					"check_type":    "response",
					"operation":     "health_check",
					"error_type":    "json_response_error",
					"error_message": err.Error(),
				},
			)
		}

		return err
	}

	return nil
}
