package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/handler"
)

// registerRecordRoutes registers the country record endpoints.
//
// No auth, no versioned group: the collection is the whole API surface.
func registerRecordRoutes(r *echo.Echo, h *handler.Handlers) {
	// Full collection, insertion order.
	r.GET("/records", h.Country.List())

	// Single record by 1-based position in insertion order.
	r.GET("/records/:id", h.Country.GetByID)

	// Create a record; id is optional and defaulted when absent.
	r.POST("/records", h.Country.Create())
}
