package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/server"
)

// OpenAPIHandler serves the OpenAPI UI for exploring and testing the API.
//
// The UI is a static HTML file (openapi.html) that loads its viewer from a
// CDN and reads the OpenAPI JSON document from the static folder
// (openapi.json). The handler reads the HTML template and serves it as HTML
// with caching disabled, so doc updates appear immediately during
// development.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI reads static/openapi.html and serves it as an HTML response.
//
// Cache-Control is set to "no-cache" so clients do not reuse an old docs page.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile("static/openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
