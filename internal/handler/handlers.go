package handler

import (
	"github.com/tuxaco/countries-api/internal/server"
	"github.com/tuxaco/countries-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// Similar to Middlewares and Services: a single container keeps router
// setup clean, one object passed around instead of many.
type Handlers struct {
	Health  *HealthHandler  // Health serves service health endpoints (liveness/readiness).
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation (OpenAPI spec / docs UI).
	Country *CountryHandler // Country serves the record collection endpoints.
}

// NewHandlers constructs the handler container.
//
// Parameters:
// - s: application container (logger/config/etc.)
// - services: business layer container
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, services.Country),
		OpenAPI: NewOpenAPIHandler(s),
		Country: NewCountryHandler(s, services.Country),
	}
}
