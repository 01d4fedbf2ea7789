package repository

import (
	"github.com/tuxaco/countries-api/internal/server"
)

// Repositories is a container for all repository instances.
//
// Keeping a single container keeps dependency injection simple: services
// accept one object instead of a growing parameter list.
type Repositories struct {
	Countries *CountryRepository
}

// NewRepositories constructs the repository container.
//
// Parameter:
// - s: application container (logger/config live here)
//
// The country store is seeded here, once, at startup.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Countries: NewCountryRepository(s.Logger),
	}
}
