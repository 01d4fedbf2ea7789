package service

import (
	"github.com/tuxaco/countries-api/internal/repository"
	"github.com/tuxaco/countries-api/internal/server"
)

type Services struct {
	Country *CountryService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	countryService := NewCountryService(s, repos.Countries)

	return &Services{
		Country: countryService,
	}, nil
}
