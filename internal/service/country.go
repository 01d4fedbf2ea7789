package service

import (
	"github.com/tuxaco/countries-api/internal/errs"
	"github.com/tuxaco/countries-api/internal/models"
	"github.com/tuxaco/countries-api/internal/repository"
	"github.com/tuxaco/countries-api/internal/server"
)

// CountryService exposes the record operations to the handler layer.
//
// The business rules here are deliberately thin: the interesting behavior
// (default-id resolution, lock discipline) lives in the store, and the
// validation pipeline runs before any of these methods are reached.
type CountryService struct {
	server *server.Server
	repo   *repository.CountryRepository
}

func NewCountryService(s *server.Server, repo *repository.CountryRepository) *CountryService {
	return &CountryService{
		server: s,
		repo:   repo,
	}
}

// List returns all records in insertion order.
func (s *CountryService) List() []models.Country {
	return s.repo.List()
}

// Count reports the current collection size (used by the health endpoint).
func (s *CountryService) Count() int {
	return s.repo.Count()
}

// GetByPosition fetches the record at a 1-based position, or a 404 error
// when the position is out of range.
func (s *CountryService) GetByPosition(pos int) (models.Country, error) {
	country, ok := s.repo.GetByPosition(pos)
	if !ok {
		code := "RECORD_NOT_FOUND"
		return models.Country{}, errs.NewNotFoundError("Record not found", &code)
	}
	return country, nil
}

// Create appends a new record built from the validated request and
// returns it, with the id resolved (supplied verbatim or defaulted).
func (s *CountryService) Create(req *models.CreateCountryRequest) models.Country {
	return s.repo.Create(req)
}
