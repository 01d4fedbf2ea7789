package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/models"
)

// CountryRepository is the in-memory country collection.
//
// The HTTP server handles requests concurrently, so the collection is
// guarded by a mutex. The lock matters most in Create: the default-id rule
// reads the current maximum id and the append mutates the same slice, and
// those two steps must happen under a single lock acquisition or two
// concurrent creates without explicit ids could compute the same id.
type CountryRepository struct {
	mu        sync.Mutex
	countries []models.Country
	log       *zerolog.Logger
}

// seedCountries returns the three records present at process start.
func seedCountries() []models.Country {
	return []models.Country{
		{CountryID: 1, Name: "Thailand", Capital: "Bangkok", Area: 513120},
		{CountryID: 2, Name: "Australia", Capital: "Canberra", Area: 7617930},
		{CountryID: 3, Name: "Egypt", Capital: "Cairo", Area: 1010408},
	}
}

// NewCountryRepository constructs the store with its seed records.
func NewCountryRepository(log *zerolog.Logger) *CountryRepository {
	return &CountryRepository{
		countries: seedCountries(),
		log:       log,
	}
}

// List returns the full ordered sequence of records currently held, in
// insertion order. No filtering, no pagination.
//
// The returned slice is a copy: callers can't mutate the collection, and
// two calls without an intervening Create return identical sequences.
func (r *CountryRepository) List() []models.Country {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Country, len(r.countries))
	copy(out, r.countries)
	return out
}

// Count returns the number of records currently held.
func (r *CountryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.countries)
}

// GetByPosition returns the record at 1-based position pos in insertion
// order. The boolean reports whether the position was in range.
//
// Lookup is positional, not by id: a record created with an explicit id
// does not change where any record sits in the sequence.
func (r *CountryRepository) GetByPosition(pos int) (models.Country, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pos < 1 || pos > len(r.countries) {
		return models.Country{}, false
	}
	return r.countries[pos-1], true
}

// Create constructs a record from the validated request and appends it.
//
// The id is resolved here, under the lock:
//   - An explicit id is stored verbatim. No uniqueness check is performed;
//     supplying a colliding id is permitted and the duplicate is kept.
//   - A missing id gets the default-computation rule: 1 + max existing id,
//     recomputed against the current collection on every call. It is never
//     cached and never a monotonic counter, so deleting the newest record
//     (if the API ever grows deletion) would free its id.
//
// The read-compute-append sequence holds the mutex throughout, which is
// what makes concurrent creates safe.
func (r *CountryRepository) Create(req *models.CreateCountryRequest) models.Country {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := 0
	if req.CountryID != nil {
		id = *req.CountryID
	} else {
		id = r.nextIDLocked()
	}

	country := models.Country{
		CountryID: id,
		Name:      *req.Name,
		Capital:   *req.Capital,
		Area:      *req.Area,
	}

	r.countries = append(r.countries, country)

	r.log.Debug().
		Int("id", country.CountryID).
		Str("name", country.Name).
		Int("total", len(r.countries)).
		Msg("country record created")

	return country
}

// nextIDLocked computes 1 + max(existing ids). Caller must hold r.mu.
//
// On an empty collection the max is taken as 0, so the first defaulted id
// is 1. Unreachable with seed data, but total all the same.
func (r *CountryRepository) nextIDLocked() int {
	maxID := 0
	for _, c := range r.countries {
		if c.CountryID > maxID {
			maxID = c.CountryID
		}
	}
	return maxID + 1
}
