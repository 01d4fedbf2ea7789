package repository

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/models"
)

/* ===== helpers ===== */

func newTestRepo(t *testing.T) *CountryRepository {
	t.Helper()
	log := zerolog.Nop()
	return NewCountryRepository(&log)
}

func createReq(id *int, name, capital string, area int) *models.CreateCountryRequest {
	return &models.CreateCountryRequest{
		CountryID: id,
		Name:      &name,
		Capital:   &capital,
		Area:      &area,
	}
}

func intPtr(v int) *int { return &v }

/* ===== tests ===== */

func TestSeedData(t *testing.T) {
	repo := newTestRepo(t)

	countries := repo.List()
	if len(countries) != 3 {
		t.Fatalf("expected 3 seed records, got %d", len(countries))
	}

	wantNames := []string{"Thailand", "Australia", "Egypt"}
	for i, want := range wantNames {
		if countries[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, countries[i].Name)
		}
		if countries[i].CountryID != i+1 {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, countries[i].CountryID)
		}
	}
}

func TestCreateDefaultsID(t *testing.T) {
	repo := newTestRepo(t)

	created := repo.Create(createReq(nil, "Germany", "Berlin", 357022))

	if created.CountryID != 4 {
		t.Errorf("expected default id 4 (1 + max of seeds), got %d", created.CountryID)
	}
	if created.Name != "Germany" || created.Capital != "Berlin" || created.Area != 357022 {
		t.Errorf("unexpected record: %+v", created)
	}
}

func TestCreatePreservesExplicitID(t *testing.T) {
	repo := newTestRepo(t)

	created := repo.Create(createReq(intPtr(42), "Iceland", "Reykjavik", 103000))
	if created.CountryID != 42 {
		t.Errorf("expected explicit id 42 preserved verbatim, got %d", created.CountryID)
	}

	// Explicit ids are permissive: a collision with an existing id is kept.
	dup := repo.Create(createReq(intPtr(1), "Atlantis", "Nowhere", 1))
	if dup.CountryID != 1 {
		t.Errorf("expected colliding id 1 stored verbatim, got %d", dup.CountryID)
	}
	if repo.Count() != 5 {
		t.Errorf("expected 5 records after both creates, got %d", repo.Count())
	}
}

func TestDefaultIDRecomputedPerCall(t *testing.T) {
	repo := newTestRepo(t)

	// A gap-introducing explicit id raises the max; the next default must
	// reflect the current state, not an internal counter.
	repo.Create(createReq(intPtr(100), "Iceland", "Reykjavik", 103000))

	created := repo.Create(createReq(nil, "Germany", "Berlin", 357022))
	if created.CountryID != 101 {
		t.Errorf("expected default id 101 after explicit 100, got %d", created.CountryID)
	}
}

func TestDefaultIDOnEmptyCollection(t *testing.T) {
	log := zerolog.Nop()
	repo := &CountryRepository{log: &log}

	created := repo.Create(createReq(nil, "Germany", "Berlin", 357022))
	if created.CountryID != 1 {
		t.Errorf("expected first defaulted id 1 on empty collection, got %d", created.CountryID)
	}
}

func TestListInsertionOrderAndIdempotence(t *testing.T) {
	repo := newTestRepo(t)

	repo.Create(createReq(nil, "Germany", "Berlin", 357022))
	repo.Create(createReq(nil, "France", "Paris", 551695))

	first := repo.List()
	second := repo.List()

	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected 5 records from both reads, got %d and %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs between reads: %+v vs %+v", i, first[i], second[i])
		}
	}

	if first[3].Name != "Germany" || first[4].Name != "France" {
		t.Errorf("appended records out of insertion order: %+v", first[3:])
	}

	// The returned slice is a snapshot; mutating it must not reach the store.
	first[0].Name = "Mutated"
	if repo.List()[0].Name != "Thailand" {
		t.Error("List() exposed internal state to mutation")
	}
}

func TestGetByPosition(t *testing.T) {
	repo := newTestRepo(t)

	country, ok := repo.GetByPosition(2)
	if !ok {
		t.Fatal("expected position 2 to be in range")
	}
	if country.Name != "Australia" {
		t.Errorf("expected Australia at position 2, got %q", country.Name)
	}

	for _, pos := range []int{0, -1, 4, 99} {
		if _, ok := repo.GetByPosition(pos); ok {
			t.Errorf("expected position %d to be out of range", pos)
		}
	}
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo := newTestRepo(t)

	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			repo.Create(createReq(nil, "Germany", "Berlin", 357022))
		}()
	}
	wg.Wait()

	countries := repo.List()
	if len(countries) != 3+n {
		t.Fatalf("expected %d records, got %d", 3+n, len(countries))
	}

	seen := map[int]bool{}
	for _, c := range countries {
		if seen[c.CountryID] {
			t.Fatalf("duplicate id %d: the read-compute-append sequence raced", c.CountryID)
		}
		seen[c.CountryID] = true
	}
}
