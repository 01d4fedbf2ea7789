package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/config"
	"github.com/tuxaco/countries-api/internal/handler"
	loggerPkg "github.com/tuxaco/countries-api/internal/logger"
	"github.com/tuxaco/countries-api/internal/middleware"
	"github.com/tuxaco/countries-api/internal/models"
	"github.com/tuxaco/countries-api/internal/repository"
	"github.com/tuxaco/countries-api/internal/router"
	"github.com/tuxaco/countries-api/internal/server"
	"github.com/tuxaco/countries-api/internal/service"
)

/* ===== helpers ===== */

// newTestRouter wires the full application stack around a fresh in-memory
// store, exactly as main does, minus the listening socket.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          0, // disabled: throttling would make tests order-dependent
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	cfg.Observability.Environment = "test"

	log := zerolog.Nop()
	s, err := server.New(cfg, &log, new(loggerPkg.LoggerService))
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	repos := repository.NewRepositories(s)
	services, err := service.NewService(s, repos)
	if err != nil {
		t.Fatalf("service.NewService: %v", err)
	}

	return router.New(handler.NewHandlers(s, services), middleware.NewMiddlewares(s))
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type detailResponse struct {
	Detail []struct {
		Loc  []string `json:"loc"`
		Msg  string   `json:"msg"`
		Type string   `json:"type"`
	} `json:"detail"`
}

/* ===== tests ===== */

func TestListRecords(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/records", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var countries []models.Country
	decodeJSON(t, rec, &countries)

	if len(countries) != 3 {
		t.Fatalf("expected 3 seed records, got %d", len(countries))
	}
	if countries[0].Name != "Thailand" || countries[2].Name != "Egypt" {
		t.Errorf("unexpected order: %+v", countries)
	}

	// Wire shape check: the internal CountryID field must appear as "id".
	var raw []map[string]interface{}
	decodeJSON(t, rec, &raw)
	if _, ok := raw[0]["id"]; !ok {
		t.Errorf("expected wire key \"id\", got keys %v", raw[0])
	}
}

func TestListIsIdempotent(t *testing.T) {
	e := newTestRouter(t)

	first := doRequest(t, e, http.MethodGet, "/records", "")
	second := doRequest(t, e, http.MethodGet, "/records", "")

	if first.Body.String() != second.Body.String() {
		t.Errorf("two reads without writes differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestCreateRecordDefaultsID(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodPost, "/records",
		`{"name":"Germany","capital":"Berlin","area":357022}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Country
	decodeJSON(t, rec, &created)

	want := models.Country{CountryID: 4, Name: "Germany", Capital: "Berlin", Area: 357022}
	if created != want {
		t.Errorf("expected %+v, got %+v", want, created)
	}

	// The appended record shows up at the end of the listing.
	list := doRequest(t, e, http.MethodGet, "/records", "")
	var countries []models.Country
	decodeJSON(t, list, &countries)
	if len(countries) != 4 || countries[3] != want {
		t.Errorf("expected Germany appended last, got %+v", countries)
	}
}

func TestCreateRecordExplicitID(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodPost, "/records",
		`{"id":42,"name":"Iceland","capital":"Reykjavik","area":103000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Country
	decodeJSON(t, rec, &created)
	if created.CountryID != 42 {
		t.Errorf("expected explicit id 42 preserved, got %d", created.CountryID)
	}
}

func TestCreateMissingFieldReturns422(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodPost, "/records",
		`{"name":"Germany","capital":"Berlin"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp detailResponse
	decodeJSON(t, rec, &resp)

	if len(resp.Detail) != 1 {
		t.Fatalf("expected exactly one field error, got %+v", resp.Detail)
	}
	fe := resp.Detail[0]
	if len(fe.Loc) != 2 || fe.Loc[0] != "body" || fe.Loc[1] != "area" {
		t.Errorf("expected loc [body area], got %v", fe.Loc)
	}
	if fe.Type != "missing" {
		t.Errorf("expected type missing, got %q", fe.Type)
	}

	// A failed create must not mutate the collection.
	list := doRequest(t, e, http.MethodGet, "/records", "")
	var countries []models.Country
	decodeJSON(t, list, &countries)
	if len(countries) != 3 {
		t.Errorf("expected collection untouched after 422, got %d records", len(countries))
	}
}

func TestCreateTypeMismatchReturns422(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodPost, "/records",
		`{"name":"Germany","capital":"Berlin","area":"huge"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp detailResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Detail) != 1 || resp.Detail[0].Type != "int_parsing" {
		t.Errorf("expected a single int_parsing error for area, got %+v", resp.Detail)
	}
}

func TestGetRecordByPosition(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/records/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var country models.Country
	decodeJSON(t, rec, &country)
	if country.Name != "Australia" {
		t.Errorf("expected Australia at position 2, got %+v", country)
	}
}

func TestGetRecordOutOfRange(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/records/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetRecordNonIntegerParam(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/records/abc", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp detailResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Detail) != 1 {
		t.Fatalf("expected one field error, got %+v", resp.Detail)
	}
	fe := resp.Detail[0]
	if len(fe.Loc) != 2 || fe.Loc[0] != "path" || fe.Loc[1] != "id" {
		t.Errorf("expected loc [path id], got %v", fe.Loc)
	}
	if fe.Type != "int_parsing" {
		t.Errorf("expected type int_parsing, got %q", fe.Type)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(t, e, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	decodeJSON(t, rec, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", resp["status"])
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("X-Request-ID", "test-correlation-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "test-correlation-id" {
		t.Errorf("expected request id echoed back, got %q", got)
	}
}
