package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuxaco/countries-api/internal/errs"
	"github.com/tuxaco/countries-api/internal/models"
)

/* ===== helpers ===== */

func bindBody(t *testing.T, body string, payload Validatable) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest("POST", "/records", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return BindAndValidate(c, payload)
}

func fieldErrors(t *testing.T, err error) []errs.FieldError {
	t.Helper()

	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != 422 {
		t.Fatalf("expected status 422, got %d", httpErr.Status)
	}
	return httpErr.Detail
}

func findField(detail []errs.FieldError, name string) *errs.FieldError {
	for i := range detail {
		loc := detail[i].Loc
		if len(loc) == 2 && loc[0] == "body" && loc[1] == name {
			return &detail[i]
		}
	}
	return nil
}

/* ===== tests ===== */

func TestBindValidPayload(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"name":"Germany","capital":"Berlin","area":357022}`, req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if req.CountryID != nil {
		t.Errorf("expected nil id for absent field, got %d", *req.CountryID)
	}
	if req.Name == nil || *req.Name != "Germany" {
		t.Errorf("name not decoded: %+v", req)
	}
	if req.Area == nil || *req.Area != 357022 {
		t.Errorf("area not decoded: %+v", req)
	}
}

func TestBindDecodesWireAlias(t *testing.T) {
	// The wire name "id" maps onto the internal CountryID field.
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"id":7,"name":"Iceland","capital":"Reykjavik","area":103000}`, req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.CountryID == nil || *req.CountryID != 7 {
		t.Errorf("id alias not decoded into CountryID: %+v", req)
	}
}

func TestMissingRequiredField(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"name":"Germany","capital":"Berlin"}`, req)

	detail := fieldErrors(t, err)
	if len(detail) != 1 {
		t.Fatalf("expected exactly one field error, got %d: %+v", len(detail), detail)
	}

	fe := detail[0]
	if fe.Loc[0] != "body" || fe.Loc[1] != "area" {
		t.Errorf("expected loc [body area], got %v", fe.Loc)
	}
	if fe.Type != errs.KindMissing {
		t.Errorf("expected type %q, got %q", errs.KindMissing, fe.Type)
	}
}

func TestAllFailuresReportedInOnePass(t *testing.T) {
	// area has the wrong type, capital is absent, name has the wrong type:
	// all three must appear in a single response.
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"name":12,"area":"big"}`, req)

	detail := fieldErrors(t, err)
	if len(detail) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(detail), detail)
	}

	if fe := findField(detail, "name"); fe == nil || fe.Type != errs.KindStringType {
		t.Errorf("expected string_type error for name, got %+v", fe)
	}
	if fe := findField(detail, "area"); fe == nil || fe.Type != errs.KindIntParsing {
		t.Errorf("expected int_parsing error for area, got %+v", fe)
	}
	if fe := findField(detail, "capital"); fe == nil || fe.Type != errs.KindMissing {
		t.Errorf("expected missing error for capital, got %+v", fe)
	}
}

func TestTypeErrorNotDoubleReportedAsMissing(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"name":12,"capital":"Berlin","area":1}`, req)

	detail := fieldErrors(t, err)
	count := 0
	for _, fe := range detail {
		if len(fe.Loc) == 2 && fe.Loc[1] == "name" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one error for name, got %d: %+v", count, detail)
	}
}

func TestEmptyBodyReportsAllRequiredFields(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, ``, req)

	detail := fieldErrors(t, err)
	if len(detail) != 3 {
		t.Fatalf("expected 3 missing-field errors, got %d: %+v", len(detail), detail)
	}
	for _, name := range []string{"name", "capital", "area"} {
		if fe := findField(detail, name); fe == nil || fe.Type != errs.KindMissing {
			t.Errorf("expected missing error for %s, got %+v", name, fe)
		}
	}
}

func TestMalformedJSONBody(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `{"name": "Germany`, req)

	detail := fieldErrors(t, err)
	if len(detail) != 1 {
		t.Fatalf("expected one body error, got %d", len(detail))
	}
	if detail[0].Type != errs.KindJSONInvalid {
		t.Errorf("expected type %q, got %q", errs.KindJSONInvalid, detail[0].Type)
	}
	if len(detail[0].Loc) != 1 || detail[0].Loc[0] != "body" {
		t.Errorf("expected loc [body], got %v", detail[0].Loc)
	}
}

func TestNonObjectBody(t *testing.T) {
	req := &models.CreateCountryRequest{}
	err := bindBody(t, `[1,2,3]`, req)

	detail := fieldErrors(t, err)
	if len(detail) != 1 || detail[0].Type != errs.KindJSONInvalid {
		t.Fatalf("expected a single json_invalid error, got %+v", detail)
	}
}

func TestEmptyPayloadValidates(t *testing.T) {
	// The list request has no fields and no rules; a GET with no body
	// passes straight through the pipeline.
	if err := bindBody(t, ``, &models.ListCountriesRequest{}); err != nil {
		t.Fatalf("expected no error for empty payload, got %v", err)
	}
}
