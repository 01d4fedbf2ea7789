package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/errs"
	"github.com/tuxaco/countries-api/internal/models"
	"github.com/tuxaco/countries-api/internal/server"
	"github.com/tuxaco/countries-api/internal/service"
)

// CountryHandler serves the record endpoints: list, fetch, create.
type CountryHandler struct {
	Handler
	service *service.CountryService
}

// NewCountryHandler constructs a CountryHandler with access to shared
// dependencies and the country service.
func NewCountryHandler(s *server.Server, countryService *service.CountryService) *CountryHandler {
	return &CountryHandler{
		Handler: NewHandler(s),
		service: countryService,
	}
}

// List returns the endpoint for GET /records.
//
// Responds 200 with the full JSON array of records in insertion order.
// The empty request payload keeps the endpoint on the same typed pipeline
// as every other handler (logging, tracing, timings).
func (h *CountryHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, h.list, http.StatusOK,
		func() *models.ListCountriesRequest { return &models.ListCountriesRequest{} })
}

func (h *CountryHandler) list(c echo.Context, req *models.ListCountriesRequest) ([]models.Country, error) {
	return h.service.List(), nil
}

// Create returns the endpoint for POST /records.
//
// Responds 201 with the created record, id resolved (supplied verbatim or
// defaulted to 1 + max existing id). Validation failures respond 422 with
// the full per-field error list.
func (h *CountryHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.create, http.StatusCreated,
		func() *models.CreateCountryRequest { return &models.CreateCountryRequest{} })
}

func (h *CountryHandler) create(c echo.Context, req *models.CreateCountryRequest) (models.Country, error) {
	return h.service.Create(req), nil
}

// GetByID handles GET /records/:id.
//
// The parameter is a 1-based position into the insertion order, not an id
// lookup. A non-integer parameter is a validation failure on the path
// (loc ["path","id"]); an out-of-range position is a 404.
//
// This endpoint binds from the path rather than the body, so it stays a
// plain handler instead of riding the typed body pipeline.
func (h *CountryHandler) GetByID(c echo.Context) error {
	raw := c.Param("id")

	pos, err := strconv.Atoi(raw)
	if err != nil {
		return errs.NewValidationError([]errs.FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "Input should be a valid integer",
			Type: errs.KindIntParsing,
		}})
	}

	country, err := h.service.GetByPosition(pos)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, country)
}
