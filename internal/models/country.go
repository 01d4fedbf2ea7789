// Package models defines the data entities and request payloads exchanged
// over the API, together with their validation rules.
package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request payloads.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use the JSON tag as the field name in error output, so validation
	// errors report wire names ("id", "area"), never Go identifiers.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Country represents one country record held in the collection.
//
// The internal field CountryID is renamed to "id" on the wire. The rename is
// an explicit serialization mapping (the json tag), not a runtime alias.
// Records are immutable once constructed: they are only ever created at
// startup (seed data) or appended via the create endpoint.
type Country struct {
	CountryID int    `json:"id"`
	Name      string `json:"name"`
	Capital   string `json:"capital"`
	Area      int    `json:"area"`
}

// CreateCountryRequest holds the fields a client may supply when creating
// a country record.
//
// Every field is a pointer so "not provided" (nil) is distinguishable from
// a zero value. CountryID is optional: when absent it is resolved by the
// store's default-id rule (1 + max existing id) at construction time.
// The other three fields are required and have no default rule, so a nil
// value is a validation failure.
type CreateCountryRequest struct {
	CountryID *int    `json:"id"`
	Name      *string `json:"name" validate:"required"`
	Capital   *string `json:"capital" validate:"required"`
	Area      *int    `json:"area" validate:"required"`
}

// Validate runs the validator tag rules for the payload.
//
// Type conformance of individual fields is checked earlier, during the
// per-field decode in the validation package; this step catches the fields
// that never arrived at all.
func (r *CreateCountryRequest) Validate() error {
	return validate.Struct(r)
}

// ListCountriesRequest is the (empty) payload for the list endpoint.
//
// It exists so the list handler can ride the same typed pipeline as every
// other endpoint.
type ListCountriesRequest struct{}

// Validate is a no-op: listing takes no input.
func (r *ListCountriesRequest) Validate() error {
	return nil
}
