package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/tuxaco/countries-api/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validator.Struct(req)
// - Return validator.ValidationErrors
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Decode the body into a raw field map. Malformed JSON is itself a
//     validation failure (loc ["body"]), not a server fault.
//  2. Decode each declared field from its wire alias individually, so a
//     type mismatch on one field does not hide errors on the others.
//  3. payload.Validate() applies the tag rules; fields that never resolved
//     are reported as missing.
//  4. Return *errs.HTTPError (422) carrying every field error at once.
//
// NOTE: payload must be a pointer to a struct so decoded values can be set.
func BindAndValidate(c echo.Context, payload Validatable) error {
	raw, bodyErr := decodeBody(c)
	if bodyErr != nil {
		return errs.NewValidationError([]errs.FieldError{*bodyErr})
	}

	// Per-field decode. failed remembers which wire names already produced
	// a type error, so the missing-field pass below won't double-report them.
	fieldErrors, failed := decodeFields(payload, raw)

	if err := payload.Validate(); err != nil {
		fieldErrors = append(fieldErrors, extractValidationError(err, failed)...)
	}

	if len(fieldErrors) > 0 {
		return errs.NewValidationError(fieldErrors)
	}

	return nil
}

// decodeBody reads the request body into a raw field map.
//
// An absent or empty body yields an empty map: for payloads with required
// fields that simply means every one of them is reported missing, which is
// the correct diagnosis for an empty POST.
func decodeBody(c echo.Context) (map[string]json.RawMessage, *errs.FieldError) {
	body := c.Request().Body
	if body == nil {
		return map[string]json.RawMessage{}, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &errs.FieldError{
			Loc:  []string{"body"},
			Msg:  "Unable to read request body",
			Type: errs.KindJSONInvalid,
		}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		msg := "JSON decode error"
		// A syntactically valid body that is not an object (e.g. a bare
		// array) fails with an UnmarshalTypeError rather than a SyntaxError.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			msg = "Input should be a valid object"
		}
		return nil, &errs.FieldError{
			Loc:  []string{"body"},
			Msg:  msg,
			Type: errs.KindJSONInvalid,
		}
	}

	return raw, nil
}

// decodeFields resolves each declared field of payload from the raw map.
//
// For every exported struct field, the wire alias is taken from the json
// tag (the explicit internal-name/wire-name mapping). A present value that
// fails to decode into the field's declared type produces a TypeMismatch
// error; an absent value is left for the validator pass to judge, since
// only it knows whether the field was required or has a default rule.
func decodeFields(payload Validatable, raw map[string]json.RawMessage) ([]errs.FieldError, map[string]bool) {
	var fieldErrors []errs.FieldError
	failed := map[string]bool{}

	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, failed
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, failed
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		alias := wireName(field)
		if alias == "-" {
			continue
		}

		rawValue, ok := raw[alias]
		if !ok {
			continue
		}

		if err := json.Unmarshal(rawValue, v.Field(i).Addr().Interface()); err != nil {
			fieldErrors = append(fieldErrors, typeMismatchError(alias, field.Type))
			failed[alias] = true
		}
	}

	return fieldErrors, failed
}

// wireName returns the field's externally visible JSON key.
func wireName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return field.Name
	}
	return name
}

// typeMismatchError builds the field error for a value that does not
// conform to the field's declared type.
func typeMismatchError(alias string, t reflect.Type) errs.FieldError {
	// Optional fields are pointers; the wire type is the element type.
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	loc := []string{"body", alias}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return errs.FieldError{
			Loc:  loc,
			Msg:  "Input should be a valid integer",
			Type: errs.KindIntParsing,
		}
	case reflect.String:
		return errs.FieldError{
			Loc:  loc,
			Msg:  "Input should be a valid string",
			Type: errs.KindStringType,
		}
	default:
		return errs.FieldError{
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be a valid %s", t.Kind()),
			Type: "type_error",
		}
	}
}

// extractValidationError converts validator.ValidationErrors into field
// errors, skipping fields that already failed the decode step.
func extractValidationError(err error, failed map[string]bool) []errs.FieldError {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a tag failure: something inside the validator itself broke.
		// Surface it on the body root rather than dropping it silently.
		return []errs.FieldError{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}

	for _, e := range validationErrors {
		// Field() is already the wire name thanks to RegisterTagNameFunc.
		field := e.Field()
		if failed[field] {
			continue
		}

		var msg, kind string

		switch e.Tag() {
		case "required":
			msg = "Field required"
			kind = errs.KindMissing

		case "min":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("String should have at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("Input should be greater than or equal to %s", e.Param())
			}
			kind = "greater_than_equal"

		case "max":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("String should have at most %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("Input should be less than or equal to %s", e.Param())
			}
			kind = "less_than_equal"

		default:
			// Fallback for tags not explicitly handled above.
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, e.Tag())
			}
			kind = "value_error"
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Loc:  []string{"body", field},
			Msg:  msg,
			Type: kind,
		})
	}

	return fieldErrors
}
