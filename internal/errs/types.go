package errs

import "strings"

// Error kind tags used in validation detail entries.
//
// These are stable machine-readable strings: clients switch on them,
// so renaming one is a breaking API change.
const (
	// KindMissing marks a required field absent from input with no default rule.
	KindMissing = "missing"

	// KindIntParsing marks a field that could not be read as an integer.
	KindIntParsing = "int_parsing"

	// KindStringType marks a field that could not be read as a string.
	KindStringType = "string_type"

	// KindJSONInvalid marks a request body that is not valid JSON at all.
	KindJSONInvalid = "json_invalid"
)

// FieldError represents a single field-level validation failure.
//
// Example:
//
//	{ "loc": ["body", "area"], "msg": "Field required", "type": "missing" }
type FieldError struct {
	// Loc is the ordered path to the offending field,
	// e.g. ["body", "area"] or ["path", "id"].
	Loc []string `json:"loc"`

	// Msg is the human-readable error message.
	Msg string `json:"msg"`

	// Type is the machine-readable error kind (one of the Kind* constants).
	Type string `json:"type"`
}

// ValidationErrorResponse is the wire shape for a failed validation request.
//
// The body is a mapping with exactly one key, "detail", holding the full
// list of field errors collected in one pass (validation never stops at
// the first failing field).
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Detail: list of per-field validation errors. When non-empty, the
//     global error handler writes a ValidationErrorResponse instead of the
//     generic code/message shape.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`

	// Detail holds field-level validation errors. Not serialized here;
	// validation responses use ValidationErrorResponse.
	Detail []FieldError `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It only checks whether the target is the same *type* (*HTTPError),
// not whether Code/Status match.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Unprocessable Entity" -> "UNPROCESSABLE_ENTITY"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
