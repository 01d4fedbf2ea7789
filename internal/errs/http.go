package errs

import (
	"net/http"
)

// NewValidationError creates a 422 Unprocessable Entity HTTPError carrying
// the full list of field errors collected for the request.
//
// Validation failures are always client-input problems: they are reported
// once, synchronously, and never mapped to a 5xx status.
func NewValidationError(detail []FieldError) *HTTPError {
	return &HTTPError{
		// http.StatusText(422) => "Unprocessable Entity" => "UNPROCESSABLE_ENTITY"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
		Detail:  detail,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Parameters:
//   - message: text to send to client
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
func NewBadRequestError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports an optional custom code override, e.g. "RECORD_NOT_FOUND".
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
// Used by the rate limiter deny handler.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// Note:
//   - message is the generic status text, not the real internal error message.
//   - clients never see stack traces or driver internals.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
