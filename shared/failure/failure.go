package failure

import (
	"errors"
	"net/http"
)

// FieldError describes why a single request field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

var ErrStoreNotConfigured = &Failure{
	Code:    http.StatusInternalServerError,
	Message: "Database is not configured. Set DATABASE_URL (or POSTGRES_URL) and restart the service.",
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Validation returns a new Failure for input that failed validation.
func Validation(msg string, details ...FieldError) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Details: details,
	}
}

// ValidationFromError returns a new Failure for input that could not be parsed.
func ValidationFromError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

// StoreUnavailable returns a new Failure for a database that cannot be reached.
// The hint is shown to the caller, so it must never carry credentials.
func StoreUnavailable(hint string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: hint,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// As returns the Failure carried by err, if any.
func As(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}
