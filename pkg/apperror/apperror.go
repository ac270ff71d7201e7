package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for the error taxonomy. Services wrap these; handlers map
// them to HTTP statuses with Status and Code.
var (
	ErrValidation   = errors.New("validation_error")
	ErrUnauthorized = errors.New("authentication_error")
	ErrForbidden    = errors.New("authorization_error")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")
	ErrDependency   = errors.New("dependency_error")
)

// Error carries a human-readable message tagged with one of the sentinel kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func Unauthorizedf(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func Dependencyf(format string, args ...any) error {
	return newError(ErrDependency, format, args...)
}

// Status maps an error to its HTTP status code. Unknown errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrDependency):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the taxonomy label for the error envelope.
func Code(err error) string {
	for _, kind := range []error{ErrValidation, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict, ErrDependency} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal_error"
}
