package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError for callers that do not care about HTTP.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindUpstream   Kind = "upstream"
	KindInternal   Kind = "internal"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code and message so a wrapped sentinel still compares equal
// to its package-level variable.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Kind maps the HTTP code back to the error taxonomy.
func (e *AppError) Kind() Kind {
	switch e.Code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindForbidden
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindUpstream
	default:
		return KindInternal
	}
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError { return New(http.StatusBadRequest, message) }

func NotFound(message string) *AppError { return New(http.StatusNotFound, message) }

func Conflict(message string) *AppError { return New(http.StatusConflict, message) }

// Upstream wraps a storage or network failure.
func Upstream(err error, message string) *AppError {
	return Wrap(err, http.StatusServiceUnavailable, message)
}

// WithCause returns a copy of a sentinel carrying err as its cause.
func WithCause(sentinel *AppError, err error) *AppError {
	return Wrap(err, sentinel.Code, sentinel.Message)
}

// KindOf reports the taxonomy of err; plain errors are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// IsRetryable reports whether a caller may retry the same request unchanged.
// Conflicts (a slot taken between resolution and creation) and upstream failures qualify.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindUpstream:
		return true
	default:
		return false
	}
}
