package fwmap

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrScanComposition is returned when a configuration carries more than one scan directive
	ErrScanComposition = errors.New("fwmap: more than one scan directive on a configuration")

	// ErrNoBasePackages is returned when a scan has no base packages and no declaring package
	ErrNoBasePackages = errors.New("fwmap: scan has no base packages")

	// ErrDuplicateComponent is returned when two scanned components share a name
	ErrDuplicateComponent = errors.New("fwmap: duplicate component name")

	// ErrAlreadyRefreshed is returned by a second call to ApplicationContext.Refresh
	ErrAlreadyRefreshed = errors.New("fwmap: application context already refreshed")

	// ErrNotRefreshed is returned when the context is used before Refresh
	ErrNotRefreshed = errors.New("fwmap: application context not refreshed")

	// ErrNoMatch is returned by a HandlerMapping when no pattern matches the path
	ErrNoMatch = errors.New("fwmap: no mapping matches path")

	// ErrInvalidPattern is returned for malformed mapping patterns
	ErrInvalidPattern = errors.New("fwmap: invalid pattern")

	// ErrInvalidMapping is returned for malformed mapping definitions
	ErrInvalidMapping = errors.New("fwmap: invalid mapping")
)

// AmbiguousMappingError reports two handlers mapped to equivalent patterns in one table
type AmbiguousMappingError struct {
	Table    string
	Method   string
	Pattern  string
	Existing string
	Handler  string
}

func (e *AmbiguousMappingError) Error() string {
	return fmt.Sprintf("fwmap: ambiguous mapping in %s: cannot map %s to %s %s, %s is already mapped",
		e.Table, e.Handler, e.Method, e.Pattern, e.Existing)
}

// MethodNotAllowedError reports a path that matched with a different method
type MethodNotAllowedError struct {
	Method  string
	Path    string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("fwmap: method %s not allowed for %s (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

// HTTPError represents an HTTP error with status code and message
type HTTPError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

func (he *HTTPError) Error() string {
	if he.Internal != nil {
		return fmt.Sprintf("HTTP %d: %s: %v", he.Code, he.Message, he.Internal)
	}
	return fmt.Sprintf("HTTP %d: %s", he.Code, he.Message)
}

func (he *HTTPError) Unwrap() error {
	return he.Internal
}

// NewHTTPError creates an HTTPError; an empty message uses the status text
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// AsHTTPError converts any error into an HTTPError, defaulting to 500
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	var mna *MethodNotAllowedError
	if errors.As(err, &mna) {
		return &HTTPError{Code: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed), Internal: err}
	}
	if errors.Is(err, ErrNoMatch) {
		return &HTTPError{Code: http.StatusNotFound, Message: http.StatusText(http.StatusNotFound), Internal: err}
	}
	return &HTTPError{Code: http.StatusInternalServerError, Message: err.Error(), Internal: err}
}
