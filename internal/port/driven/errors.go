package driven

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds reported by the I/O adapters. Adapters wrap one of these so
// that callers can classify failures with errors.Is.
var (
	ErrClientBuild = errors.New("failed to create HTTP client")
	ErrNetwork     = errors.New("failed to fetch URL")
	ErrHTTPStatus  = errors.New("unsuccessful HTTP status")
	ErrBodyRead    = errors.New("failed to read response")
	ErrCacheDir    = errors.New("failed to create cache dir")
	ErrCacheWrite  = errors.New("failed to write cache file")
)

// StatusError reports a non-success HTTP response. It matches ErrHTTPStatus.
type StatusError struct {
	Code int
}

// NewStatusError returns a StatusError for the given status code.
func NewStatusError(code int) *StatusError {
	return &StatusError{Code: code}
}

// Reason returns the canonical reason phrase, or "Unknown".
func (e *StatusError) Reason() string {
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return "Unknown"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Reason())
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}
