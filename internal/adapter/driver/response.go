package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alorle/tvdesk/internal/application"
	"github.com/alorle/tvdesk/internal/channel"
	"github.com/alorle/tvdesk/internal/epg"
	"github.com/alorle/tvdesk/internal/library"
	"github.com/alorle/tvdesk/internal/m3u"
	"github.com/alorle/tvdesk/internal/port/driven"
)

const (
	// maxJSONBodyBytes bounds JSON request bodies.
	maxJSONBodyBytes = 32 << 20
	// maxPlaylistBodyBytes bounds raw playlist uploads.
	maxPlaylistBodyBytes = 64 << 20
)

// errorResponse represents a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps err to a status code and writes it.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// statusFor maps service and adapter errors to HTTP status codes.
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, m3u.ErrUnreadable):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, driven.ErrClientBuild):
		return http.StatusBadRequest
	case errors.Is(err, driven.ErrNetwork),
		errors.Is(err, driven.ErrHTTPStatus),
		errors.Is(err, driven.ErrBodyRead),
		errors.Is(err, epg.ErrInvalidEPGFormat):
		return http.StatusBadGateway
	case errors.Is(err, driven.ErrCacheDir),
		errors.Is(err, driven.ErrCacheWrite):
		return http.StatusInternalServerError
	case errors.Is(err, application.ErrLogoUnavailable),
		errors.Is(err, library.ErrPlaylistNotFound),
		errors.Is(err, epg.ErrGuideNotFound):
		return http.StatusNotFound
	case errors.Is(err, library.ErrInvalidPlaylistURL),
		errors.Is(err, library.ErrEmptyChannelID),
		errors.Is(err, library.ErrInvalidVolume),
		errors.Is(err, library.ErrInvalidSettings),
		errors.Is(err, channel.ErrEmptyURL),
		errors.Is(err, channel.ErrCommentURL),
		errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errInvalidBody = errors.New("invalid request body")

// decodeJSON decodes a bounded JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		// Validation failures from custom unmarshalers keep their sentinel.
		if errors.Is(err, channel.ErrEmptyURL) || errors.Is(err, channel.ErrCommentURL) {
			return err
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// readBody reads a bounded raw request body.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}
