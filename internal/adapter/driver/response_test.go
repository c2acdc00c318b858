package driver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alorle/tvdesk/internal/application"
	"github.com/alorle/tvdesk/internal/channel"
	"github.com/alorle/tvdesk/internal/epg"
	"github.com/alorle/tvdesk/internal/library"
	"github.com/alorle/tvdesk/internal/m3u"
	"github.com/alorle/tvdesk/internal/port/driven"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "client build", err: driven.ErrClientBuild, want: http.StatusBadRequest},
		{name: "network", err: driven.ErrNetwork, want: http.StatusBadGateway},
		{name: "wrapped status", err: fmt.Errorf("fetching: %w", driven.NewStatusError(404)), want: http.StatusBadGateway},
		{name: "body read", err: driven.ErrBodyRead, want: http.StatusBadGateway},
		{name: "bad guide", err: epg.ErrInvalidEPGFormat, want: http.StatusBadGateway},
		{name: "cache dir", err: driven.ErrCacheDir, want: http.StatusInternalServerError},
		{name: "cache write", err: driven.ErrCacheWrite, want: http.StatusInternalServerError},
		{name: "logo unavailable", err: application.ErrLogoUnavailable, want: http.StatusNotFound},
		{name: "playlist not found", err: library.ErrPlaylistNotFound, want: http.StatusNotFound},
		{name: "guide not found", err: epg.ErrGuideNotFound, want: http.StatusNotFound},
		{name: "invalid playlist url", err: library.ErrInvalidPlaylistURL, want: http.StatusBadRequest},
		{name: "empty channel id", err: library.ErrEmptyChannelID, want: http.StatusBadRequest},
		{name: "invalid volume", err: library.ErrInvalidVolume, want: http.StatusBadRequest},
		{name: "invalid settings", err: library.ErrInvalidSettings, want: http.StatusBadRequest},
		{name: "empty channel url", err: channel.ErrEmptyURL, want: http.StatusBadRequest},
		{name: "comment channel url", err: channel.ErrCommentURL, want: http.StatusBadRequest},
		{name: "invalid body", err: errInvalidBody, want: http.StatusBadRequest},
		{name: "too large", err: &http.MaxBytesError{Limit: 1}, want: http.StatusRequestEntityTooLarge},
		{name: "unreadable playlist", err: fmt.Errorf("parsing: %w", m3u.ErrUnreadable), want: http.StatusBadRequest},
		{name: "oversized playlist", err: fmt.Errorf("%w: %w", m3u.ErrUnreadable, &http.MaxBytesError{Limit: 1}), want: http.StatusRequestEntityTooLarge},
		{name: "timeout", err: fmt.Errorf("fetching: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
