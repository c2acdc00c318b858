package library

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alorle/tvdesk/internal/playlist"
)

// SavedPlaylist is a playlist source remembered by the user.
type SavedPlaylist struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	AddedAt time.Time         `json:"addedAt"`
	Headers *playlist.Headers `json:"customHeaders,omitempty"`
	EPGURL  string            `json:"epgUrl,omitempty"`
}

// NewSavedPlaylist validates rawURL and assigns a random ID.
// When name is blank the URL host is used instead.
func NewSavedPlaylist(rawURL, name string, now time.Time) (SavedPlaylist, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return SavedPlaylist{}, ErrInvalidPlaylistURL
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = u.Hostname()
	}

	return SavedPlaylist{
		ID:      uuid.NewString(),
		Name:    name,
		URL:     trimmed,
		AddedAt: now,
	}, nil
}

// RequestHeaders returns the header overrides to use when fetching the
// playlist.
func (p SavedPlaylist) RequestHeaders() playlist.Headers {
	if p.Headers == nil {
		return playlist.Headers{}
	}
	return *p.Headers
}
