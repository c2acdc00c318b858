// Package playlist holds the playlist aggregate returned to the host
// application after a fetch.
package playlist

import (
	"strings"

	"github.com/alorle/tvdesk/internal/channel"
)

// Headers are per-playlist HTTP header overrides. Empty values leave the
// fetcher defaults in place.
type Headers struct {
	UserAgent string `json:"userAgent,omitempty"`
	Referer   string `json:"referer,omitempty"`
}

// IsZero reports whether no override is set.
func (h Headers) IsZero() bool {
	return strings.TrimSpace(h.UserAgent) == "" && strings.TrimSpace(h.Referer) == ""
}

// Playlist is a parsed playlist document.
type Playlist struct {
	URL      string            `json:"url"`
	Channels []channel.Channel `json:"channels"`
	Groups   []string          `json:"groups"`
}

// New builds a Playlist and computes its group labels.
func New(url string, channels []channel.Channel) Playlist {
	if channels == nil {
		channels = []channel.Channel{}
	}
	return Playlist{
		URL:      url,
		Channels: channels,
		Groups:   Groups(channels),
	}
}

// Groups returns the distinct non-empty group labels in first-seen order.
func Groups(channels []channel.Channel) []string {
	groups := []string{}
	seen := make(map[string]struct{})

	for _, ch := range channels {
		g, ok := ch.Group()
		if !ok || g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		groups = append(groups, g)
	}

	return groups
}
