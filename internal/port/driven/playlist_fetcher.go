package driven

import (
	"context"

	"github.com/alorle/tvdesk/internal/playlist"
)

// PlaylistFetcher retrieves raw playlist text from a remote source.
// This is a driven port implemented by concrete adapters (e.g., HTTP client).
type PlaylistFetcher interface {
	// Fetch downloads the document at url and returns it decoded as text.
	// Failures wrap ErrClientBuild, ErrNetwork, ErrHTTPStatus or ErrBodyRead.
	Fetch(ctx context.Context, url string, headers playlist.Headers) (string, error)
}
