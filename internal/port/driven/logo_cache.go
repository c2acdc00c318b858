package driven

import "context"

// LogoCache stores channel logos locally, keyed by their URL.
// This is a driven port implemented by concrete adapters (e.g., file system).
type LogoCache interface {
	// Cache returns a local-resource locator for the logo at url, downloading
	// it first if it is not cached yet. Failures wrap ErrCacheDir,
	// ErrClientBuild, ErrNetwork, ErrHTTPStatus, ErrBodyRead or ErrCacheWrite.
	Cache(ctx context.Context, url string) (string, error)

	// Clear removes every cached logo.
	Clear() error
}
