package driven

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alorle/tvdesk/internal/playlist"
	"github.com/alorle/tvdesk/internal/port/driven"
)

const (
	// DefaultUserAgent is sent when neither the configuration nor the
	// playlist overrides it. Some providers reject non-browser agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultPlaylistTimeout = 30 * time.Second
	defaultMaxBodyBytes    = 64 << 20
)

// PlaylistFetcherConfig configures PlaylistHTTPFetcher. Zero values select
// the defaults.
type PlaylistFetcherConfig struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// PlaylistHTTPFetcher downloads playlists over HTTP.
// It implements the driven.PlaylistFetcher port.
type PlaylistHTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewPlaylistHTTPFetcher creates a fetcher. If client is nil, a client with
// the configured timeout is created.
func NewPlaylistHTTPFetcher(cfg PlaylistFetcherConfig, client *http.Client) *PlaylistHTTPFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultPlaylistTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &PlaylistHTTPFetcher{
		client:       client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Fetch downloads the playlist at url and returns it as UTF-8 text.
// The body is decoded using the charset of the Content-Type header, a byte
// order mark takes precedence and invalid bytes are replaced.
func (f *PlaylistHTTPFetcher) Fetch(ctx context.Context, url string, headers playlist.Headers) (string, error) {
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return "", err
	}

	userAgent := f.userAgent
	if ua := strings.TrimSpace(headers.UserAgent); ua != "" {
		userAgent = ua
	}
	req.Header.Set("User-Agent", userAgent)
	if referer := strings.TrimSpace(headers.Referer); referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := do(f.client, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", driven.ErrBodyRead, err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return "", fmt.Errorf("%w: body exceeds %d bytes", driven.ErrBodyRead, f.maxBodyBytes)
	}

	return decodeText(body, resp.Header.Get("Content-Type")), nil
}

// decodeText converts body to UTF-8. Unknown charsets fall back to UTF-8.
func decodeText(body []byte, contentType string) string {
	var enc encoding.Encoding = unicode.UTF8
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if charset := params["charset"]; charset != "" {
			if e, err := htmlindex.Get(charset); err == nil {
				enc = e
			}
		}
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "�")
	}
	return string(decoded)
}
