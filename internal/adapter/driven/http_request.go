package driven

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alorle/tvdesk/internal/port/driven"
)

// newGetRequest builds a GET request for an absolute http(s) URL.
// Failures wrap driven.ErrClientBuild.
func newGetRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driven.ErrClientBuild, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", driven.ErrClientBuild, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", driven.ErrClientBuild, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driven.ErrClientBuild, err)
	}
	return req, nil
}

// do sends req and checks for a 2xx status. On success the caller owns the
// response body. Failures wrap driven.ErrNetwork or driven.ErrHTTPStatus.
func do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driven.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, driven.NewStatusError(resp.StatusCode)
	}

	return resp, nil
}
