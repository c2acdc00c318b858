package driven

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	// Registers the WebP decoder with image.Decode.
	_ "golang.org/x/image/webp"

	"github.com/alorle/tvdesk/internal/metrics"
	"github.com/alorle/tvdesk/internal/port/driven"
)

const (
	// LocatorPrefix is prepended to the escaped absolute path of a cached logo.
	LocatorPrefix = "asset://localhost/"

	defaultLogoTimeout      = 10 * time.Second
	defaultLogoMaxBodyBytes = 8 << 20
	defaultLogoExtension    = "jpg"
	logoDirName             = "logos"
)

var extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,5}$`)

// LogoCacheConfig configures LogoFileCache. MaxDimension of zero disables
// downscaling.
type LogoCacheConfig struct {
	Dir          string
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	MaxDimension int
}

// LogoFileCache stores channel logos as files under <Dir>/logos.
// It implements the driven.LogoCache port.
type LogoFileCache struct {
	dir          string
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
	maxDimension int
	logger       *slog.Logger
	group        singleflight.Group
}

// NewLogoFileCache creates a logo cache rooted at cfg.Dir.
// If client is nil, a client with the configured timeout is created.
func NewLogoFileCache(cfg LogoCacheConfig, client *http.Client, logger *slog.Logger) *LogoFileCache {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultLogoTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultLogoMaxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LogoFileCache{
		dir:          filepath.Join(cfg.Dir, logoDirName),
		client:       client,
		userAgent:    cfg.UserAgent,
		timeout:      cfg.Timeout,
		maxBodyBytes: cfg.MaxBodyBytes,
		maxDimension: cfg.MaxDimension,
		logger:       logger,
	}
}

// Cache returns the locator of the cached logo for rawURL, downloading it
// when no file exists yet. Concurrent calls for the same URL share one
// download.
func (c *LogoFileCache) Cache(ctx context.Context, rawURL string) (string, error) {
	target, err := c.path(rawURL)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(target); err == nil {
		metrics.RecordLogoRequest(metrics.ResultHit)
		return Locator(target), nil
	}

	// The download is shared, so it runs detached from the first caller
	// and is bounded by the cache timeout instead.
	ch := c.group.DoChan(target, func() (any, error) {
		// Another caller may have completed the download meanwhile.
		if _, err := os.Stat(target); err == nil {
			return nil, nil
		}
		dlCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return nil, c.download(dlCtx, rawURL, target)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordLogoFailure(res.Err)
			return "", res.Err
		}
	}

	metrics.RecordLogoRequest(metrics.ResultMiss)
	return Locator(target), nil
}

// Clear removes every cached logo.
func (c *LogoFileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing logo cache: %w", err)
	}
	c.logger.Info("logo cache cleared", "dir", c.dir)
	return nil
}

// Locator converts an absolute file path into a local-resource locator.
func Locator(absPath string) string {
	return LocatorPrefix + url.PathEscape(filepath.ToSlash(absPath))
}

// path creates the cache directory if needed and returns the absolute
// target file for rawURL.
func (c *LogoFileCache) path(rawURL string) (string, error) {
	dir, err := filepath.Abs(c.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", driven.ErrCacheDir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", driven.ErrCacheDir, err)
	}

	name := strconv.FormatUint(xxhash.Sum64String(rawURL), 16) + "." + logoExtension(rawURL)
	return filepath.Join(dir, name), nil
}

func (c *LogoFileCache) download(ctx context.Context, rawURL, target string) error {
	req, err := newGetRequest(ctx, rawURL)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("downloading logo", "url", rawURL)

	resp, err := do(c.client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", driven.ErrBodyRead, err)
	}
	if int64(len(data)) > c.maxBodyBytes {
		return fmt.Errorf("%w: logo exceeds %d bytes", driven.ErrBodyRead, c.maxBodyBytes)
	}

	data = c.shrink(target, data)

	if err := writeAtomic(target, data); err != nil {
		return err
	}

	c.logger.Debug("logo cached", "url", rawURL, "path", target, "bytes", len(data))
	return nil
}

// shrink fits decodable raster images into maxDimension. Anything it cannot
// decode or encode is returned unchanged.
func (c *LogoFileCache) shrink(target string, data []byte) []byte {
	if c.maxDimension <= 0 {
		return data
	}

	format, err := imaging.FormatFromFilename(target)
	if err != nil {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() <= c.maxDimension && bounds.Dy() <= c.maxDimension {
		return data
	}

	var buf bytes.Buffer
	resized := imaging.Fit(img, c.maxDimension, c.maxDimension, imaging.Lanczos)
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return data
	}
	return buf.Bytes()
}

// writeAtomic writes data to a temporary file next to target and renames it
// into place, so target only ever holds a complete file.
func writeAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".logo-*")
	if err != nil {
		return fmt.Errorf("%w: %v", driven.ErrCacheWrite, err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", driven.ErrCacheWrite, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", driven.ErrCacheWrite, err)
	}
	return nil
}

// logoExtension returns the lowercase extension of the URL path, or jpg
// when it is missing or not a short alphanumeric token.
func logoExtension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if !extensionPattern.MatchString(ext) {
		return defaultLogoExtension
	}
	return ext
}
