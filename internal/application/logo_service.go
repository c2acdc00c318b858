package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/alorle/tvdesk/internal/port/driven"
)

// ErrLogoUnavailable is returned for blank URLs and for URLs whose download
// already failed since the last Reset.
var ErrLogoUnavailable = errors.New("logo unavailable")

// LogoService resolves channel logos to local locators. It remembers
// resolved locators and failed URLs for the lifetime of the process, and
// joins concurrent requests for the same URL.
type LogoService struct {
	cache  driven.LogoCache
	logger *slog.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	resolved map[string]string
	failed   map[string]struct{}
}

// NewLogoService creates a new logo service on top of cache.
func NewLogoService(cache driven.LogoCache, logger *slog.Logger) *LogoService {
	return &LogoService{
		cache:    cache,
		logger:   logger,
		resolved: make(map[string]string),
		failed:   make(map[string]struct{}),
	}
}

// Resolve returns the locator of the cached logo at url. The first failure
// for a URL is returned as is; later calls return ErrLogoUnavailable without
// retrying.
func (s *LogoService) Resolve(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrLogoUnavailable
	}

	s.mu.RLock()
	locator, ok := s.resolved[url]
	_, failed := s.failed[url]
	s.mu.RUnlock()

	if ok {
		return locator, nil
	}
	if failed {
		return "", ErrLogoUnavailable
	}

	// The shared download outlives any one caller; the cache bounds it.
	ch := s.group.DoChan(url, func() (any, error) {
		locator, err := s.cache.Cache(context.WithoutCancel(ctx), url)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			if !isContextError(err) {
				s.failed[url] = struct{}{}
			}
			return "", err
		}
		s.resolved[url] = locator
		return locator, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.logger.Warn("failed to cache logo", "url", url, "error", res.Err)
		return "", fmt.Errorf("caching logo: %w", res.Err)
	}

	return res.Val.(string), nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Reset forgets resolved locators and failed URLs.
func (s *LogoService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.resolved)
	clear(s.failed)
}

// Purge resets the service and removes every cached logo from disk.
func (s *LogoService) Purge() error {
	s.Reset()
	if err := s.cache.Clear(); err != nil {
		s.logger.Error("failed to purge logo cache", "error", err)
		return err
	}
	return nil
}
