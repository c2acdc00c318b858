package application

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alorle/tvdesk/internal/epg"
	"github.com/alorle/tvdesk/internal/library"
	"github.com/alorle/tvdesk/internal/playlist"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockPlaylistFetcher is a mock implementation of driven.PlaylistFetcher for testing.
type mockPlaylistFetcher struct {
	fetchFunc func(ctx context.Context, url string, headers playlist.Headers) (string, error)
}

func (m *mockPlaylistFetcher) Fetch(ctx context.Context, url string, headers playlist.Headers) (string, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url, headers)
	}
	return "", nil
}

// mockLogoCache is a mock implementation of driven.LogoCache for testing.
type mockLogoCache struct {
	cacheFunc func(ctx context.Context, url string) (string, error)
	clearFunc func() error
}

func (m *mockLogoCache) Cache(ctx context.Context, url string) (string, error) {
	if m.cacheFunc != nil {
		return m.cacheFunc(ctx, url)
	}
	return "asset://localhost/" + url, nil
}

func (m *mockLogoCache) Clear() error {
	if m.clearFunc != nil {
		return m.clearFunc()
	}
	return nil
}

// mockEPGFetcher is a mock implementation of driven.EPGFetcher for testing.
type mockEPGFetcher struct {
	fetchGuideFunc func(ctx context.Context, url string, channelIDs []string, now time.Time) (epg.Guide, error)
}

func (m *mockEPGFetcher) FetchGuide(ctx context.Context, url string, channelIDs []string, now time.Time) (epg.Guide, error) {
	if m.fetchGuideFunc != nil {
		return m.fetchGuideFunc(ctx, url, channelIDs, now)
	}
	return epg.NewGuide(url, now, nil), nil
}

// mockGuideRepository is a mock implementation of driven.GuideRepository for testing.
type mockGuideRepository struct {
	saveFunc  func(ctx context.Context, g epg.Guide) error
	loadFunc  func(ctx context.Context) (epg.Guide, error)
	clearFunc func(ctx context.Context) error
}

func (m *mockGuideRepository) Save(ctx context.Context, g epg.Guide) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, g)
	}
	return nil
}

func (m *mockGuideRepository) Load(ctx context.Context) (epg.Guide, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return epg.Guide{}, epg.ErrGuideNotFound
}

func (m *mockGuideRepository) Clear(ctx context.Context) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return nil
}

// memorySettingsRepository keeps settings in memory. The function fields
// override the default behavior when set.
type memorySettingsRepository struct {
	mu       sync.Mutex
	settings *library.Settings
	saves    int

	loadFunc func(ctx context.Context) (library.Settings, error)
	saveFunc func(ctx context.Context, s library.Settings) error
	pingFunc func(ctx context.Context) error
}

func (m *memorySettingsRepository) Load(ctx context.Context) (library.Settings, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return library.Default(), nil
	}
	return *m.settings, nil
}

func (m *memorySettingsRepository) Save(ctx context.Context, s library.Settings) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	m.saves++
	return nil
}

func (m *memorySettingsRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}
