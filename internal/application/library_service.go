package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alorle/tvdesk/internal/library"
	"github.com/alorle/tvdesk/internal/playlist"
	"github.com/alorle/tvdesk/internal/port/driven"
)

// LibraryService manages the persistent user library. Every mutation is a
// load, modify, save cycle serialized by a mutex.
type LibraryService struct {
	repo   driven.SettingsRepository
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(repo driven.SettingsRepository, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Settings returns the stored settings.
func (s *LibraryService) Settings(ctx context.Context) (library.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return library.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// IsFavorite reports whether channelID is a favorite.
func (s *LibraryService) IsFavorite(ctx context.Context, channelID string) (bool, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	return settings.IsFavorite(channelID), nil
}

// ToggleFavorite adds channelID to the favorites or removes it.
func (s *LibraryService) ToggleFavorite(ctx context.Context, channelID string) (library.Settings, error) {
	return s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		return cur.ToggleFavorite(channelID)
	})
}

// AddRecentlyWatched records channelID as the most recently watched channel.
func (s *LibraryService) AddRecentlyWatched(ctx context.Context, channelID string) (library.Settings, error) {
	return s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		return cur.AddRecentlyWatched(channelID)
	})
}

// SetVolume stores the player volume (0 to 100).
func (s *LibraryService) SetVolume(ctx context.Context, volume int) (library.Settings, error) {
	return s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		next := cur
		next.Volume = volume
		if err := next.Validate(); err != nil {
			return cur, err
		}
		return next, nil
	})
}

// SavePlaylist remembers a playlist source and returns it with its new ID.
func (s *LibraryService) SavePlaylist(ctx context.Context, url, name string, headers *playlist.Headers, epgURL string) (library.SavedPlaylist, error) {
	p, err := library.NewSavedPlaylist(url, name, s.now().UTC())
	if err != nil {
		return library.SavedPlaylist{}, err
	}
	p.Headers = normalizeHeaders(headers)
	p.EPGURL = strings.TrimSpace(epgURL)

	_, err = s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		return cur.AddPlaylist(p), nil
	})
	if err != nil {
		return library.SavedPlaylist{}, err
	}

	s.logger.Info("playlist saved", "id", p.ID, "name", p.Name)
	return p, nil
}

// RemovePlaylist forgets the saved playlist with the given ID.
func (s *LibraryService) RemovePlaylist(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		return cur.RemovePlaylist(id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("playlist removed", "id", id)
	return nil
}

// UpdatePlaylistHeaders replaces the header overrides of a saved playlist.
// Nil or empty headers remove the overrides.
func (s *LibraryService) UpdatePlaylistHeaders(ctx context.Context, id string, headers *playlist.Headers) (library.SavedPlaylist, error) {
	return s.updatePlaylist(ctx, id, func(p *library.SavedPlaylist) {
		p.Headers = normalizeHeaders(headers)
	})
}

// UpdatePlaylistEPG sets the guide URL of a saved playlist.
func (s *LibraryService) UpdatePlaylistEPG(ctx context.Context, id, epgURL string) (library.SavedPlaylist, error) {
	return s.updatePlaylist(ctx, id, func(p *library.SavedPlaylist) {
		p.EPGURL = strings.TrimSpace(epgURL)
	})
}

// Export returns the settings as a JSON document accepted by Import.
func (s *LibraryService) Export(ctx context.Context) ([]byte, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return library.Export(settings)
}

// Import replaces the stored settings with the exported document data.
func (s *LibraryService) Import(ctx context.Context, data []byte) (library.Settings, error) {
	imported, err := library.Import(data)
	if err != nil {
		return library.Settings{}, err
	}

	settings, err := s.update(ctx, func(library.Settings) (library.Settings, error) {
		return imported, nil
	})
	if err != nil {
		return library.Settings{}, err
	}

	s.logger.Info("settings imported", "playlists", len(settings.Playlists), "favorites", len(settings.Favorites))
	return settings, nil
}

func (s *LibraryService) updatePlaylist(ctx context.Context, id string, fn func(*library.SavedPlaylist)) (library.SavedPlaylist, error) {
	settings, err := s.update(ctx, func(cur library.Settings) (library.Settings, error) {
		return cur.UpdatePlaylist(id, fn)
	})
	if err != nil {
		return library.SavedPlaylist{}, err
	}
	return settings.FindPlaylist(id)
}

func (s *LibraryService) update(ctx context.Context, fn func(library.Settings) (library.Settings, error)) (library.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.repo.Load(ctx)
	if err != nil {
		return library.Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	next, err := fn(cur)
	if err != nil {
		return library.Settings{}, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("failed to save settings", "error", err)
		return library.Settings{}, fmt.Errorf("saving settings: %w", err)
	}
	return next, nil
}

func normalizeHeaders(h *playlist.Headers) *playlist.Headers {
	if h == nil || h.IsZero() {
		return nil
	}
	return &playlist.Headers{
		UserAgent: strings.TrimSpace(h.UserAgent),
		Referer:   strings.TrimSpace(h.Referer),
	}
}
