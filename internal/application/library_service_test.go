package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alorle/tvdesk/internal/library"
	"github.com/alorle/tvdesk/internal/playlist"
)

func newTestLibraryService(repo *memorySettingsRepository) *LibraryService {
	s := NewLibraryService(repo, discardLogger())
	s.now = func() time.Time { return time.Date(2024, 2, 8, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestLibraryService_Favorites(t *testing.T) {
	ctx := context.Background()
	repo := &memorySettingsRepository{}
	service := newTestLibraryService(repo)

	if _, err := service.ToggleFavorite(ctx, "abc"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fav, err := service.IsFavorite(ctx, "abc")
	if err != nil || !fav {
		t.Fatalf("expected abc to be a favorite, got %v, %v", fav, err)
	}

	if _, err := service.ToggleFavorite(ctx, "abc"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fav, err = service.IsFavorite(ctx, "abc")
	if err != nil || fav {
		t.Fatalf("expected abc to be removed, got %v, %v", fav, err)
	}

	if _, err := service.ToggleFavorite(ctx, " "); !errors.Is(err, library.ErrEmptyChannelID) {
		t.Errorf("expected ErrEmptyChannelID, got %v", err)
	}
	if repo.saves != 2 {
		t.Errorf("expected 2 saves, got %d", repo.saves)
	}
}

func TestLibraryService_AddRecentlyWatched(t *testing.T) {
	ctx := context.Background()
	service := newTestLibraryService(&memorySettingsRepository{})

	for i := range library.MaxRecentlyWatched + 2 {
		if _, err := service.AddRecentlyWatched(ctx, fmt.Sprintf("ch%d", i)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	s, err := service.AddRecentlyWatched(ctx, "ch5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(s.RecentlyWatched) != library.MaxRecentlyWatched {
		t.Errorf("expected %d entries, got %d", library.MaxRecentlyWatched, len(s.RecentlyWatched))
	}
	if s.RecentlyWatched[0] != "ch5" {
		t.Errorf("expected ch5 first, got %v", s.RecentlyWatched)
	}
	if s.LastChannelID != "ch5" {
		t.Errorf("expected last channel ch5, got %q", s.LastChannelID)
	}
}

func TestLibraryService_SetVolume(t *testing.T) {
	ctx := context.Background()
	service := newTestLibraryService(&memorySettingsRepository{})

	s, err := service.SetVolume(ctx, 75)
	if err != nil || s.Volume != 75 {
		t.Fatalf("expected volume 75, got %d, %v", s.Volume, err)
	}

	if _, err := service.SetVolume(ctx, 101); !errors.Is(err, library.ErrInvalidVolume) {
		t.Errorf("expected ErrInvalidVolume, got %v", err)
	}
	stored, _ := service.Settings(ctx)
	if stored.Volume != 75 {
		t.Errorf("expected invalid volume to be rejected, got %d", stored.Volume)
	}
}

func TestLibraryService_Playlists(t *testing.T) {
	ctx := context.Background()

	t.Run("save, update and remove", func(t *testing.T) {
		service := newTestLibraryService(&memorySettingsRepository{})

		p, err := service.SavePlaylist(ctx, "https://provider.example.com/list.m3u", "", &playlist.Headers{UserAgent: " VLC/3.0 "}, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ID == "" {
			t.Error("expected an ID")
		}
		if p.Name != "provider.example.com" {
			t.Errorf("expected host as name, got %q", p.Name)
		}
		if p.RequestHeaders().UserAgent != "VLC/3.0" {
			t.Errorf("expected trimmed user agent, got %+v", p.Headers)
		}

		updated, err := service.UpdatePlaylistEPG(ctx, p.ID, " https://example.com/guide.xml ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.EPGURL != "https://example.com/guide.xml" {
			t.Errorf("unexpected EPG URL %q", updated.EPGURL)
		}

		updated, err = service.UpdatePlaylistHeaders(ctx, p.ID, &playlist.Headers{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Headers != nil {
			t.Errorf("expected empty headers to be dropped, got %+v", updated.Headers)
		}

		s, _ := service.Settings(ctx)
		if s.LastPlaylistURL != p.URL {
			t.Errorf("expected last playlist URL %q, got %q", p.URL, s.LastPlaylistURL)
		}

		if err := service.RemovePlaylist(ctx, p.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := service.RemovePlaylist(ctx, p.ID); !errors.Is(err, library.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("invalid URL", func(t *testing.T) {
		service := newTestLibraryService(&memorySettingsRepository{})

		if _, err := service.SavePlaylist(ctx, "ftp://example.com/list", "", nil, ""); !errors.Is(err, library.ErrInvalidPlaylistURL) {
			t.Errorf("expected ErrInvalidPlaylistURL, got %v", err)
		}
	})

	t.Run("update unknown playlist", func(t *testing.T) {
		service := newTestLibraryService(&memorySettingsRepository{})

		if _, err := service.UpdatePlaylistEPG(ctx, "missing", ""); !errors.Is(err, library.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestLibraryService_ExportImport(t *testing.T) {
	ctx := context.Background()
	source := newTestLibraryService(&memorySettingsRepository{})

	if _, err := source.ToggleFavorite(ctx, "abc"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := source.SavePlaylist(ctx, "https://example.com/list.m3u", "Home", nil, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := source.Export(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	target := newTestLibraryService(&memorySettingsRepository{})
	s, err := target.Import(ctx, data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !s.IsFavorite("abc") || len(s.Playlists) != 1 || s.Playlists[0].Name != "Home" {
		t.Errorf("unexpected imported settings %+v", s)
	}

	if _, err := target.Import(ctx, []byte("{not json")); !errors.Is(err, library.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestLibraryService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	expected := errors.New("database closed")

	t.Run("load failure", func(t *testing.T) {
		service := newTestLibraryService(&memorySettingsRepository{
			loadFunc: func(ctx context.Context) (library.Settings, error) {
				return library.Settings{}, expected
			},
		})

		if _, err := service.ToggleFavorite(ctx, "abc"); !errors.Is(err, expected) {
			t.Errorf("expected load error, got %v", err)
		}
	})

	t.Run("save failure", func(t *testing.T) {
		service := newTestLibraryService(&memorySettingsRepository{
			saveFunc: func(ctx context.Context, s library.Settings) error {
				return expected
			},
		})

		if _, err := service.AddRecentlyWatched(ctx, "abc"); !errors.Is(err, expected) {
			t.Errorf("expected save error, got %v", err)
		}
	})
}
