// Package library holds the user's persistent preferences: favorites,
// recently watched channels and saved playlist sources.
package library

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultVolume is the player volume of a fresh install.
	DefaultVolume = 50

	// MaxRecentlyWatched bounds the recently watched list.
	MaxRecentlyWatched = 10
)

// Settings is the whole user library. Methods never modify the receiver;
// they return an updated copy.
type Settings struct {
	LastChannelID   string          `json:"lastChannelId,omitempty"`
	Volume          int             `json:"volume"`
	WindowMaximized bool            `json:"windowMaximized"`
	Favorites       []string        `json:"favorites"`
	RecentlyWatched []string        `json:"recentlyWatched"`
	Playlists       []SavedPlaylist `json:"playlists"`
	LastPlaylistURL string          `json:"lastPlaylistUrl,omitempty"`
}

// Default returns the settings of a fresh install.
func Default() Settings {
	return Settings{
		Volume:          DefaultVolume,
		Favorites:       []string{},
		RecentlyWatched: []string{},
		Playlists:       []SavedPlaylist{},
	}
}

// Validate checks the invariants of the settings.
func (s Settings) Validate() error {
	if s.Volume < 0 || s.Volume > 100 {
		return ErrInvalidVolume
	}
	return nil
}

func (s Settings) clone() Settings {
	c := s
	c.Favorites = append([]string{}, s.Favorites...)
	c.RecentlyWatched = append([]string{}, s.RecentlyWatched...)
	c.Playlists = append([]SavedPlaylist{}, s.Playlists...)
	return c
}

// IsFavorite reports whether the channel is a favorite.
func (s Settings) IsFavorite(channelID string) bool {
	return slices.Contains(s.Favorites, channelID)
}

// ToggleFavorite adds the channel to the favorites or removes it.
func (s Settings) ToggleFavorite(channelID string) (Settings, error) {
	if strings.TrimSpace(channelID) == "" {
		return s, ErrEmptyChannelID
	}

	c := s.clone()
	if idx := slices.Index(c.Favorites, channelID); idx >= 0 {
		c.Favorites = slices.Delete(c.Favorites, idx, idx+1)
	} else {
		c.Favorites = append(c.Favorites, channelID)
	}
	return c, nil
}

// AddRecentlyWatched moves the channel to the front of the recently watched
// list, keeping at most MaxRecentlyWatched entries. It also becomes the last
// channel.
func (s Settings) AddRecentlyWatched(channelID string) (Settings, error) {
	if strings.TrimSpace(channelID) == "" {
		return s, ErrEmptyChannelID
	}

	c := s.clone()
	recent := make([]string, 0, len(c.RecentlyWatched)+1)
	recent = append(recent, channelID)
	for _, id := range c.RecentlyWatched {
		if id != channelID {
			recent = append(recent, id)
		}
	}
	if len(recent) > MaxRecentlyWatched {
		recent = recent[:MaxRecentlyWatched]
	}

	c.RecentlyWatched = recent
	c.LastChannelID = channelID
	return c, nil
}

// AddPlaylist remembers a playlist and makes it the last used one.
func (s Settings) AddPlaylist(p SavedPlaylist) Settings {
	c := s.clone()
	c.Playlists = append(c.Playlists, p)
	c.LastPlaylistURL = p.URL
	return c
}

// FindPlaylist returns the saved playlist with the given ID.
func (s Settings) FindPlaylist(id string) (SavedPlaylist, error) {
	for _, p := range s.Playlists {
		if p.ID == id {
			return p, nil
		}
	}
	return SavedPlaylist{}, ErrPlaylistNotFound
}

// RemovePlaylist forgets the saved playlist with the given ID.
func (s Settings) RemovePlaylist(id string) (Settings, error) {
	c := s.clone()
	idx := slices.IndexFunc(c.Playlists, func(p SavedPlaylist) bool { return p.ID == id })
	if idx < 0 {
		return s, ErrPlaylistNotFound
	}
	c.Playlists = slices.Delete(c.Playlists, idx, idx+1)
	return c, nil
}

// UpdatePlaylist applies fn to the saved playlist with the given ID.
func (s Settings) UpdatePlaylist(id string, fn func(*SavedPlaylist)) (Settings, error) {
	c := s.clone()
	for i := range c.Playlists {
		if c.Playlists[i].ID == id {
			fn(&c.Playlists[i])
			return c, nil
		}
	}
	return s, ErrPlaylistNotFound
}

type exportDocument struct {
	Settings *Settings `json:"settings"`
}

// Export serializes the settings as an indented JSON document.
func Export(s Settings) ([]byte, error) {
	return json.MarshalIndent(exportDocument{Settings: &s}, "", "  ")
}

// Import parses a document produced by Export.
// Returns ErrInvalidSettings if it is malformed.
func Import(data []byte) (Settings, error) {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if doc.Settings == nil {
		return Settings{}, fmt.Errorf("%w: missing settings", ErrInvalidSettings)
	}

	s := doc.Settings.Normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return s, nil
}

// Normalize replaces nil lists so that JSON output stays stable.
func (s Settings) Normalize() Settings {
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	if s.RecentlyWatched == nil {
		s.RecentlyWatched = []string{}
	}
	if s.Playlists == nil {
		s.Playlists = []SavedPlaylist{}
	}
	return s
}
