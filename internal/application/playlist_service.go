package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alorle/tvdesk/internal/channel"
	"github.com/alorle/tvdesk/internal/m3u"
	"github.com/alorle/tvdesk/internal/metrics"
	"github.com/alorle/tvdesk/internal/playlist"
	"github.com/alorle/tvdesk/internal/port/driven"
)

// PlaylistService loads, parses and exports extended-M3U playlists.
type PlaylistService struct {
	fetcher driven.PlaylistFetcher
	logger  *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(fetcher driven.PlaylistFetcher, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Load downloads the playlist at url and parses it. The download completes
// before parsing starts.
func (s *PlaylistService) Load(ctx context.Context, url string, headers playlist.Headers) (playlist.Playlist, error) {
	url = strings.TrimSpace(url)

	s.logger.Info("fetching playlist", "url", url, "custom_headers", !headers.IsZero())

	content, err := s.fetcher.Fetch(ctx, url, headers)
	metrics.RecordPlaylistFetch(err)
	if err != nil {
		s.logger.Error("failed to fetch playlist", "url", url, "error", err)
		return playlist.Playlist{}, fmt.Errorf("fetching playlist: %w", err)
	}

	channels := s.Parse(content)
	p := playlist.New(url, channels)

	s.logger.Info("playlist loaded", "url", url, "bytes", len(content), "channels", len(p.Channels), "groups", len(p.Groups))
	return p, nil
}

// Parse extracts the channel records of an extended-M3U document.
func (s *PlaylistService) Parse(content string) []channel.Channel {
	channels := m3u.Parse(content)
	metrics.RecordChannelsParsed(len(channels))
	return channels
}

// ParseReader parses the extended-M3U document read from r.
func (s *PlaylistService) ParseReader(r io.Reader) ([]channel.Channel, error) {
	channels, err := m3u.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing playlist: %w", err)
	}
	metrics.RecordChannelsParsed(len(channels))
	return channels, nil
}

// Export writes channels as an extended-M3U document. guideURLs, if any,
// are advertised in the header.
func (s *PlaylistService) Export(w io.Writer, channels []channel.Channel, guideURLs []string) error {
	enc := m3u.NewEncoder(guideURLs)
	enc.Add(channels...)
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encoding playlist: %w", err)
	}
	s.logger.Debug("playlist exported", "channels", len(channels))
	return nil
}

// Groups returns the distinct group labels of channels in first-seen order.
func (s *PlaylistService) Groups(channels []channel.Channel) []string {
	return playlist.Groups(channels)
}
