package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alorle/tvdesk/internal/m3u"
	"github.com/alorle/tvdesk/internal/playlist"
	"github.com/alorle/tvdesk/internal/port/driven"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="la1.es" tvg-logo="https://cdn.example.com/la1.png" group-title="News",La 1
https://example.com/la1.m3u8
#EXTINF:-1 group-title="Sports",Sport 1
https://example.com/sport1.m3u8
#EXTINF:-1 group-title="News",24h
https://example.com/24h.m3u8
`

func TestPlaylistService_Load(t *testing.T) {
	t.Run("fetches and parses the playlist", func(t *testing.T) {
		var gotURL string
		var gotHeaders playlist.Headers
		fetcher := &mockPlaylistFetcher{
			fetchFunc: func(ctx context.Context, url string, headers playlist.Headers) (string, error) {
				gotURL = url
				gotHeaders = headers
				return samplePlaylist, nil
			},
		}
		service := NewPlaylistService(fetcher, discardLogger())

		headers := playlist.Headers{UserAgent: "VLC/3.0"}
		p, err := service.Load(context.Background(), "  https://example.com/list.m3u ", headers)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotURL != "https://example.com/list.m3u" {
			t.Errorf("expected trimmed URL, got %q", gotURL)
		}
		if gotHeaders != headers {
			t.Errorf("expected headers to be forwarded, got %+v", gotHeaders)
		}
		if p.URL != "https://example.com/list.m3u" {
			t.Errorf("unexpected playlist URL %q", p.URL)
		}
		if len(p.Channels) != 3 {
			t.Fatalf("expected 3 channels, got %d", len(p.Channels))
		}
		if len(p.Groups) != 2 || p.Groups[0] != "News" || p.Groups[1] != "Sports" {
			t.Errorf("unexpected groups %v", p.Groups)
		}
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		fetcher := &mockPlaylistFetcher{
			fetchFunc: func(ctx context.Context, url string, headers playlist.Headers) (string, error) {
				return "", driven.NewStatusError(403)
			},
		}
		service := NewPlaylistService(fetcher, discardLogger())

		_, err := service.Load(context.Background(), "https://example.com/list.m3u", playlist.Headers{})
		if !errors.Is(err, driven.ErrHTTPStatus) {
			t.Errorf("expected ErrHTTPStatus, got %v", err)
		}
	})

	t.Run("empty document yields empty playlist", func(t *testing.T) {
		fetcher := &mockPlaylistFetcher{
			fetchFunc: func(ctx context.Context, url string, headers playlist.Headers) (string, error) {
				return "", nil
			},
		}
		service := NewPlaylistService(fetcher, discardLogger())

		p, err := service.Load(context.Background(), "https://example.com/list.m3u", playlist.Headers{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Channels == nil || len(p.Channels) != 0 {
			t.Errorf("expected empty non-nil channels, got %v", p.Channels)
		}
		if p.Groups == nil || len(p.Groups) != 0 {
			t.Errorf("expected empty non-nil groups, got %v", p.Groups)
		}
	})
}

// errReader fails every read with err.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestPlaylistService_ParseReader(t *testing.T) {
	service := NewPlaylistService(&mockPlaylistFetcher{}, discardLogger())

	t.Run("parses the stream", func(t *testing.T) {
		channels, err := service.ParseReader(strings.NewReader(samplePlaylist))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(channels) != 3 {
			t.Errorf("expected 3 channels, got %d", len(channels))
		}
	})

	t.Run("keeps the read failure", func(t *testing.T) {
		readErr := errors.New("connection reset")
		_, err := service.ParseReader(errReader{err: readErr})
		if !errors.Is(err, m3u.ErrUnreadable) || !errors.Is(err, readErr) {
			t.Errorf("expected ErrUnreadable wrapping the read error, got %v", err)
		}
	})
}

func TestPlaylistService_ExportRoundTrip(t *testing.T) {
	service := NewPlaylistService(&mockPlaylistFetcher{}, discardLogger())
	channels := service.Parse(samplePlaylist)

	var buf strings.Builder
	if err := service.Export(&buf, channels, []string{"https://example.com/guide.xml"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `#EXTM3U tvg-url="https://example.com/guide.xml"`) {
		t.Errorf("expected guide URL in header, got %q", out)
	}

	reparsed := service.Parse(out)
	if len(reparsed) != len(channels) {
		t.Fatalf("expected %d channels after round trip, got %d", len(channels), len(reparsed))
	}
	for i := range channels {
		if reparsed[i].ID() != channels[i].ID() {
			t.Errorf("channel %d: id %q, want %q", i, reparsed[i].ID(), channels[i].ID())
		}
	}

	if groups := service.Groups(reparsed); len(groups) != 2 {
		t.Errorf("expected 2 groups, got %v", groups)
	}
}
