package playlist_test

import (
	"testing"

	"github.com/alorle/tvdesk/internal/channel"
	"github.com/alorle/tvdesk/internal/playlist"
)

func mustChannel(t *testing.T, name, url string, group *string) channel.Channel {
	t.Helper()
	ch, err := channel.NewChannel(name, url, channel.Attributes{Group: group})
	if err != nil {
		t.Fatalf("NewChannel() unexpected error = %v", err)
	}
	return ch
}

func TestGroups(t *testing.T) {
	news, sport, empty := "News", "Sport", ""
	channels := []channel.Channel{
		mustChannel(t, "a", "http://x/a", &news),
		mustChannel(t, "b", "http://x/b", nil),
		mustChannel(t, "c", "http://x/c", &sport),
		mustChannel(t, "d", "http://x/d", &news),
		mustChannel(t, "e", "http://x/e", &empty),
	}

	got := playlist.Groups(channels)
	want := []string{"News", "Sport"}

	if len(got) != len(want) {
		t.Fatalf("Groups() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Groups()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNew(t *testing.T) {
	p := playlist.New("http://x/list.m3u", nil)

	if p.Channels == nil || len(p.Channels) != 0 {
		t.Errorf("expected empty non-nil channels, got %v", p.Channels)
	}
	if p.Groups == nil || len(p.Groups) != 0 {
		t.Errorf("expected empty non-nil groups, got %v", p.Groups)
	}
	if p.URL != "http://x/list.m3u" {
		t.Errorf("URL = %q", p.URL)
	}
}

func TestHeaders_IsZero(t *testing.T) {
	tests := []struct {
		name    string
		headers playlist.Headers
		want    bool
	}{
		{name: "empty", headers: playlist.Headers{}, want: true},
		{name: "whitespace", headers: playlist.Headers{UserAgent: "  "}, want: true},
		{name: "user agent", headers: playlist.Headers{UserAgent: "VLC/3.0"}, want: false},
		{name: "referer", headers: playlist.Headers{Referer: "http://ref"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.headers.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}
