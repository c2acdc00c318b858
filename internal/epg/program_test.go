package epg_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alorle/tvdesk/internal/epg"
)

func TestNewProgram(t *testing.T) {
	start := time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name      string
		channelID string
		title     string
		start     time.Time
		end       time.Time
		wantTitle string
		wantError error
	}{
		{
			name:      "valid program",
			channelID: "bbc1",
			title:     "News at Noon",
			start:     start,
			end:       end,
			wantTitle: "News at Noon",
		},
		{
			name:      "empty title falls back",
			channelID: "bbc1",
			title:     "  ",
			start:     start,
			end:       end,
			wantTitle: epg.UnknownTitle,
		},
		{
			name:      "zero length program",
			channelID: "bbc1",
			title:     "Blip",
			start:     start,
			end:       start,
			wantTitle: "Blip",
		},
		{
			name:      "empty channel id",
			channelID: " ",
			title:     "x",
			start:     start,
			end:       end,
			wantError: epg.ErrEmptyChannelID,
		},
		{
			name:      "end before start",
			channelID: "bbc1",
			title:     "x",
			start:     end,
			end:       start,
			wantError: epg.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := epg.NewProgram(tt.channelID, tt.title, "", "", tt.start, tt.end)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("NewProgram() error = %v, wantError %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProgram() unexpected error = %v", err)
			}
			if p.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", p.Title, tt.wantTitle)
			}
		})
	}
}

func TestGuide(t *testing.T) {
	base := time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	mk := func(id, title string, from, to int) epg.Program {
		p, err := epg.NewProgram(id, title, "", "", at(from), at(to))
		if err != nil {
			t.Fatalf("NewProgram() unexpected error = %v", err)
		}
		return p
	}

	// Deliberately unsorted input.
	guide := epg.NewGuide("http://epg/guide.xml", base, []epg.Program{
		mk("bbc1", "Evening", 2, 3),
		mk("bbc1", "Noon", 0, 1),
		mk("bbc1", "Afternoon", 1, 2),
		mk("itv", "Film", 0, 2),
	})

	t.Run("programs are sorted by start", func(t *testing.T) {
		list := guide.ForChannel("bbc1")
		if len(list) != 3 {
			t.Fatalf("got %d programs, want 3", len(list))
		}
		for i, want := range []string{"Noon", "Afternoon", "Evening"} {
			if list[i].Title != want {
				t.Errorf("program %d = %q, want %q", i, list[i].Title, want)
			}
		}
	})

	t.Run("current and next", func(t *testing.T) {
		now := base.Add(90 * time.Minute)

		cur, ok := guide.Current("bbc1", now)
		if !ok || cur.Title != "Afternoon" {
			t.Errorf("Current() = %q, %v; want Afternoon", cur.Title, ok)
		}

		next, ok := guide.Next("bbc1", now)
		if !ok || next.Title != "Evening" {
			t.Errorf("Next() = %q, %v; want Evening", next.Title, ok)
		}
	})

	t.Run("boundary belongs to the next program", func(t *testing.T) {
		cur, ok := guide.Current("bbc1", at(1))
		if !ok || cur.Title != "Afternoon" {
			t.Errorf("Current() at boundary = %q, %v; want Afternoon", cur.Title, ok)
		}
	})

	t.Run("unknown channel", func(t *testing.T) {
		if _, ok := guide.Current("nope", base); ok {
			t.Error("expected no current program")
		}
		if _, ok := guide.Next("nope", base); ok {
			t.Error("expected no next program")
		}
		if list := guide.ForChannel("nope"); list == nil || len(list) != 0 {
			t.Errorf("ForChannel() = %v, want empty slice", list)
		}
	})

	t.Run("channel ids", func(t *testing.T) {
		ids := guide.ChannelIDs()
		if len(ids) != 2 || ids[0] != "bbc1" || ids[1] != "itv" {
			t.Errorf("ChannelIDs() = %v", ids)
		}
	})
}
