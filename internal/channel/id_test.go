package channel_test

import (
	"fmt"
	"testing"

	"github.com/alorle/tvdesk/internal/channel"
)

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func TestGenerateID(t *testing.T) {
	t.Run("known XXH64 vectors", func(t *testing.T) {
		tests := []struct {
			name string
			url  string
			want string
		}{
			{name: "", url: "", want: "ef46db3751d8e999"},
			{name: "abc", url: "", want: "44bc2cf5ad770999"},
			{name: "", url: "abc", want: "44bc2cf5ad770999"},
			{name: "a", url: "bc", want: "44bc2cf5ad770999"},
		}

		for _, tt := range tests {
			if got := channel.GenerateID(tt.name, tt.url); got != tt.want {
				t.Errorf("GenerateID(%q, %q) = %q, want %q", tt.name, tt.url, got, tt.want)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first := channel.GenerateID("BBC One", "http://stream.example/bbc1.m3u8")
		for i := 0; i < 100; i++ {
			if got := channel.GenerateID("BBC One", "http://stream.example/bbc1.m3u8"); got != first {
				t.Fatalf("GenerateID returned %q, previously %q", got, first)
			}
		}
	})

	t.Run("at most 16 lowercase hex digits", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			id := channel.GenerateID(fmt.Sprintf("Channel %d", i), fmt.Sprintf("http://example.com/%d", i))
			if len(id) == 0 || len(id) > 16 {
				t.Fatalf("GenerateID length = %d, want 1..16 (%q)", len(id), id)
			}
			if !isHex(id) {
				t.Fatalf("GenerateID = %q, want lowercase hex", id)
			}
		}
	})

	t.Run("distinct inputs yield distinct ids", func(t *testing.T) {
		seen := make(map[string]int)
		for i := 0; i < 1000; i++ {
			id := channel.GenerateID("Channel", fmt.Sprintf("http://example.com/%d", i))
			if prev, ok := seen[id]; ok {
				t.Fatalf("collision between entries %d and %d: %q", prev, i, id)
			}
			seen[id] = i
		}
	})
}
