// Package m3u reads and writes extended-M3U channel playlists.
package m3u

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alorle/tvdesk/internal/channel"
)

// ErrUnreadable is returned by ParseReader when the input cannot be read.
var ErrUnreadable = errors.New("playlist content is unreadable")

const (
	extInfPrefix = "#EXTINF:"

	keyLogo  = `tvg-logo="`
	keyGroup = `group-title="`
	keyEPGID = `tvg-id="`
)

// Parse converts playlist text into channels, in source order.
//
// Parsing is permissive: malformed entries are skipped and Parse never fails.
// An #EXTINF line always consumes the line after it as its URL; the entry is
// kept only when that line is non-empty and is not a '#' directive.
func Parse(content string) []channel.Channel {
	lines := strings.Split(content, "\n")
	channels := make([]channel.Channel, 0)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, extInfPrefix) {
			continue
		}

		name, attrs := parseExtInf(line)

		i++
		if i >= len(lines) {
			break
		}

		ch, err := channel.NewChannel(name, lines[i], attrs)
		if err != nil {
			continue
		}
		channels = append(channels, ch)
	}

	return channels
}

// ParseReader reads r to the end and parses it with Parse.
// The only error it returns wraps ErrUnreadable.
func ParseReader(r io.Reader) ([]channel.Channel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return Parse(string(data)), nil
}

// parseExtInf extracts the display name and the quoted attributes of an
// #EXTINF line. Attributes are only looked up after the first space.
func parseExtInf(line string) (string, channel.Attributes) {
	var attrs channel.Attributes

	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		region := line[idx:]
		attrs.Logo = attribute(region, keyLogo)
		attrs.Group = attribute(region, keyGroup)
		attrs.EPGID = attribute(region, keyEPGID)
	}

	name := ""
	if idx := strings.LastIndexByte(line, ','); idx >= 0 {
		name = strings.TrimSpace(line[idx+1:])
	}

	return name, attrs
}

// attribute returns the value following the first occurrence of key, up to
// the next double quote. It returns nil when the key or the closing quote is
// missing.
func attribute(region, key string) *string {
	start := strings.Index(region, key)
	if start < 0 {
		return nil
	}

	rest := region[start+len(key):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return nil
	}

	v := rest[:end]
	return &v
}
