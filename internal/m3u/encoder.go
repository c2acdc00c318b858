package m3u

import (
	"fmt"
	"io"
	"strings"

	"github.com/alorle/tvdesk/internal/channel"
)

// Encoder writes channels as an extended-M3U document.
type Encoder struct {
	epgURLs []string
	items   []channel.Channel
}

// NewEncoder creates an Encoder. Non-empty guideURLs are announced in the
// header through the tvg-url attribute.
func NewEncoder(guideURLs []string) *Encoder {
	return &Encoder{epgURLs: guideURLs, items: []channel.Channel{}}
}

// Add appends channels to the document.
func (e *Encoder) Add(channels ...channel.Channel) {
	e.items = append(e.items, channels...)
}

// Encode writes the header followed by one #EXTINF/URL pair per channel.
// Names containing commas do not survive a round trip through Parse, since
// the name is read after the last comma.
func (e *Encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprint(w, "#EXTM3U"); err != nil {
		return err
	}

	if len(e.epgURLs) > 0 {
		if _, err := fmt.Fprintf(w, " tvg-url=\"%s\"", strings.Join(e.epgURLs, ",")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return err
	}

	for _, ch := range e.items {
		if err := encodeChannel(w, ch); err != nil {
			return err
		}
	}

	return nil
}

func encodeChannel(w io.Writer, ch channel.Channel) error {
	var tags []string
	if v, ok := ch.EPGID(); ok {
		tags = append(tags, fmt.Sprintf("tvg-id=\"%s\"", v))
	}
	if v, ok := ch.Logo(); ok {
		tags = append(tags, fmt.Sprintf("tvg-logo=\"%s\"", v))
	}
	if v, ok := ch.Group(); ok {
		tags = append(tags, fmt.Sprintf("group-title=\"%s\"", v))
	}

	if _, err := fmt.Fprint(w, "#EXTINF:-1"); err != nil {
		return err
	}
	if len(tags) > 0 {
		if _, err := fmt.Fprintf(w, " %s", strings.Join(tags, " ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, ",%s\n%s\n", ch.Name(), ch.URL())
	return err
}
