package epg

import (
	"fmt"
	"strings"
	"time"
)

const (
	xmltvLayout      = "20060102150405"
	xmltvShortLayout = "200601021504"
)

// ParseXMLTVTime parses an XMLTV timestamp such as "20240208120000 +0100".
// The offset is optional and defaults to UTC. The result is in UTC.
func ParseXMLTVTime(s string) (time.Time, error) {
	stamp, offset, _ := strings.Cut(strings.TrimSpace(s), " ")
	offset = strings.TrimSpace(offset)

	var layout string
	switch len(stamp) {
	case len(xmltvLayout):
		layout = xmltvLayout
	case len(xmltvShortLayout):
		layout = xmltvShortLayout
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	var (
		t   time.Time
		err error
	)
	if offset == "" {
		t, err = time.ParseInLocation(layout, stamp, time.UTC)
	} else {
		t, err = time.Parse(layout+" -0700", stamp+" "+offset)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTime, s, err)
	}

	return t.UTC(), nil
}
