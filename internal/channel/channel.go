package channel

import (
	"encoding/json"
	"strings"
)

// Attributes holds the optional metadata of a playlist entry.
// A nil field means the attribute was absent; a pointer to "" means it was
// present with an empty value.
type Attributes struct {
	Logo  *string
	Group *string
	EPGID *string
}

// Channel is a single playlist entry. It is immutable once created.
type Channel struct {
	id    string
	name  string
	url   string
	logo  *string
	group *string
	epgID *string
}

// NewChannel creates a Channel and derives its ID with GenerateID.
// The URL is trimmed; ErrEmptyURL is returned when it is empty and
// ErrCommentURL when it starts with '#'.
func NewChannel(name, url string, attrs Attributes) (Channel, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return Channel{}, ErrEmptyURL
	}
	if strings.HasPrefix(trimmed, "#") {
		return Channel{}, ErrCommentURL
	}

	return Channel{
		id:    GenerateID(name, trimmed),
		name:  name,
		url:   trimmed,
		logo:  clone(attrs.Logo),
		group: clone(attrs.Group),
		epgID: clone(attrs.EPGID),
	}, nil
}

// Reconstruct rebuilds a Channel from previously serialized data without
// recomputing its ID. It should only be used for trusted data.
func Reconstruct(id, name, url string, attrs Attributes) Channel {
	return Channel{
		id:    id,
		name:  name,
		url:   url,
		logo:  clone(attrs.Logo),
		group: clone(attrs.Group),
		epgID: clone(attrs.EPGID),
	}
}

// ID returns the channel's identifier.
func (c Channel) ID() string {
	return c.id
}

// Name returns the display name, possibly empty.
func (c Channel) Name() string {
	return c.name
}

// URL returns the stream URL.
func (c Channel) URL() string {
	return c.url
}

// Logo returns the logo URL and whether it was present.
func (c Channel) Logo() (string, bool) {
	return value(c.logo)
}

// Group returns the group label and whether it was present.
func (c Channel) Group() (string, bool) {
	return value(c.group)
}

// EPGID returns the program guide identifier and whether it was present.
func (c Channel) EPGID() (string, bool) {
	return value(c.epgID)
}

// Attributes returns a copy of the optional metadata.
func (c Channel) Attributes() Attributes {
	return Attributes{
		Logo:  clone(c.logo),
		Group: clone(c.group),
		EPGID: clone(c.epgID),
	}
}

// record is the serialized shape of a Channel.
type record struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Logo  *string `json:"logo,omitempty"`
	Group *string `json:"group,omitempty"`
	EPGID *string `json:"epgId,omitempty"`
}

// MarshalJSON encodes the channel with the fields id, name, url, logo, group
// and epgId. Absent optional fields are omitted.
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		ID:    c.id,
		Name:  c.name,
		URL:   c.url,
		Logo:  c.logo,
		Group: c.group,
		EPGID: c.epgID,
	})
}

// UnmarshalJSON decodes a channel. The URL is validated like in NewChannel and
// a missing ID is derived from the name and URL.
func (c *Channel) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	attrs := Attributes{Logo: r.Logo, Group: r.Group, EPGID: r.EPGID}
	ch, err := NewChannel(r.Name, r.URL, attrs)
	if err != nil {
		return err
	}
	if r.ID != "" {
		ch = Reconstruct(r.ID, ch.Name(), ch.URL(), attrs)
	}

	*c = ch
	return nil
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func value(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
