package epg

import (
	"strings"
	"time"
)

// UnknownTitle is used for programmes without a title.
const UnknownTitle = "Unknown"

// Program is a single scheduled programme of a channel.
type Program struct {
	ChannelID   string    `json:"channelId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// NewProgram creates a Program. An empty title becomes UnknownTitle.
// Returns ErrEmptyChannelID if channelID is blank and ErrInvalidRange if end
// is before start.
func NewProgram(channelID, title, description, category string, start, end time.Time) (Program, error) {
	trimmedID := strings.TrimSpace(channelID)
	if trimmedID == "" {
		return Program{}, ErrEmptyChannelID
	}
	if end.Before(start) {
		return Program{}, ErrInvalidRange
	}

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		trimmedTitle = UnknownTitle
	}

	return Program{
		ChannelID:   trimmedID,
		Title:       trimmedTitle,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Start:       start,
		End:         end,
	}, nil
}

// AiringAt reports whether the programme is on air at t.
func (p Program) AiringAt(t time.Time) bool {
	return !p.Start.After(t) && p.End.After(t)
}
