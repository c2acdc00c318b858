package epg

import (
	"sort"
	"time"
)

// Guide is the program schedule loaded from one XMLTV source, keyed by the
// channel's tvg-id.
type Guide struct {
	URL       string               `json:"url"`
	FetchedAt time.Time            `json:"fetchedAt"`
	Programs  map[string][]Program `json:"programs"`
}

// NewGuide groups programs by channel and sorts each channel by start time.
// Channels without programmes are not present in the guide.
func NewGuide(url string, fetchedAt time.Time, programs []Program) Guide {
	byChannel := make(map[string][]Program)
	for _, p := range programs {
		byChannel[p.ChannelID] = append(byChannel[p.ChannelID], p)
	}
	for _, list := range byChannel {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Start.Before(list[j].Start)
		})
	}

	return Guide{
		URL:       url,
		FetchedAt: fetchedAt,
		Programs:  byChannel,
	}
}

// ForChannel returns the programmes of a channel, oldest first.
func (g Guide) ForChannel(channelID string) []Program {
	list := g.Programs[channelID]
	if list == nil {
		return []Program{}
	}
	return list
}

// Current returns the programme on air at now.
func (g Guide) Current(channelID string, now time.Time) (Program, bool) {
	for _, p := range g.Programs[channelID] {
		if p.AiringAt(now) {
			return p, true
		}
	}
	return Program{}, false
}

// Next returns the first programme starting after now.
func (g Guide) Next(channelID string, now time.Time) (Program, bool) {
	for _, p := range g.Programs[channelID] {
		if p.Start.After(now) {
			return p, true
		}
	}
	return Program{}, false
}

// ChannelIDs returns the ids of the channels with programmes, sorted.
func (g Guide) ChannelIDs() []string {
	ids := make([]string, 0, len(g.Programs))
	for id := range g.Programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
