package epg

import (
	"strings"
	"time"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run selects the channel subset matching the keyword policy and the
// programme subset bound to those channels and to the time window. An empty
// keyword list selects every channel. Matching is case-insensitive
// substring containment against any display name, so "sky" matches
// "Sky Sports Main Event".
func (e *Extractor) Run(tv *TV, keywords []string, window Window, now time.Time) ([]Channel, []Programme) {
	channels := make([]Channel, 0, len(tv.Channels))
	selected := make(map[string]bool, len(tv.Channels))

	for _, channel := range tv.Channels {
		if len(keywords) > 0 && !matchesAny(channel.DisplayNames, keywords) {
			continue
		}
		channels = append(channels, channel)
		selected[channel.ID] = true
	}

	programmes := make([]Programme, 0)
	for _, programme := range tv.Programmes {
		if !selected[programme.Channel] {
			continue
		}
		if !window.Contains(programme.Start, now) {
			continue
		}
		programmes = append(programmes, programme)
	}

	return channels, programmes
}

func matchesAny(names []string, keywords []string) bool {
	for _, name := range names {
		lowered := strings.ToLower(name)
		for _, keyword := range keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return false
}
