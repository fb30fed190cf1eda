package epg

import (
	"log/slog"
	"strings"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run removes channels whose concatenated display names contain any
// exclusion keyword as a case-insensitive substring. It runs independently
// of positive selection; a source may use it as its only policy. The caller
// re-filters programmes against the surviving channel set.
func (f *Filterer) Run(channels []Channel, exclusions []string) []Channel {
	if len(exclusions) == 0 {
		return channels
	}

	kept := make([]Channel, 0, len(channels))
	removed := 0

	for _, channel := range channels {
		joined := strings.ToLower(strings.Join(channel.DisplayNames, " "))

		excluded := false
		for _, keyword := range exclusions {
			if strings.Contains(joined, strings.ToLower(keyword)) {
				excluded = true
				break
			}
		}

		if excluded {
			removed++
			continue
		}
		kept = append(kept, channel)
	}

	if removed > 0 {
		slog.Info("Excluded channels", "count", removed)
	}

	return kept
}

// RetainProgrammes drops programmes whose channel reference is absent from
// the given channel set.
func RetainProgrammes(programmes []Programme, channels []Channel) []Programme {
	ids := make(map[string]bool, len(channels))
	for _, channel := range channels {
		ids[channel.ID] = true
	}

	retained := make([]Programme, 0, len(programmes))
	for _, programme := range programmes {
		if ids[programme.Channel] {
			retained = append(retained, programme)
		}
	}

	return retained
}
