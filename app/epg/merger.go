package epg

import (
	"errors"
)

// Generator metadata attached to the merged document
const (
	GeneratorName = "epg-comb"
	GeneratorURL  = "https://example.com/epg-comb"
)

// ErrNoProgrammes means every source contributed nothing; an empty artifact
// is never useful downstream, so this is fatal.
var ErrNoProgrammes = errors.New("no programmes collected")

type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// Run folds per-source results, in the given order, into one document.
// Channel id collisions resolve by overwrite: the later source's channel
// replaces the earlier one while keeping its first-seen position.
// Programmes concatenate in the same order with no deduplication; sources
// are expected to own disjoint channel ids in practice. Programmes whose
// channel lost out entirely are dropped before serialization.
func (m *Merger) Run(results []SourceResult) (*TV, error) {
	position := make(map[string]int)
	channels := make([]Channel, 0)
	programmes := make([]Programme, 0)

	for _, result := range results {
		for _, channel := range result.Channels {
			if i, ok := position[channel.ID]; ok {
				channels[i] = channel
			} else {
				position[channel.ID] = len(channels)
				channels = append(channels, channel)
			}
		}
		programmes = append(programmes, result.Programmes...)
	}

	retained := make([]Programme, 0, len(programmes))
	for _, programme := range programmes {
		if _, ok := position[programme.Channel]; ok {
			retained = append(retained, programme)
		}
	}

	if len(retained) == 0 {
		return nil, ErrNoProgrammes
	}

	return &TV{
		Generator:    GeneratorName,
		GeneratorURL: GeneratorURL,
		Channels:     channels,
		Programmes:   retained,
	}, nil
}
