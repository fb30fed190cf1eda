package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"epg-comb/app/config"
	"epg-comb/app/database"
	"epg-comb/app/epg"
	"epg-comb/app/fetcher"
)

// Runner executes one ProcessSourceTask per source, sequentially and in
// configured order. The order is load-bearing: it is the merge precedence.
type Runner struct {
	fetcher   *fetcher.Fetcher
	parser    *epg.Parser
	extractor *epg.Extractor
	filterer  *epg.Filterer
	cache     database.PayloadCache
}

func NewRunner(f *fetcher.Fetcher, parser *epg.Parser, extractor *epg.Extractor,
	filterer *epg.Filterer, cache database.PayloadCache) *Runner {
	return &Runner{
		fetcher:   f,
		parser:    parser,
		extractor: extractor,
		filterer:  filterer,
		cache:     cache,
	}
}

// Run collects per-source results. A failing optional source contributes
// nothing and the run continues; a failing mandatory source aborts.
func (r *Runner) Run(ctx context.Context, sources []*config.Source) ([]epg.SourceResult, error) {
	results := make([]epg.SourceResult, 0, len(sources))

	for _, source := range sources {
		if !source.Settings.Enabled {
			slog.Debug("Source disabled, skipping", "source", source.Name)
			continue
		}

		task := NewProcessSourceTask(source, r.fetcher, r.parser, r.extractor, r.filterer, r.cache)
		task.Start()

		result, err := task.Execute(ctx)
		if err != nil {
			if source.Settings.Optional {
				slog.Warn("Optional source failed, continuing without it", "source", source.Name, "error", err)
				continue
			}
			return nil, fmt.Errorf("source %s failed: %w", source.Name, err)
		}

		results = append(results, *result)
	}

	return results, nil
}
