package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"epg-comb/app/config"
	"epg-comb/app/database"
	"epg-comb/app/epg"
	"epg-comb/app/fetcher"
)

// ProcessSourceTask runs one source through fetch → parse → extract →
// exclude and returns its contribution to the merge.
type ProcessSourceTask struct {
	Task
	Source    *config.Source
	fetcher   *fetcher.Fetcher
	parser    *epg.Parser
	extractor *epg.Extractor
	filterer  *epg.Filterer
	cache     database.PayloadCache
	now       func() time.Time
}

func NewProcessSourceTask(source *config.Source, f *fetcher.Fetcher, parser *epg.Parser,
	extractor *epg.Extractor, filterer *epg.Filterer, cache database.PayloadCache) *ProcessSourceTask {
	return &ProcessSourceTask{
		Task:      NewTask(TaskTypeProcessSource, source.Name),
		Source:    source,
		fetcher:   f,
		parser:    parser,
		extractor: extractor,
		filterer:  filterer,
		cache:     cache,
		now:       time.Now,
	}
}

func (t *ProcessSourceTask) Execute(ctx context.Context) (*epg.SourceResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, fromCache, err := t.loadPayload(ctx)
	if err != nil {
		return nil, err
	}

	tv, err := t.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source %s: %w", t.SourceName, err)
	}

	window := epg.Window{
		Enabled:       !t.Source.Settings.DisableWindow,
		PastGrace:     t.Source.Settings.GetPastGrace(),
		FutureHorizon: t.Source.Settings.GetFutureHorizon(),
	}

	channels, programmes := t.extractor.Run(tv, t.Source.Filters.Keywords, window, t.now())

	if len(t.Source.Filters.Exclusions) > 0 {
		channels = t.filterer.Run(channels, t.Source.Filters.Exclusions)
		programmes = epg.RetainProgrammes(programmes, channels)
	}

	if !fromCache && t.cache != nil {
		payload := database.CachedPayload{
			SourceName:     t.SourceName,
			URL:            t.Source.URL,
			Body:           data,
			ByteSize:       int64(len(data)),
			ChannelCount:   len(channels),
			ProgrammeCount: len(programmes),
			FetchedAt:      t.now().UTC(),
		}
		if err := t.cache.SavePayload(payload); err != nil {
			slog.Warn("Failed to cache payload", "source", t.SourceName, "error", err)
		}
	}

	slog.Info("Task completed",
		"type", "ProcessSource",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"from_cache", fromCache,
		"channels", len(channels),
		"programmes", len(programmes))

	return &epg.SourceResult{
		Source:     t.SourceName,
		Channels:   channels,
		Programmes: programmes,
	}, nil
}

// loadPayload fetches the source, falling back to the last cached payload
// when every attempt fails.
func (t *ProcessSourceTask) loadPayload(ctx context.Context) ([]byte, bool, error) {
	data, err := t.fetcher.Fetch(ctx, fetcher.Request{
		URL:     t.Source.URL,
		Referer: t.Source.Settings.Referer,
		Timeout: t.Source.Settings.GetTimeout(),
		Retries: t.Source.Settings.GetRetries(),
	})
	if err == nil {
		return data, false, nil
	}

	if t.cache != nil {
		cached, cacheErr := t.cache.GetPayload(t.SourceName)
		if cacheErr != nil {
			slog.Warn("Payload cache lookup failed", "source", t.SourceName, "error", cacheErr)
		} else if cached != nil {
			slog.Warn("Fetch failed, using cached payload",
				"source", t.SourceName,
				"fetched_at", cached.FetchedAt,
				"error", err)
			return cached.Body, true, nil
		}
	}

	return nil, false, err
}
