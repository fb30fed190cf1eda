package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"epg-comb/app/cfg"
	"epg-comb/app/config"
	"epg-comb/app/database"
	"epg-comb/app/epg"
	"epg-comb/app/fetcher"
	"epg-comb/app/sink"
	"epg-comb/app/tasks"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return 0
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting EPG Comb", "version", appCfg.Version)

	loader := config.NewLoader(appCfg.SourcesDir)
	sources, err := loader.LoadAll()
	if err != nil {
		slog.Error("Failed to load source configurations", "error", err)
		return 1
	}

	if custom, ok := config.CustomSource(); ok {
		sources = append(sources, custom)
		slog.Info("Custom source configured from environment", "url", custom.URL)
	} else {
		slog.Warn("CUSTOM_EPG_URL not set, skipping custom source")
	}

	if len(sources) == 0 {
		slog.Error("No sources configured", "sources_dir", appCfg.SourcesDir)
		return 1
	}
	slog.Info("Loaded source configurations", "count", len(sources))

	payloadCache, closeCache := openPayloadCache(appCfg.CacheDB)
	defer closeCache()

	f := fetcher.NewFetcher(appCfg.UserAgent)
	runner := tasks.NewRunner(f, epg.NewParser(), epg.NewExtractor(), epg.NewFilterer(), payloadCache)

	results, err := runner.Run(context.Background(), sources)
	if err != nil {
		slog.Error("Pipeline failed", "error", err)
		return 1
	}

	merged, err := epg.NewMerger().Run(results)
	if err != nil {
		slog.Error("Merge failed", "error", err)
		return 1
	}

	doc, err := epg.NewGenerator().Run(merged)
	if err != nil {
		slog.Error("Failed to serialize document", "error", err)
		return 1
	}

	written, err := sink.NewSink().Run(doc, appCfg.OutputPath)
	if err != nil {
		slog.Error("Failed to write output artifact", "path", appCfg.OutputPath, "error", err)
		return 1
	}

	slog.Info("EPG generated successfully",
		"path", appCfg.OutputPath,
		"bytes", written,
		"channels", len(merged.Channels),
		"programmes", len(merged.Programmes))

	for _, channel := range merged.Channels {
		name := ""
		if len(channel.DisplayNames) > 0 {
			name = channel.DisplayNames[0]
		}
		slog.Debug("Channel", "id", channel.ID, "name", name)
	}

	return 0
}

// openPayloadCache returns nil when caching is disabled or unavailable;
// the pipeline runs without fallback in that case.
func openPayloadCache(path string) (database.PayloadCache, func()) {
	noop := func() {}

	if path == "" {
		slog.Debug("Payload cache disabled")
		return nil, noop
	}

	db, err := database.NewConnection(path)
	if err != nil {
		slog.Warn("Payload cache unavailable, continuing without it", "path", path, "error", err)
		return nil, noop
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Warn("Payload cache migrations failed, continuing without it", "path", path, "error", err)
		db.Close()
		return nil, noop
	}
	slog.Debug("Payload cache ready", "path", path, "schema_version", version, "dirty", dirty)

	return database.NewSourceRepository(db), func() { db.Close() }
}
