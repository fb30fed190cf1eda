package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of source configurations
type Loader struct {
	sourcesDir string
}

// NewLoader creates a new configuration loader
func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads all YAML source files from the sources directory, ordered
// by their configured order rank and then by name. That order is the merge
// precedence order downstream.
func (l *Loader) LoadAll() ([]*Source, error) {
	sources := make([]*Source, 0)

	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return sources, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		source, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(source); err != nil {
			return nil, fmt.Errorf("invalid source config %s: %w", file, err)
		}

		sources = append(sources, source)
		slog.Debug("Loaded source configuration", "file", file, "source", source.Name)
	}

	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Settings.Order != sources[j].Settings.Order {
			return sources[i].Settings.Order < sources[j].Settings.Order
		}
		return sources[i].Name < sources[j].Name
	})

	return sources, nil
}

// loadFile loads a single YAML source file
func (l *Loader) loadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	source.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	applyDefaults(&source)

	return &source, nil
}

// applyDefaults fills zero values with operational defaults
func applyDefaults(source *Source) {
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 30 // seconds
	}
	if source.Settings.Retries == 0 {
		source.Settings.Retries = 2
	}
	if source.Settings.PastGraceHours == 0 {
		source.Settings.PastGraceHours = 24
	}
	if source.Settings.FutureHorizonHours == 0 {
		source.Settings.FutureHorizonHours = 192
	}
}

// validate validates the source configuration
func (l *Loader) validate(source *Source) error {
	if source.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if source.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if source.Settings.Retries < 0 {
		return fmt.Errorf("retries must be non-negative")
	}
	if source.Settings.PastGraceHours < 0 {
		return fmt.Errorf("past grace hours must be non-negative")
	}
	if source.Settings.FutureHorizonHours < 0 {
		return fmt.Errorf("future horizon hours must be non-negative")
	}

	for i, keyword := range source.Filters.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("keyword at index %d must not be empty", i)
		}
	}
	for i, keyword := range source.Filters.Exclusions {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("exclusion at index %d must not be empty", i)
		}
	}

	return nil
}
