package config

// Source describes one remote EPG source and its selection policy.
type Source struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings SourceSettings `yaml:"settings"`
	Filters  SourceFilters  `yaml:"filters"`
}

type SourceSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Optional bool   `yaml:"optional"` // failures are logged and skipped instead of aborting the run
	Order    int    `yaml:"order"`    // merge precedence: later sources overwrite earlier ones on channel id collisions
	Timeout  int    `yaml:"timeout"`  // seconds, per fetch attempt
	Retries  int    `yaml:"retries"`  // additional attempts after the first
	Referer  string `yaml:"referer"`

	// Programme time window relative to the run's wall clock
	DisableWindow      bool `yaml:"disable_window"`
	PastGraceHours     int  `yaml:"past_grace_hours"`
	FutureHorizonHours int  `yaml:"future_horizon_hours"`
}

type SourceFilters struct {
	Keywords   []string `yaml:"keywords"`   // empty selects every channel
	Exclusions []string `yaml:"exclusions"` // removes matching channels after selection
}
