package cfg

type Cfg struct {
	// Pipeline configuration
	SourcesDir string
	OutputPath string
	CacheDB    string

	// HTTP configuration
	UserAgent string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
