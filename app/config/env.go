package config

import (
	"os"
	"strings"
)

// CustomSource builds one extra source from the CUSTOM_EPG_URL environment
// variable, optionally with CUSTOM_EPG_REFERER. The source is always
// optional and processed last, so it wins channel id collisions. A missing
// variable skips the source; it never fails the run.
func CustomSource() (*Source, bool) {
	url := strings.TrimSpace(os.Getenv("CUSTOM_EPG_URL"))
	if url == "" {
		return nil, false
	}

	source := &Source{
		Name: "custom",
		URL:  url,
		Settings: SourceSettings{
			Enabled:  true,
			Optional: true,
			Order:    1 << 20,
			Referer:  strings.TrimSpace(os.Getenv("CUSTOM_EPG_REFERER")),
		},
	}
	applyDefaults(source)

	return source, true
}
