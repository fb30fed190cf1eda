package database

import (
	"time"
)

// CachedPayload is the last successfully fetched body for one source, kept
// so a transient upstream outage degrades to stale data instead of a
// missing source.
type CachedPayload struct {
	SourceName     string
	URL            string
	Body           []byte
	ByteSize       int64
	ChannelCount   int
	ProgrammeCount int
	FetchedAt      time.Time
}
