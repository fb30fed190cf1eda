package database

// PayloadCache is what the pipeline needs from the cache; a nil cache
// disables fallback cleanly.
type PayloadCache interface {
	SavePayload(payload CachedPayload) error
	GetPayload(sourceName string) (*CachedPayload, error)
}
