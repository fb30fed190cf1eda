package database

import (
	"database/sql"
	"fmt"
)

// SourceRepository handles cache database operations for source payloads
type SourceRepository struct {
	db *DB
}

// NewSourceRepository creates a new source payload repository
func NewSourceRepository(db *DB) *SourceRepository {
	return &SourceRepository{db: db}
}

var _ PayloadCache = (*SourceRepository)(nil)

// SavePayload inserts or replaces the cached payload for a source
func (r *SourceRepository) SavePayload(payload CachedPayload) error {
	_, err := r.db.Exec(`
		INSERT INTO payloads (source_name, url, body, byte_size, channel_count, programme_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_name) DO UPDATE SET
			url = excluded.url,
			body = excluded.body,
			byte_size = excluded.byte_size,
			channel_count = excluded.channel_count,
			programme_count = excluded.programme_count,
			fetched_at = excluded.fetched_at
	`, payload.SourceName, payload.URL, payload.Body, payload.ByteSize,
		payload.ChannelCount, payload.ProgrammeCount, payload.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save payload: %w", err)
	}

	return nil
}

// GetPayload returns the cached payload for a source, or nil when absent
func (r *SourceRepository) GetPayload(sourceName string) (*CachedPayload, error) {
	var payload CachedPayload

	err := r.db.QueryRow(`
		SELECT source_name, url, body, byte_size, channel_count, programme_count, fetched_at
		FROM payloads
		WHERE source_name = ?
	`, sourceName).Scan(&payload.SourceName, &payload.URL, &payload.Body,
		&payload.ByteSize, &payload.ChannelCount, &payload.ProgrammeCount, &payload.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payload: %w", err)
	}

	return &payload, nil
}
