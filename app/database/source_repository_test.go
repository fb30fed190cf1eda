package database

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SourceRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return NewSourceRepository(db)
}

func TestSavePayloadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	payload := CachedPayload{
		SourceName:     "uk",
		URL:            "https://example.com/epg.xml.gz",
		Body:           []byte("<tv></tv>"),
		ByteSize:       9,
		ChannelCount:   3,
		ProgrammeCount: 42,
		FetchedAt:      time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
	}

	if err := repo.SavePayload(payload); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetPayload("uk")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("Expected cached payload, got nil")
	}
	if !bytes.Equal(got.Body, payload.Body) {
		t.Errorf("Body differs: %q != %q", got.Body, payload.Body)
	}
	if got.URL != payload.URL {
		t.Errorf("URL differs: %s != %s", got.URL, payload.URL)
	}
	if got.ChannelCount != 3 || got.ProgrammeCount != 42 {
		t.Errorf("Counts differ: %d/%d", got.ChannelCount, got.ProgrammeCount)
	}
}

func TestSavePayloadOverwrites(t *testing.T) {
	repo := newTestRepo(t)

	first := CachedPayload{
		SourceName: "uk",
		URL:        "https://example.com/epg.xml.gz",
		Body:       []byte("old"),
		ByteSize:   3,
		FetchedAt:  time.Now().UTC(),
	}
	if err := repo.SavePayload(first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.Body = []byte("new")
	if err := repo.SavePayload(second); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetPayload("uk")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Body) != "new" {
		t.Errorf("Expected overwritten body, got %q", got.Body)
	}
}

func TestGetPayloadMissing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetPayload("never-fetched")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing payload, got %+v", got)
	}
}
