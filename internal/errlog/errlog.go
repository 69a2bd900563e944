// Package errlog records per-artist and per-download failures as a JSON
// array on disk, consumed by reporting tools. The sync engine only
// appends entries; it never interprets them.
package errlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EntryType says which stage of the sync pass an entry came from.
type EntryType string

const (
	// TypeArtistCheck covers failures checking one artist: search,
	// discography fetch or release resolution.
	TypeArtistCheck EntryType = "artist_check"

	// TypeReleaseDownload covers release-level failures, like folder
	// creation or track-list fetch.
	TypeReleaseDownload EntryType = "release_download"

	// TypeTrackDownload covers individual track download failures.
	TypeTrackDownload EntryType = "track_download"
)

// Entry is one recorded failure.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
	Artist    string    `json:"artist"`
	ArtistID  int64     `json:"artistId,omitempty"`
	Release   string    `json:"release,omitempty"`
	ReleaseID int64     `json:"releaseId,omitempty"`
	Error     string    `json:"error"`
}

// NewEntry builds an entry with a fresh ID and the current time.
func NewEntry(t EntryType, artist string, err error) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Type:      t,
		Artist:    artist,
		Error:     err.Error(),
	}
}

// Writer appends entries to the JSON log file at path.
type Writer struct {
	path string
}

// NewWriter creates a Writer for the log file at path. The file and its
// parent directory are created on first append.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append reads the existing log, appends the entries and writes the file
// back. A missing or unreadable log starts fresh rather than failing:
// the error log must never block the sync itself.
func (w *Writer) Append(entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}

	var existing []Entry
	if data, err := os.ReadFile(w.path); err == nil {
		_ = json.Unmarshal(data, &existing)
	}
	existing = append(existing, entries...)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}

// Read returns every entry in the log, oldest first. A missing log is
// an empty log.
func (w *Writer) Read() ([]Entry, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
