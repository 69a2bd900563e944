package syncer

import (
	"encoding/json"
	"time"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// Summary aggregates one sync pass. The arithmetic invariant after a
// full-library pass: CheckedArtists + SkippedArtists + IgnoredArtists
// equals TotalArtists. Artists whose check failed count as checked;
// their failures appear in Errors.
type Summary struct {
	TotalArtists     int           `json:"totalArtists"`
	CheckedArtists   int           `json:"checkedArtists"`
	SkippedArtists   int           `json:"skippedArtists"`
	IgnoredArtists   int           `json:"ignoredArtists"`
	NewReleases      int           `json:"newReleases"`
	DownloadedTracks int           `json:"downloadedTracks"`
	FailedTracks     int           `json:"failedTracks"`
	Duration         time.Duration `json:"duration"`

	// Downloaded lists every release fetched this pass, dry-run ones
	// included.
	Downloaded []DownloadedRelease `json:"downloaded,omitempty"`

	// Errors lists per-artist failures. The batch never aborts on
	// them; they are reported here and in the error log.
	Errors []ArtistError `json:"errors,omitempty"`
}

// DownloadedRelease describes one release fetched during the pass, the
// contract notification collaborators depend on.
type DownloadedRelease struct {
	Artist      string            `json:"artist"`
	Release     string            `json:"release"`
	ReleaseID   int64             `json:"releaseId"`
	ReleaseDate string            `json:"releaseDate,omitempty"`
	Tracks      int               `json:"tracks"`
	ReleaseType model.ReleaseType `json:"releaseType"`
}

// ArtistError pairs an artist with its check failure.
type ArtistError struct {
	Artist string
	Err    error
}

func (e ArtistError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Artist string `json:"artist"`
		Error  string `json:"error"`
	}{e.Artist, e.Err.Error()})
}
