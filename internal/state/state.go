package state

import (
	"time"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// stateVersion is the current version of the state file format.
const stateVersion = 1

// ArtistState is the persisted per-artist check history. One entry per
// provider artist ID. Entries are created on first check and mutated in
// place afterwards, so fields not touched by an update survive it.
type ArtistState struct {
	// Name is the artist name at last check.
	Name string `json:"name"`

	// LastChecked is when the artist was last checked for new releases.
	LastChecked time.Time `json:"lastChecked"`

	// LastReleaseDate is the date of the newest release downloaded for
	// this artist, "2006-01-02" form. Empty when unknown.
	LastReleaseDate string `json:"lastReleaseDate,omitempty"`

	// ArtistID is the provider artist identifier, duplicated from the
	// map key for forward compatibility.
	ArtistID int64 `json:"providerArtistId,omitempty"`

	// ExistingReleases is the cached listing of release folder names
	// under the artist's library folder, used by the resolver's
	// fast-path existence check.
	ExistingReleases []string `json:"existingReleases,omitempty"`
}

// LibraryCache is a time-bounded snapshot of the local library scan.
// It is wholesale-replaced on every fresh scan and invalidated by a
// root-path mismatch or age beyond the configured TTL.
type LibraryCache struct {
	Artists     []model.LibraryArtist `json:"artists"`
	LastScanned time.Time             `json:"lastScanned"`
	RootPath    string                `json:"rootPath"`
}

// SyncState is the root persisted document: the single source of truth
// for cross-run sync memory. It is loaded once per sync pass, mutated
// throughout the run, and written back whole at the end.
type SyncState struct {
	Artists        map[int64]*ArtistState `json:"artists"`
	LastFullSync   *time.Time             `json:"lastFullSync,omitempty"`
	LibraryCache   *LibraryCache          `json:"libraryCache,omitempty"`
	IgnoredArtists []string               `json:"ignoredArtists,omitempty"`
	Version        int                    `json:"version"`
}

// defaultState returns the empty state a missing or unreadable state
// file falls back to.
func defaultState() *SyncState {
	return &SyncState{
		Artists: make(map[int64]*ArtistState),
		Version: stateVersion,
	}
}
