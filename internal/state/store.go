package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// knownKeys are the top-level state document fields the store manages.
// Anything else is carried through load/save untouched so that newer
// versions of the file survive a round trip through an older binary.
var knownKeys = []string{"artists", "lastFullSync", "libraryCache", "ignoredArtists", "version"}

// Store is the durable sync state store.
//
// All accessors take the store's lock: artist-check closures run on
// parallel goroutines and each completed check mutates the state in
// place. The on-disk file is written exactly once per pass, by Save.
type Store struct {
	mu    sync.Mutex
	path  string
	state *SyncState

	// extra holds unknown top-level JSON fields, preserved verbatim.
	extra map[string]json.RawMessage

	logger *log.Logger
	now    func() time.Time
}

// Load reads the state document at path.
//
// A missing file is not an error: it yields the default empty state.
// Malformed JSON, or an artists field that is not an object of
// positive-integer keys, also yields the default empty state, logged as
// a recoverable condition: nothing meaningful was parseable, so
// discarding beats propagating. Partial documents merge over defaults
// field by field.
func Load(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		path:   path,
		state:  defaultState(),
		logger: logger,
		now:    time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("state file is not valid JSON, starting fresh", "path", path, "err", err)
		return s, nil
	}

	if artists, ok := raw["artists"]; ok {
		parsed := make(map[int64]*ArtistState)
		if err := json.Unmarshal(artists, &parsed); err != nil {
			logger.Warn("state file has malformed artists map, starting fresh", "path", path, "err", err)
			return s, nil
		}
		for id, a := range parsed {
			if id > 0 && a != nil {
				s.state.Artists[id] = a
			}
		}
	}

	// Remaining known fields merge individually; a bad optional field
	// is dropped rather than taking the whole document down.
	if v, ok := raw["lastFullSync"]; ok {
		_ = json.Unmarshal(v, &s.state.LastFullSync)
	}
	if v, ok := raw["libraryCache"]; ok {
		_ = json.Unmarshal(v, &s.state.LibraryCache)
	}
	if v, ok := raw["ignoredArtists"]; ok {
		_ = json.Unmarshal(v, &s.state.IgnoredArtists)
	}
	if v, ok := raw["version"]; ok {
		_ = json.Unmarshal(v, &s.state.Version)
	}
	if s.state.Version == 0 {
		s.state.Version = stateVersion
	}

	for key, v := range raw {
		if !slices.Contains(knownKeys, key) {
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[key] = v
		}
	}

	return s, nil
}

// Save writes the full state document back to disk, creating the parent
// directory if absent. Write errors are fatal for the run: losing the
// ability to persist sync memory invalidates the skip-policy guarantees.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := json.Marshal(s.state)
	if err != nil {
		return err
	}

	doc := make(map[string]json.RawMessage, len(s.extra)+len(knownKeys))
	for k, v := range s.extra {
		doc[k] = v
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return err
	}
	for k, v := range knownMap {
		doc[k] = v
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// UpdateArtistCheck upserts the artist's check record with the current
// time. lastReleaseDate updates the stored date only when non-empty.
// Fields not part of the check record, like the existing-release cache,
// survive the update.
func (s *Store) UpdateArtistCheck(artistID int64, name, lastReleaseDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.state.Artists[artistID]
	if a == nil {
		a = &ArtistState{}
		s.state.Artists[artistID] = a
	}
	a.Name = name
	a.ArtistID = artistID
	a.LastChecked = s.now()
	if lastReleaseDate != "" {
		a.LastReleaseDate = lastReleaseDate
	}
}

// ShouldSkipArtist reports whether the artist was checked within the
// given interval. An artist with no recorded check is never skipped.
func (s *Store) ShouldSkipArtist(artistID int64, interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.state.Artists[artistID]
	if a == nil || a.LastChecked.IsZero() {
		return false
	}
	return s.now().Sub(a.LastChecked) < interval
}

// ArtistState returns a copy of the artist's persisted record.
func (s *Store) ArtistState(artistID int64) (ArtistState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.state.Artists[artistID]
	if a == nil {
		return ArtistState{}, false
	}
	return *a, true
}

// CacheLibraryScan replaces the library scan cache wholesale with a
// fresh snapshot for the given root.
func (s *Store) CacheLibraryScan(rootPath string, artists []model.LibraryArtist) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LibraryCache = &LibraryCache{
		Artists:     artists,
		LastScanned: s.now(),
		RootPath:    rootPath,
	}
}

// CachedLibraryScan returns the cached scan if it matches rootPath
// exactly and is younger than maxAge, nil otherwise. Any mismatch means
// "no cache", forcing a fresh scan.
func (s *Store) CachedLibraryScan(rootPath string, maxAge time.Duration) []model.LibraryArtist {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.state.LibraryCache
	if c == nil || c.RootPath != rootPath {
		return nil
	}
	if s.now().Sub(c.LastScanned) > maxAge {
		return nil
	}
	return slices.Clone(c.Artists)
}

// CacheArtistReleases stores the artist's release folder snapshot used
// by the resolver's fast-path existence check.
func (s *Store) CacheArtistReleases(artistID int64, name string, folders []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.state.Artists[artistID]
	if a == nil {
		a = &ArtistState{Name: name, ArtistID: artistID}
		s.state.Artists[artistID] = a
	}
	a.ExistingReleases = slices.Clone(folders)
}

// CachedArtistReleases returns the artist's release folder snapshot,
// nil when none has been stored.
func (s *Store) CachedArtistReleases(artistID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.state.Artists[artistID]
	if a == nil {
		return nil
	}
	return slices.Clone(a.ExistingReleases)
}

// SetLastFullSync records the completion time of a whole-library pass.
// Single-artist passes never update it.
func (s *Store) SetLastFullSync(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastFullSync = &t
}

// LastFullSync returns the completion time of the last whole-library
// pass, nil when none has run.
func (s *Store) LastFullSync() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastFullSync == nil {
		return nil
	}
	t := *s.state.LastFullSync
	return &t
}

// IsArtistIgnored reports whether the artist is on the ignore list,
// compared by normalized name so trivial naming variants match.
func (s *Store) IsArtistIgnored(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.NormalizeName(name)
	for _, ignored := range s.state.IgnoredArtists {
		if model.NormalizeName(ignored) == key {
			return true
		}
	}
	return false
}

// AddIgnoredArtist adds the artist to the ignore list. Idempotent: an
// artist already present under any naming variant is not added again.
func (s *Store) AddIgnoredArtist(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.NormalizeName(name)
	for _, ignored := range s.state.IgnoredArtists {
		if model.NormalizeName(ignored) == key {
			return
		}
	}
	s.state.IgnoredArtists = append(s.state.IgnoredArtists, name)
}

// RemoveIgnoredArtist removes the artist from the ignore list, matching
// by normalized name. Removing an absent artist is a no-op.
func (s *Store) RemoveIgnoredArtist(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.NormalizeName(name)
	s.state.IgnoredArtists = slices.DeleteFunc(s.state.IgnoredArtists, func(ignored string) bool {
		return model.NormalizeName(ignored) == key
	})
}

// IgnoredArtists returns a copy of the ignore list as stored.
func (s *Store) IgnoredArtists() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.IgnoredArtists)
}
