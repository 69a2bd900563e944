package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/yeagerhaus/yhdl/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join(t.TempDir(), "state.json"), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope", "state.json"), nil)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(s.state.Artists) != 0 {
		t.Errorf("expected empty artists map, got %d entries", len(s.state.Artists))
	}
	if s.state.Version != stateVersion {
		t.Errorf("Version = %d, want %d", s.state.Version, stateVersion)
	}
}

func TestLoad_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"artists is a string", `{"artists": "not-an-object"}`},
		{"artists is an array", `{"artists": [1, 2]}`},
		{"artists values wrong type", `{"artists": {"123": "nope"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			s, err := Load(path, nil)
			if err != nil {
				t.Fatalf("malformed document should fall back, not error: %v", err)
			}
			if len(s.state.Artists) != 0 {
				t.Errorf("expected default empty state, got %d artists", len(s.state.Artists))
			}
		})
	}
}

func TestLoad_DropsNonPositiveArtistKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"artists": {"123": {"name": "Good"}, "0": {"name": "Zero"}, "-5": {"name": "Negative"}}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.state.Artists) != 1 {
		t.Fatalf("got %d artists, want 1", len(s.state.Artists))
	}
	if s.state.Artists[123].Name != "Good" {
		t.Errorf("artist 123 = %+v", s.state.Artists[123])
	}
}

func TestLoad_PreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"artists": {}, "futureFeature": {"enabled": true}, "version": 1}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["futureFeature"]; !ok {
		t.Error("unknown top-level field dropped on round trip")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "state.json")
	s, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	s.UpdateArtistCheck(123, "Test Artist", "2024-01-01")
	s.CacheArtistReleases(123, "Test Artist", []string{"Test Album"})
	s.AddIgnoredArtist("Nickelback")

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := loaded.ArtistState(123)
	if !ok {
		t.Fatal("artist 123 missing after round trip")
	}
	if a.Name != "Test Artist" || a.LastReleaseDate != "2024-01-01" {
		t.Errorf("artist state = %+v", a)
	}
	if got := loaded.CachedArtistReleases(123); !reflect.DeepEqual(got, []string{"Test Album"}) {
		t.Errorf("cached releases = %v", got)
	}
	if !loaded.IsArtistIgnored("nickelback") {
		t.Error("ignore list lost in round trip")
	}
}

func TestUpdateArtistCheck_PreservesUntouchedFields(t *testing.T) {
	s := testStore(t)
	s.CacheArtistReleases(123, "Test Artist", []string{"Old Album"})
	s.UpdateArtistCheck(123, "Test Artist", "")

	a, _ := s.ArtistState(123)
	if !reflect.DeepEqual(a.ExistingReleases, []string{"Old Album"}) {
		t.Errorf("ExistingReleases lost across check update: %v", a.ExistingReleases)
	}
	if a.LastChecked.IsZero() {
		t.Error("LastChecked not set")
	}

	// An empty date never clears a stored one.
	s.UpdateArtistCheck(123, "Test Artist", "2024-01-01")
	s.UpdateArtistCheck(123, "Test Artist", "")
	a, _ = s.ArtistState(123)
	if a.LastReleaseDate != "2024-01-01" {
		t.Errorf("LastReleaseDate = %q, want 2024-01-01", a.LastReleaseDate)
	}
}

func TestShouldSkipArtist(t *testing.T) {
	s := testStore(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if s.ShouldSkipArtist(123, 24*time.Hour) {
		t.Error("never-checked artist must not be skipped")
	}

	tests := []struct {
		name    string
		checked time.Time
		want    bool
	}{
		{"checked 23 hours ago", now.Add(-23 * time.Hour), true},
		{"checked 25 hours ago", now.Add(-25 * time.Hour), false},
		{"checked just now", now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.now = func() time.Time { return tt.checked }
			s.UpdateArtistCheck(123, "Test Artist", "")
			s.now = func() time.Time { return now }

			if got := s.ShouldSkipArtist(123, 24*time.Hour); got != tt.want {
				t.Errorf("ShouldSkipArtist = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLibraryCache(t *testing.T) {
	s := testStore(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	artists := []model.LibraryArtist{{Name: "Test Artist", Path: "/music/Test Artist"}}

	s.now = func() time.Time { return now.Add(-30 * time.Hour) }
	s.CacheLibraryScan("/music", artists)
	s.now = func() time.Time { return now }

	if got := s.CachedLibraryScan("/music", 24*time.Hour); got != nil {
		t.Error("30 hour old cache must be invalid at 24h TTL")
	}

	s.CacheLibraryScan("/music", artists)
	if got := s.CachedLibraryScan("/music", 24*time.Hour); !reflect.DeepEqual(got, artists) {
		t.Errorf("fresh cache = %v, want %v", got, artists)
	}
	if got := s.CachedLibraryScan("/other", 24*time.Hour); got != nil {
		t.Error("root-path mismatch must invalidate the cache")
	}
}

func TestIgnoreList(t *testing.T) {
	s := testStore(t)

	s.AddIgnoredArtist("Beyoncé")
	if !s.IsArtistIgnored("beyonce") {
		t.Error("normalized variant not recognized as ignored")
	}
	if !s.IsArtistIgnored("BEYONCÉ") {
		t.Error("case variant not recognized as ignored")
	}

	s.AddIgnoredArtist("beyonce")
	if got := len(s.IgnoredArtists()); got != 1 {
		t.Errorf("idempotent add broke: list has %d entries", got)
	}

	s.RemoveIgnoredArtist("BEYONCE")
	if s.IsArtistIgnored("Beyoncé") {
		t.Error("artist still ignored after removal")
	}

	// Removing an absent artist is a no-op.
	s.RemoveIgnoredArtist("Nobody")
	if got := len(s.IgnoredArtists()); got != 0 {
		t.Errorf("remove of absent artist changed the list: %d entries", got)
	}
}
