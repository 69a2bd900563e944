package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func TestTaggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 Opener.mp3")
	if err := os.WriteFile(path, make([]byte, 512), 0644); err != nil {
		t.Fatal(err)
	}

	rel, tracks, _ := testRelease()
	if err := NewTagger().Tag(path, tracks[0], rel, nil); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "Opener" {
		t.Errorf("title = %q", got)
	}
	if got := tag.Album(); got != "Test Album" {
		t.Errorf("album = %q", got)
	}
	if got := tag.Artist(); got != "Test Artist" {
		t.Errorf("artist = %q", got)
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "1/2" {
		t.Errorf("track number = %q", got)
	}
	if got := tag.GetTextFrame("TYER").Text; got != "2024" {
		t.Errorf("year = %q", got)
	}
}

func TestTaggerPerTrackArtist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "02 Feature.mp3")
	if err := os.WriteFile(path, make([]byte, 512), 0644); err != nil {
		t.Fatal(err)
	}

	rel, tracks, _ := testRelease()
	tracks[1].Artist = "Guest Artist"
	if err := NewTagger().Tag(path, tracks[1], rel, nil); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != "Guest Artist" {
		t.Errorf("artist = %q, want the per-track artist", got)
	}
	if got := tag.GetTextFrame("TPE2").Text; got != "Test Artist" {
		t.Errorf("album artist = %q", got)
	}
}
