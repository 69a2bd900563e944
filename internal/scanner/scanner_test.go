package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"Radiohead", "Aphex Twin", ".yhdl"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	artists, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(artists) != 2 {
		t.Fatalf("got %d artists, want 2: %+v", len(artists), artists)
	}

	names := map[string]bool{}
	for _, a := range artists {
		names[a.Name] = true
		if a.Path != filepath.Join(root, a.Name) {
			t.Errorf("path for %s = %s", a.Name, a.Path)
		}
	}
	if !names["Radiohead"] || !names["Aphex Twin"] {
		t.Errorf("unexpected names: %v", names)
	}
	if names[".yhdl"] {
		t.Error("hidden directories must be skipped")
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestScanEmptyRoot(t *testing.T) {
	artists, err := Scan(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(artists) != 0 {
		t.Errorf("got %d artists from empty root", len(artists))
	}
}
