// Package scanner turns the local music library into a list of artist
// folders. Each immediate subdirectory of the library root is taken as
// one artist; the sync engine feeds the result into the library cache so
// repeated passes skip the traversal.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// Scan lists the artist folders directly under root. Hidden directories
// (the state dotfile directory among them) and plain files are skipped.
func Scan(root string) ([]model.LibraryArtist, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var artists []model.LibraryArtist
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		artists = append(artists, model.LibraryArtist{
			Name: e.Name(),
			Path: filepath.Join(root, e.Name()),
		})
	}
	return artists, nil
}
