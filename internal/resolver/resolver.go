package resolver

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// maxFolderPathLen keeps folder paths under the Windows MAX_PATH limit,
// leaving room for track file names inside the folder.
const maxFolderPathLen = 248

// Resolver maps catalog releases onto the local folder taxonomy.
//
// Layout is <root>/<artist>/<release title>, with compilations optionally
// redirected under a shared Various Artists folder. All name components
// are sanitized for cross-platform validity.
type Resolver struct {
	root string

	// variousArtists is the folder compilations resolve under; empty
	// disables the redirection.
	variousArtists string
}

// New creates a Resolver rooted at the music library directory.
// variousArtistsFolder redirects compilation releases under the named
// shared folder; pass "" to keep compilations under their artist.
func New(root, variousArtistsFolder string) *Resolver {
	return &Resolver{root: root, variousArtists: variousArtistsFolder}
}

// Root returns the library root the resolver was created with.
func (r *Resolver) Root() string {
	return r.root
}

// ArtistFolder returns the on-disk folder for an artist without touching
// the filesystem.
func (r *Resolver) ArtistFolder(artistName string) string {
	return truncatePath(filepath.Join(r.root, SanitizeFolderName(artistName)))
}

// FindOrCreateArtistFolder returns the artist's folder path, creating the
// directory (and any parents) if absent. Idempotent.
func (r *Resolver) FindOrCreateArtistFolder(artistName string) (string, error) {
	path := r.ArtistFolder(artistName)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// ExistingReleases lists the immediate subdirectory names of an artist
// folder. A missing artist folder is an empty library, not an error.
func (r *Resolver) ExistingReleases(artistPath string) ([]string, error) {
	entries, err := os.ReadDir(artistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ResolveArtistReleases maps each catalog release onto a folder path,
// classification and existence flag.
//
// When cachedExistingFolders is non-nil it backs the existence check, so
// a whole discography resolves without per-release filesystem stats;
// otherwise each release folder is stat'ed directly. Compilations are
// always checked against the live filesystem since the cached listing
// covers only the artist's own folder.
//
// The result is deterministic for a given input and filesystem state:
// resolving twice with an unchanged filesystem yields identical output.
func (r *Resolver) ResolveArtistReleases(artistName string, artistID int64, releases []model.Release, cachedExistingFolders []string) []model.ResolvedRelease {
	artistDir := r.ArtistFolder(artistName)

	var oracle ExistenceOracle
	if cachedExistingFolders != nil {
		oracle = NewSnapshotOracle(cachedExistingFolders)
	} else {
		oracle = NewDirOracle(artistDir)
	}

	resolved := make([]model.ResolvedRelease, 0, len(releases))
	for _, rel := range releases {
		compilation := rel.IsCompilation() && r.variousArtists != ""

		dir := artistDir
		if compilation {
			dir = truncatePath(filepath.Join(r.root, SanitizeFolderName(r.variousArtists)))
		}

		folderPath := truncatePath(filepath.Join(dir, SanitizeFolderName(rel.Title)))
		// The on-disk name is the final path component, which truncation
		// may have shortened.
		folder := filepath.Base(folderPath)

		var exists bool
		if compilation {
			exists = NewDirOracle(dir).Exists(folder)
		} else {
			exists = oracle.Exists(folder)
		}

		resolved = append(resolved, model.ResolvedRelease{
			Release:     rel,
			ArtistName:  artistName,
			ArtistID:    artistID,
			FolderPath:  folderPath,
			ReleaseType: model.ClassifyReleaseType(rel.TrackCount, rel.RecordType),
			Exists:      exists,
		})
	}
	return resolved
}

// CreateReleaseFolders creates the folder for every resolved release.
// Already-existing directories are a no-op, so the call is safe to
// retry after a partial failure.
func (r *Resolver) CreateReleaseFolders(releases []model.ResolvedRelease) error {
	for _, rel := range releases {
		if err := os.MkdirAll(rel.FolderPath, 0755); err != nil {
			return err
		}
	}
	return nil
}

// truncatePath limits folder paths for Windows MAX_PATH compatibility.
// The cut lands on a rune boundary so multi-byte names stay valid UTF-8.
func truncatePath(path string) string {
	if len(path) < maxFolderPathLen {
		return path
	}
	cut := maxFolderPathLen - 1
	for cut > 0 && !utf8.RuneStart(path[cut]) {
		cut--
	}
	return path[:cut]
}
