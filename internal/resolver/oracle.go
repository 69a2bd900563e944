package resolver

import (
	"os"
	"path/filepath"
)

// ExistenceOracle answers whether a release folder already exists under
// an artist directory.
//
// Two implementations exist: a snapshot oracle over a cached folder
// listing, and a live oracle that stats the filesystem. Existence checks
// dominate sync latency at scale, so when a cached listing is available
// the snapshot path avoids one stat per release. The orchestrator picks
// the implementation based on cache availability; resolution logic is
// identical either way.
type ExistenceOracle interface {
	// Exists reports whether the named release folder is present.
	Exists(folderName string) bool
}

type snapshotOracle struct {
	names map[string]struct{}
}

// NewSnapshotOracle returns an oracle backed by a cached list of release
// folder names, typically from a prior directory listing.
func NewSnapshotOracle(folderNames []string) ExistenceOracle {
	names := make(map[string]struct{}, len(folderNames))
	for _, n := range folderNames {
		names[n] = struct{}{}
	}
	return snapshotOracle{names: names}
}

func (o snapshotOracle) Exists(folderName string) bool {
	_, ok := o.names[folderName]
	return ok
}

type dirOracle struct {
	base string
}

// NewDirOracle returns an oracle that checks the filesystem directly,
// one stat per release folder under base.
func NewDirOracle(base string) ExistenceOracle {
	return dirOracle{base: base}
}

func (o dirOracle) Exists(folderName string) bool {
	info, err := os.Stat(filepath.Join(o.base, folderName))
	return err == nil && info.IsDir()
}
