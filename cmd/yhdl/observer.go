package main

import (
	"github.com/charmbracelet/log"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// logObserver forwards sync progress events to the structured logger.
type logObserver struct {
	logger *log.Logger
}

func (o logObserver) ScanStarted(root string) {
	o.logger.Info("scanning library", "root", root)
}

func (o logObserver) ScanFinished(artists int, fromCache bool) {
	o.logger.Info("library ready", "artists", artists, "cached", fromCache)
}

func (o logObserver) ArtistChecking(name string) {
	o.logger.Debug("checking artist", "name", name)
}

func (o logObserver) ArtistSkipped(name string) {
	o.logger.Debug("artist recently checked, skipping", "name", name)
}

func (o logObserver) ReleaseFound(rel model.ResolvedRelease) {
	o.logger.Info("new release", "artist", rel.ArtistName, "release", rel.Release.Title, "type", rel.ReleaseType)
}

func (o logObserver) ReleaseDownloaded(rel model.ResolvedRelease, downloaded, failed int) {
	if failed > 0 {
		o.logger.Warn("release finished with failures", "release", rel.Release.Title, "downloaded", downloaded, "failed", failed)
		return
	}
	o.logger.Info("release complete", "release", rel.Release.Title, "tracks", downloaded)
}
