package syncer

import "github.com/yeagerhaus/yhdl/internal/model"

// Observer receives progress events from a sync pass. The engine's
// correctness never depends on whether an observer is attached; a nil
// observer is replaced with NopObserver.
//
// Observer methods are called from concurrently running artist-check
// goroutines; implementations that aggregate must synchronize.
type Observer interface {
	// ScanStarted fires before a fresh library traversal.
	ScanStarted(root string)

	// ScanFinished fires once the artist list is known. fromCache is
	// true when a valid cached scan was reused.
	ScanFinished(artists int, fromCache bool)

	// ArtistChecking fires when an artist's check begins.
	ArtistChecking(name string)

	// ArtistSkipped fires when an artist is within its check interval.
	ArtistSkipped(name string)

	// ReleaseFound fires for each release not yet present locally.
	ReleaseFound(rel model.ResolvedRelease)

	// ReleaseDownloaded fires after a release's download settles, with
	// per-track success and failure counts.
	ReleaseDownloaded(rel model.ResolvedRelease, downloaded, failed int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) ScanStarted(string) {}

func (NopObserver) ScanFinished(int, bool) {}

func (NopObserver) ArtistChecking(string) {}

func (NopObserver) ArtistSkipped(string) {}

func (NopObserver) ReleaseFound(model.ResolvedRelease) {}

func (NopObserver) ReleaseDownloaded(model.ResolvedRelease, int, int) {}
