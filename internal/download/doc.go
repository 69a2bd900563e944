// Package download fetches resolved releases to disk.
//
// # Manager
//
// For each release the Manager creates the folder, fetches the track
// list, downloads every track stream with bounded concurrency and
// per-track retry, tags the files, and optionally saves cover art and a
// playlist:
//
//	mgr := download.NewManager(client, cfg, logger)
//	results, err := mgr.DownloadRelease(ctx, rel)
//
// # Failure semantics
//
// Track failures are isolated: each track carries its own result and the
// rest of the release continues. Only release-level failures (folder
// creation, track-list fetch) surface as an error, which the sync
// orchestrator converts into synthetic per-track failure records so
// summary totals stay consistent.
package download
