// Package syncer implements the end-to-end sync pass over a music
// library: authenticate against the catalog provider, acquire the
// artist list (cached scan or fresh traversal), filter the ignore list,
// check artists for new releases with bounded concurrency, download
// what's missing, persist check state and summarize.
//
// # Failure isolation
//
// Authentication failure aborts the pass before any work. Everything
// after that is isolated at the closest boundary that can still make
// progress: an artist's failure is one Errors entry, a release's
// failure becomes synthetic per-track failure counts, a track's failure
// is one failed-track record. A pass therefore always produces a
// Summary, even when every artist failed.
//
// # Usage
//
//	o := syncer.New(syncer.Options{
//	    Config:     cfg,
//	    Client:     catalog.NewGateway(cfg.APIBaseURL, cfg.RequestsPerSecond, logger),
//	    Downloader: download.NewManager(client, cfg, logger),
//	    Store:      store,
//	    Logger:     logger,
//	})
//	summary, err := o.Run(ctx, syncer.RunOptions{})
package syncer
