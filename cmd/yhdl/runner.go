package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/yeagerhaus/yhdl/internal/catalog"
	"github.com/yeagerhaus/yhdl/internal/config"
	"github.com/yeagerhaus/yhdl/internal/download"
	"github.com/yeagerhaus/yhdl/internal/errlog"
	"github.com/yeagerhaus/yhdl/internal/logging"
	"github.com/yeagerhaus/yhdl/internal/state"
	"github.com/yeagerhaus/yhdl/internal/syncer"
)

// Runner holds per-invocation wiring for the CLI actions.
type Runner struct{}

// loadConfig builds the effective configuration: defaults, the config
// file when given (or present via YHDL_CONFIG), then environment
// overrides.
func (r *Runner) loadConfig(cmd *cli.Command) (config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		path = os.Getenv("YHDL_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	return cfg.ApplyEnv(), nil
}

// Sync runs one sync pass.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cmd.Bool("verbose"))

	store, err := state.Load(cfg.StatePath(), logger)
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	client := catalog.NewGateway(cfg.APIBaseURL, cfg.RequestsPerSecond, logger)
	o := syncer.New(syncer.Options{
		Config:     cfg,
		Client:     client,
		Downloader: download.NewManager(client, cfg, logger),
		Store:      store,
		Logger:     logger,
		Observer:   logObserver{logger: logger},
		ErrorLog:   errlog.NewWriter(cfg.ErrorLogPath()),
	})

	summary, err := o.Run(ctx, syncer.RunOptions{
		Artist:   cmd.String("artist"),
		FullSync: cmd.Bool("full"),
		DryRun:   cmd.Bool("dry-run"),
	})
	if err != nil {
		if summary != nil {
			printSummary(summary, cmd.Bool("json"))
		}
		return err
	}

	printSummary(summary, cmd.Bool("json"))
	return nil
}

func printSummary(s *syncer.Summary, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err == nil {
			fmt.Println(string(data))
		}
		return
	}

	fmt.Printf("Artists: %d total, %d checked, %d skipped, %d ignored\n",
		s.TotalArtists, s.CheckedArtists, s.SkippedArtists, s.IgnoredArtists)
	fmt.Printf("Releases: %d new, tracks: %d downloaded, %d failed (%s)\n",
		s.NewReleases, s.DownloadedTracks, s.FailedTracks, s.Duration.Round(time.Millisecond))
	for _, rel := range s.Downloaded {
		fmt.Printf("  + %s - %s [%s, %d tracks]\n", rel.Artist, rel.Release, rel.ReleaseType, rel.Tracks)
	}
	for _, e := range s.Errors {
		fmt.Printf("  ! %s: %v\n", e.Artist, e.Err)
	}
}

// IgnoreAdd adds an artist to the persisted ignore list.
func (r *Runner) IgnoreAdd(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(cmd, func(store *state.Store) error {
		name := cmd.StringArg("artist")
		if name == "" {
			return fmt.Errorf("artist name required")
		}
		store.AddIgnoredArtist(name)
		fmt.Printf("Ignoring %q\n", name)
		return nil
	})
}

// IgnoreRemove removes an artist from the ignore list.
func (r *Runner) IgnoreRemove(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(cmd, func(store *state.Store) error {
		name := cmd.StringArg("artist")
		if name == "" {
			return fmt.Errorf("artist name required")
		}
		store.RemoveIgnoredArtist(name)
		fmt.Printf("No longer ignoring %q\n", name)
		return nil
	})
}

// IgnoreList prints the ignore list.
func (r *Runner) IgnoreList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := state.Load(cfg.StatePath(), logging.New(os.Stderr, false))
	if err != nil {
		return err
	}
	for _, name := range store.IgnoredArtists() {
		fmt.Println(name)
	}
	return nil
}

// withStore loads the state store, runs fn, and saves the store back.
func (r *Runner) withStore(cmd *cli.Command, fn func(*state.Store) error) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := state.Load(cfg.StatePath(), logging.New(os.Stderr, false))
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	return store.Save()
}

// ConfigInit writes an example config file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = "config.toml"
	}
	if err := config.WriteExample(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// ConfigShow prints the effective configuration as JSON.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
