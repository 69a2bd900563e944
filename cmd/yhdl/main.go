// Command yhdl keeps a local music library in sync with a streaming
// provider's catalog: it checks each artist folder for newly released
// material, downloads and tags what's missing, and remembers its
// progress between runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/yeagerhaus/yhdl/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &Runner{}
	if err := rootCommand(r).Run(ctx, os.Args); err != nil {
		logging.New(os.Stderr, false).Fatal(err)
	}
}

func rootCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
	}
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}

	return &cli.Command{
		Name:  "yhdl",
		Usage: "Sync a local music library against a streaming catalog",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Check artists for new releases and download them",
				Flags: []cli.Flag{
					configFlag,
					verboseFlag,
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Sync a single artist instead of the whole library",
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Force-check every artist, bypassing the check interval",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report new releases without downloading anything",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the summary as JSON",
					},
				},
				Action: r.Sync,
			},
			{
				Name:  "ignore",
				Usage: "Manage the artist ignore list",
				Commands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Exclude an artist from sync passes",
						Flags:     []cli.Flag{configFlag},
						Arguments: []cli.Argument{&cli.StringArg{Name: "artist"}},
						Action:    r.IgnoreAdd,
					},
					{
						Name:      "remove",
						Usage:     "Re-include a previously ignored artist",
						Flags:     []cli.Flag{configFlag},
						Arguments: []cli.Argument{&cli.StringArg{Name: "artist"}},
						Action:    r.IgnoreRemove,
					},
					{
						Name:   "list",
						Usage:  "Show the ignore list",
						Flags:  []cli.Flag{configFlag},
						Action: r.IgnoreList,
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage configuration",
				Commands: []*cli.Command{
					{
						Name:      "init",
						Usage:     "Write an example configuration file",
						Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
						Action:    r.ConfigInit,
					},
					{
						Name:   "show",
						Usage:  "Print the effective configuration",
						Flags:  []cli.Flag{configFlag},
						Action: r.ConfigShow,
					},
				},
			},
		},
	}
}
