// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/config"
	"github.com/staranto/defunctgo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the defunct
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	var err error
	if cfg, err = config.Load(ns); err != nil {
		// No config file is the common case; flags fall back to env and
		// defaults.
		log.Debugf("config: %v", err)
	}

	cacheDir, _ := cacheutil.Dir()
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		CacheDir:    cacheDir,
	}

	app := &cli.Command{
		Name:  "defunct",
		Usage: "memoize command output into files, S3 or redis",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "defunct version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		RunCommandBuilder(meta),
		ShowCommandBuilder(meta),
		FetchCommandBuilder(meta),
		LsCommandBuilder(meta),
		RmCommandBuilder(meta),
		DiffCommandBuilder(meta),
		PurgeCommandBuilder(meta),
		CleanCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
