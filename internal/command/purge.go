// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/meta"
)

// PurgeCommandAction deletes cache dir files older than --hours.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if dir == "" {
		dir = GetMeta(cmd).CacheDir
	}
	if dir == "" {
		return fmt.Errorf("no cache dir; set --dir or DEFUNCT_CACHE_DIR")
	}

	n, err := cacheutil.Purge(dir, cmd.Int("hours"))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout(cmd), "removed %d artifact(s) from %s\n", n, dir)
	return nil
}

func purgeFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "hours",
			Usage: "remove artifacts older than this many hours, 0 disables",
			Sources: withConfigFile(ns, "hours", cli.NewValueSourceChain(
				cli.EnvVar("DEFUNCT_PURGE_HOURS"),
				configKey("cache.clean"),
			)),
			Value: 24, //nolint:mnd
		},
		&cli.StringFlag{
			Name:      "dir",
			Aliases:   []string{"d"},
			Usage:     "directory to purge. Defaults to the cache dir",
			Sources:   sources(ns, "dir"),
			TakesFile: true,
		},
	}
}

// PurgeCommandBuilder constructs the cli.Command definition for the "purge"
// command.
func PurgeCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "purge",
		Usage:     "remove old artifacts from the cache dir",
		UsageText: `defunct purge [--hours N]`,
		Flags:     purgeFlags("purge"),
		Action:    PurgeCommandAction,
		Meta:      meta,
	}).Build()
}

// CleanCommandBuilder is purge under its old name.
func CleanCommandBuilder(meta meta.Meta) *cli.Command {
	cmd := (&CommandBuilder{
		Name:      "clean",
		Usage:     "deprecated, use purge",
		UsageText: `defunct clean [--hours N]`,
		Flags:     purgeFlags("purge"),
		Action:    deprecatedAction(PurgeCommandAction, "clean", "use purge"),
		Meta:      meta,
	}).Build()
	cmd.Hidden = true
	return cmd
}
