// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/filters"
	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/internal/output"
)

var lsDefaultAttrs = []string{"key", "size", "age"}

// lsRows turns cache entries into rows for filtering and sorting. Values
// stay typed so size and modified sort numerically and chronologically.
func lsRows(entries []cacheutil.Entry) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]interface{}{
			"key":      e.Key,
			"path":     e.Path,
			"size":     e.Size,
			"modified": e.ModTime,
		})
	}
	return rows
}

// humanizeRows rewrites size for display and derives age from modified.
func humanizeRows(rows []map[string]interface{}) {
	for _, row := range rows {
		if size, ok := row["size"].(int64); ok {
			row["size"] = humanize.Bytes(uint64(size))
		}
		if mod, ok := row["modified"].(time.Time); ok {
			row["age"] = humanize.Time(mod)
		}
	}
}

// useColor honors an explicit --color/--no-color and otherwise colors
// terminals only.
func useColor(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// LsCommandAction lists the artifacts of the file store.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if dir == "" {
		dir = GetMeta(cmd).CacheDir
	}
	if dir == "" {
		return fmt.Errorf("no cache dir; set --dir or DEFUNCT_CACHE_DIR")
	}

	entries, err := cacheutil.List(dir)
	if err != nil {
		return err
	}

	al, err := BuildAttrs(cmd, lsDefaultAttrs...)
	if err != nil {
		return err
	}

	rows, err := filters.FilterDataset(lsRows(entries), al, cmd.String("filter"))
	if err != nil {
		return err
	}
	output.SortDataset(rows, cmd.String("sort"))

	w := stdout(cmd)
	switch cmd.String("output") {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	humanizeRows(rows)
	opts := output.ConfiguredTableOptions(useColor(cmd), cmd.Bool("titles"))
	return output.TableWriter(al.Project(rows), al.Columns(), opts, w)
}

// LsCommandBuilder constructs the cli.Command definition for the "ls"
// command.
func LsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "ls",
		Usage:     "list the artifacts in the cache dir",
		UsageText: `defunct ls [options]`,
		Flags: append([]cli.Flag{
			NewOutputFlag("ls", "text", "text", "json", "yaml"),
			&cli.StringFlag{
				Name:      "dir",
				Aliases:   []string{"d"},
				Usage:     "directory to list. Defaults to the cache dir",
				Sources:   sources("ls", "dir"),
				TakesFile: true,
			},
		}, NewDisplayFlags("ls")...),
		Action: LsCommandAction,
		Meta:   meta,
	}).Build()
}
