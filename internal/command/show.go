// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/internal/output"
)

// ShowCommandAction prints one artifact, optionally narrowed by a gjson
// query and converted to JSON or YAML.
func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("show takes exactly one KEY, got %d", cmd.NArg())
	}
	key := cmd.Args().First()

	store, _, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := ReadArtifact(ctx, store, key, cmd.Bool("compressed"))
	if err != nil {
		return err
	}

	return output.Emit(stdout(cmd), data, cmd.String("output"), cmd.String("query"))
}

// ShowCommandBuilder constructs the cli.Command definition for the "show"
// command.
func ShowCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Aliases:   []string{"cat"},
		Usage:     "print an artifact",
		UsageText: `defunct show [options] KEY`,
		Flags: append([]cli.Flag{
			NewOutputFlag("show", "raw", output.Formats...),
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path to extract from a JSON artifact, e.g. items.#.name",
			},
			&cli.BoolFlag{
				Name:    "compressed",
				Aliases: []string{"z"},
				Usage:   "the artifact was stored with run --compress",
			},
		}, NewStoreFlags("show")...),
		Action: ShowCommandAction,
		Meta:   meta,
	}).Build()
}
