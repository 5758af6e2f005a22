// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/internal/output"
)

// DiffCommandAction prints a structural diff of two JSON artifacts.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("diff takes exactly two KEYs, got %d", cmd.NArg())
	}

	store, _, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	var docs [2][]byte
	for i := range docs {
		docs[i], err = ReadArtifact(ctx, store, cmd.Args().Get(i), cmd.Bool("compressed"))
		if err != nil {
			return err
		}
	}

	changed, err := output.Diff(stdout(cmd), docs[0], docs[1], useColor(cmd))
	if err != nil {
		return err
	}
	if !changed {
		log.Infof("%s and %s are the same", cmd.Args().Get(0), cmd.Args().Get(1))
	}
	return nil
}

// DiffCommandBuilder constructs the cli.Command definition for the "diff"
// command.
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "diff two JSON artifacts",
		UsageText: `defunct diff [options] KEY1 KEY2`,
		Flags: append([]cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output. Defaults to on for terminals",
				Sources: withConfigFile("diff", "color", cli.NewValueSourceChain()),
			},
			&cli.BoolFlag{
				Name:    "compressed",
				Aliases: []string{"z"},
				Usage:   "the artifacts were stored with run --compress",
			},
		}, NewStoreFlags("diff")...),
		Action: DiffCommandAction,
		Meta:   meta,
	}).Build()
}
