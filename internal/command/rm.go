// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/pkg/autocache"
	"github.com/staranto/defunctgo/pkg/funct"
)

// RmCommandAction removes artifacts from the selected store. All keys are
// attempted; the errors are joined.
func RmCommandAction(ctx context.Context, cmd *cli.Command) error {
	keys := cmd.Args().Slice()
	if len(keys) == 0 {
		return errors.New("rm needs at least one KEY")
	}

	store, spec, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}
	remover, ok := store.(autocache.Remover)
	if !ok {
		return fmt.Errorf("store %s does not support removal", spec)
	}

	progress := len(keys) > 1 && term.IsTerminal(int(os.Stderr.Fd()))

	var errs []error
	for i, key := range keys {
		if progress {
			fmt.Fprintf(stderr(cmd), "\r%s", funct.Progress(i, len(keys), funct.WithWidth(40)))
		}
		if err := remover.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		log.Debugf("removed %s from %s", key, spec)
	}
	if progress {
		fmt.Fprintln(stderr(cmd))
	}
	return errors.Join(errs...)
}

// RmCommandBuilder constructs the cli.Command definition for the "rm"
// command.
func RmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "rm",
		Usage:     "remove artifacts",
		UsageText: `defunct rm [options] KEY...`,
		Flags:     NewStoreFlags("rm"),
		Action:    RmCommandAction,
		Meta:      meta,
	}).Build()
}
