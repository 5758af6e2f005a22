// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/pkg/autocache"
	"github.com/staranto/defunctgo/pkg/decorators"
)

// RunKey is the artifact key used when run is given no --cache-to. It
// depends only on the argv.
func RunKey(argv []string) string {
	return "run-" + autocache.EncodeKey(strings.Join(argv, "\x00")) + ".out"
}

// execArgv returns a computation that runs argv and yields its stdout.
// stderr is passed through so progress output stays visible.
func execArgv(errw io.Writer) autocache.Func[[]string, []byte] {
	return func(ctx context.Context, argv []string) ([]byte, error) {
		c := exec.CommandContext(ctx, argv[0], argv[1:]...)
		c.Stdin = os.Stdin
		c.Stderr = errw
		return c.Output()
	}
}

// RunCommandAction is the action handler for the "run" subcommand. It
// memoizes the stdout of the given command in the selected store.
func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
	argv := cmd.Args().Slice()

	fn, err := decorators.WatchFor(execArgv(stderr(cmd)), "exec", exec.ErrNotFound)
	if err != nil {
		return err
	}

	if cmd.Bool("time") {
		uses, err := decorators.ParseUses(cmd.String("time-use"))
		if err != nil {
			return err
		}
		fn, err = decorators.TimeIt(fn, strings.Join(argv, " "), uses, decorators.WithWriter(stderr(cmd)))
		if err != nil {
			return err
		}
	}

	call := fn
	if cacheutil.Enabled() {
		call, err = cached(ctx, cmd, fn, RunKey(argv))
		if err != nil {
			return err
		}
	} else {
		log.Debug("caching disabled by DEFUNCT_CACHE")
	}

	checked := decorators.CheckThat(call, "run", func(argv []string) bool {
		return len(argv) > 0 && argv[0] != ""
	}, "run needs a command to execute, e.g. defunct run -- date")

	out, err := checked(ctx, argv)
	if len(out) > 0 {
		if _, werr := stdout(cmd).Write(out); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// cached wraps fn with an autocache wrapper over the selected store. The
// artifact lands at --cache-to, or at defaultKey when that is not given.
func cached[A any](ctx context.Context, cmd *cli.Command, fn autocache.Func[A, []byte], defaultKey string) (autocache.Func[A, []byte], error) {
	store, spec, err := OpenStore(ctx, cmd)
	if err != nil {
		return nil, err
	}

	codec := autocache.Raw()
	if cmd.Bool("compress") {
		codec = autocache.Zstd(codec, cmd.Int("level"))
	}

	w, err := autocache.New(fn, codec,
		autocache.WithStore(store),
		autocache.WithModes(autocache.Binary),
		autocache.WithLogger(log.Log),
	)
	if err != nil {
		return nil, err
	}

	key := cmd.String("cache-to")
	if key == "" {
		key = defaultKey
	}
	log.Debugf("%s: store=%s key=%s", cmd.Name, spec, key)

	if cmd.Bool("overwrite") {
		return func(ctx context.Context, args A) ([]byte, error) {
			return w.Refresh(ctx, args, key)
		}, nil
	}
	return func(ctx context.Context, args A) ([]byte, error) {
		return w.Call(ctx, args, key)
	}, nil
}

// RunCommandBuilder constructs the cli.Command definition for the "run"
// command.
func RunCommandBuilder(meta meta.Meta) *cli.Command {
	first := 1
	return (&CommandBuilder{
		Name:      "run",
		Usage:     "run a command once and replay its cached stdout",
		UsageText: `defunct run [options] [--] COMMAND [ARGS...]`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "cache-to",
				Aliases: []string{"k"},
				Usage:   "artifact key. Defaults to a hash of the command line",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:    "overwrite",
				Aliases: []string{"f"},
				Usage:   "run the command even when an artifact exists and replace it",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"z"},
				Usage:   "store the artifact zstd compressed",
				Sources: sources("run", "compress"),
			},
			&cli.IntFlag{
				Name:    "level",
				Usage:   "zstd level, 0 for the default",
				Sources: sources("run", "level"),
			},
			&cli.BoolFlag{
				Name:    "time",
				Aliases: []string{"T"},
				Usage:   "report when the command starts and ends",
			},
			&cli.StringFlag{
				Name:    "time-use",
				Usage:   "where --time reports: display, log or both (comma separated)",
				Sources: sources("run", "time-use"),
				Value:   string(decorators.Display),
				Validator: func(value string) error {
					return FlagValidators(value, TimeUseValidator)
				},
			},
		}, NewStoreFlags("run")...),
		Action:       RunCommandAction,
		Meta:         meta,
		StopOnNthArg: &first,
	}).Build()
}
