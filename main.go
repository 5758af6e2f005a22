// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/command"
	"github.com/staranto/defunctgo/internal/config"
	mylog "github.com/staranto/defunctgo/internal/log"
	"github.com/staranto/defunctgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		var err error
		if args, err = mangleArguments(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	// Short-circuit --version/-v.
	for _, a := range ownArgs(args) {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// ownArgs is the part of args defunct interprets. Anything after "--"
// belongs to the command given to run.
func ownArgs(args []string) []string {
	if i := slices.Index(args, "--"); i >= 0 {
		return args[:i]
	}
	return args
}

// mangleArguments expands an @set into the flags stored under <cmd>.<set>
// in the config file. Without an @set, <cmd>.defaults is used when present.
func mangleArguments(args []string) ([]string, error) {
	own := ownArgs(args)
	if len(own) < 2 {
		return nil, fmt.Errorf("no command specified before %q", "--")
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range own {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help"), nil
		}
	}

	// See if there is a @set specified. If so, that becomes the insertion
	// point and the @set entry is removed from args.
	idx := 2
	set := ""
	for i, a := range own[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += i
			break
		}
	}

	rest := args[idx:]
	if set != "" {
		rest = args[idx+1:]
	}

	var (
		key     string
		setArgs []string
		err     error
	)
	if set == "" {
		// @defaults is implied and optional.
		key = args[1] + ".defaults"
		setArgs, err = config.GetStringSlice(key, []string{})
	} else {
		key = args[1] + "." + set
		setArgs, err = config.GetStringSlice(key)
	}
	if err != nil {
		return nil, fmt.Errorf("@%s: %s: %w", set, key, err)
	}

	out := make([]string, 0, len(args)+len(setArgs))
	out = append(out, args[:idx]...)
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	out = append(out, rest...)

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, out)
	return out, nil
}
