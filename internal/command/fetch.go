// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/cacheutil"
	"github.com/staranto/defunctgo/internal/fetch"
	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/internal/output"
)

const defaultFetchTimeout = 30 * time.Second

// FetchCommandAction is the action handler for the "fetch" subcommand. It
// memoizes the body of an HTTP GET and prints it like show does.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("fetch takes exactly one URL, got %d", cmd.NArg())
	}

	headers, err := fetch.ParseHeaders(cmd.StringSlice("header"))
	if err != nil {
		return err
	}
	req := fetch.Request{
		URL:     cmd.Args().First(),
		Headers: headers,
		Token:   cmd.String("token"),
	}

	client := &http.Client{Timeout: cmd.Duration("timeout")}
	call := fetch.Hitter(client)
	if cacheutil.Enabled() {
		call, err = cached(ctx, cmd, call, req.Key())
		if err != nil {
			return err
		}
	} else {
		log.Debug("caching disabled by DEFUNCT_CACHE")
	}

	body, err := call(ctx, req)
	if err != nil {
		return err
	}

	return output.Emit(stdout(cmd), body, cmd.String("output"), cmd.String("query"))
}

// FetchCommandBuilder constructs the cli.Command definition for the "fetch"
// command.
func FetchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "fetch",
		Usage:     "GET a URL once and replay its cached body",
		UsageText: `defunct fetch [options] URL`,
		Flags: append([]cli.Flag{
			NewOutputFlag("fetch", "raw", output.Formats...),
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path to extract from a JSON body",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "request header, Name: value. May be repeated",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token sent in the Authorization header",
				Sources: cli.NewValueSourceChain(cli.EnvVar(envName("token"))),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "request timeout, 0 for none",
				Sources: sources("fetch", "timeout"),
				Value:   defaultFetchTimeout,
			},
			&cli.StringFlag{
				Name:    "cache-to",
				Aliases: []string{"k"},
				Usage:   "artifact key. Defaults to a hash of the URL and headers",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:    "overwrite",
				Aliases: []string{"f"},
				Usage:   "fetch even when an artifact exists and replace it",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"z"},
				Usage:   "store the artifact zstd compressed",
				Sources: sources("fetch", "compress"),
			},
			&cli.IntFlag{
				Name:    "level",
				Usage:   "zstd level, 0 for the default",
				Sources: sources("fetch", "level"),
			},
		}, NewStoreFlags("fetch")...),
		Action: FetchCommandAction,
		Meta:   meta,
	}).Build()
}
