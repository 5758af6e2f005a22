// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/attrs"
	"github.com/staranto/defunctgo/internal/backend"
	mylog "github.com/staranto/defunctgo/internal/log"
	"github.com/staranto/defunctgo/internal/meta"
	"github.com/staranto/defunctgo/pkg/autocache"
	"github.com/staranto/defunctgo/pkg/decorators"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr defunct <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "defunct", subcmd)
			c.Stdout = stdout(cmd)
			c.Stderr = stderr(cmd)
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	return al, al.SetGlobalTransformSpec()
}

// CommandBuilder constructs a cli.Command for a subcommand using a
// consistent pattern: metadata, the tldr flag, sorted flags and the global
// validator are wired automatically.
type CommandBuilder struct {
	Name      string
	Aliases   []string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// StopOnNthArg stops flag parsing after that many positional args.
	StopOnNthArg *int
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	name := cb.Name
	action := cb.Action
	return &cli.Command{
		Name:      cb.Name,
		Aliases:   cb.Aliases,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:        append(cb.Flags, tldrFlag),
		StopOnNthArg: cb.StopOnNthArg,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			m := GetMeta(c)
			if len(m.Args) > 1 {
				log.Debugf("Executing action for %v", m.Args[1:])
			}
			if ShortCircuitTLDR(ctx, c, name) {
				return nil
			}
			return action(ctx, c)
		},
	}
}

// StoreSpec collects the store flags into a backend.Spec. The file store
// defaults to the cache dir.
func StoreSpec(cmd *cli.Command) (backend.Spec, error) {
	typ, err := backend.ParseType(cmd.String("store"))
	if err != nil {
		return backend.Spec{}, err
	}

	dir := cmd.String("dir")
	if dir == "" {
		dir = GetMeta(cmd).CacheDir
	}

	return backend.Spec{
		Type:          typ,
		Dir:           dir,
		Hashed:        cmd.Bool("hashed"),
		Prefix:        cmd.String("prefix"),
		Bucket:        cmd.String("bucket"),
		Region:        cmd.String("region"),
		Profile:       cmd.String("profile"),
		Endpoint:      cmd.String("endpoint"),
		RedisAddr:     cmd.String("redis-addr"),
		RedisDB:       cmd.Int("redis-db"),
		RedisPassword: cmd.String("redis-password"),
		TTL:           cmd.Duration("ttl"),
	}, nil
}

// OpenStore builds the store selected by the command's store flags.
func OpenStore(ctx context.Context, cmd *cli.Command) (autocache.Store, backend.Spec, error) {
	spec, err := StoreSpec(cmd)
	if err != nil {
		return nil, spec, err
	}
	store, err := backend.NewStore(ctx, spec)
	if err != nil {
		return nil, spec, err
	}
	return store, spec, nil
}

// ReadArtifact returns the bytes stored at key, decompressing them when
// compressed is set.
func ReadArtifact(ctx context.Context, store autocache.Store, key string, compressed bool) ([]byte, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, autocache.ErrNotExist) {
			return nil, fmt.Errorf("no artifact at %s: %w", key, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer rc.Close()

	codec := autocache.Raw()
	if compressed {
		codec = autocache.Zstd(codec, 0)
	}
	data, err := codec.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// deprecatedAction wraps action so every invocation warns on stderr first,
// whatever DEFUNCT_LOG says.
func deprecatedAction(action cli.ActionFunc, name, reason string) cli.ActionFunc {
	run := func(ctx context.Context, cmd *cli.Command) (struct{}, error) {
		return struct{}{}, action(ctx, cmd)
	}

	return func(ctx context.Context, cmd *cli.Command) error {
		logger := &log.Logger{
			Handler: &mylog.CustomHandler{Writer: stderr(cmd)},
			Level:   log.WarnLevel,
		}
		_, err := decorators.Deprecated(run, name, reason, decorators.WithLogger(logger))(ctx, cmd)
		return err
	}
}
