// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/backend"
	"github.com/staranto/defunctgo/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// envName maps a flag name to its DEFUNCT_ environment variable.
func envName(name string) string {
	return "DEFUNCT_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// sources is the value chain shared by every configurable flag: the
// DEFUNCT_ env var, then ns.name and name in the config file.
func sources(ns, name string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(cli.EnvVar(envName(name)))
	return withConfigFile(ns, name, chain)
}

// withConfigFile adds namespaced and global config file sources to chain.
func withConfigFile(ns, name string, chain cli.ValueSourceChain) cli.ValueSourceChain {
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(cfg.Source)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(cfg.Source)))
	return chain
}

// configKey reads key verbatim from the config file.
func configKey(key string) cli.ValueSource {
	return yaml.YAML(key, altsrc.StringSourcer(cfg.Source))
}

// NewStoreFlags returns the flags that select and configure an artifact store.
func NewStoreFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Usage:   fmt.Sprintf("artifact store, one of %v", backend.Types),
			Sources: sources(ns, "store"),
			Value:   string(backend.File),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, StoreValidator)
			},
		},
		&cli.StringFlag{
			Name:      "dir",
			Aliases:   []string{"d"},
			Usage:     "base directory of the file store. Defaults to the cache dir",
			Sources:   sources(ns, "dir"),
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    "hashed",
			Usage:   "name file store artifacts by the MD5 of their key",
			Sources: sources(ns, "hashed"),
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "S3 bucket of the s3 store",
			Sources: sources(ns, "bucket"),
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "key prefix of the s3 and redis stores",
			Sources: sources(ns, "prefix"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region of the s3 store",
			Sources: withConfigFile(ns, "region", cli.NewValueSourceChain(cli.EnvVar("DEFUNCT_REGION"), cli.EnvVar("AWS_REGION"))),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile of the s3 store",
			Sources: withConfigFile(ns, "profile", cli.NewValueSourceChain(cli.EnvVar("DEFUNCT_PROFILE"), cli.EnvVar("AWS_PROFILE"))),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 compatible endpoint URL, e.g. MinIO",
			Sources: sources(ns, "endpoint"),
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "host:port of the redis store",
			Sources: sources(ns, "redis-addr"),
			Value:   "localhost:6379",
		},
		&cli.IntFlag{
			Name:    "redis-db",
			Usage:   "database number of the redis store",
			Sources: sources(ns, "redis-db"),
		},
		&cli.StringFlag{
			Name:    "redis-password",
			Usage:   "password of the redis store",
			Sources: cli.NewValueSourceChain(cli.EnvVar(envName("redis-password"))),
		},
		&cli.DurationFlag{
			Name:    "ttl",
			Usage:   "expiry of redis artifacts, 0 for none",
			Sources: sources(ns, "ttl"),
			Validator: func(d time.Duration) error {
				if d < 0 {
					return fmt.Errorf("ttl must not be negative")
				}
				return nil
			},
		},
	}
}

// NewOutputFlag constructs the --output flag for the given formats.
func NewOutputFlag(ns string, value string, formats ...string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   fmt.Sprintf("output format, one of %v", formats),
		Sources: sources(ns, "output"),
		Value:   value,
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator(formats...))
		},
	}
}

// NewDisplayFlags are the flags of commands that print tables.
func NewDisplayFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns, key[:title[:transform]], for text output",
			Sources: withConfigFile(ns, "attrs", cli.NewValueSourceChain()),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output. Defaults to on for terminals",
			Sources: withConfigFile(ns, "color", cli.NewValueSourceChain()),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: withConfigFile(ns, "sort", cli.NewValueSourceChain()),
			Value:   "key",
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: withConfigFile(ns, "titles", cli.NewValueSourceChain()),
		},
	}
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
