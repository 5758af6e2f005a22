// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen turns docs/commands/<cmd>.md into
//   - docs/man/share/man1/defunct-<cmd>.1 via md2man
//   - docs/tldr/defunct-<cmd>.md from the short description and quick examples
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "docgen",
		Usage: "generate man and tldr pages for defunct",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "repo root",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "only-if-changed",
				Usage: "only write files whose content changed",
				Value: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n, err := generate(cmd.String("root"), cmd.Bool("only-if-changed"))
			if err != nil {
				return err
			}
			log.Infof("wrote %d file(s)", n)
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Error("docgen failed")
		os.Exit(1)
	}
}

// generate renders every command page under root and returns how many files
// it wrote.
func generate(root string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(root, "docs", "commands")
	manOutDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(root, "docs", "tldr")

	for _, d := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", d, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var pages, written int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return written, err
		}
		page := ParsePage(name, raw)
		pages++

		outputs := map[string][]byte{
			filepath.Join(manOutDir, "defunct-"+name+".1"):   page.Man(),
			filepath.Join(tldrOutDir, "defunct-"+name+".md"): []byte(page.TLDR()),
		}
		for path, data := range outputs {
			changed, err := writeFileIfChanged(path, data, onlyIfChanged)
			if err != nil {
				return written, fmt.Errorf("writing %s: %w", path, err)
			}
			if changed {
				log.Debugf("wrote %s", path)
				written++
			}
		}
	}

	if pages == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return written, nil
}
