// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

const moreInfo = "https://github.com/staranto/defunctgo"

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe = regexp.MustCompile(`(?mi)^#{2,}\s+(.+?)\s*$`)
)

// Example is one tldr entry.
type Example struct {
	Desc string
	Cmd  string
}

// Page is what a docs/commands/<cmd>.md file says about one command.
type Page struct {
	Cmd      string
	Title    string
	Short    string
	Examples []Example
	Raw      []byte
}

// ParsePage reads the title, the "Short description" paragraph and the
// first code block under "Quick examples".
func ParsePage(cmd string, md []byte) Page {
	p := Page{Cmd: cmd, Raw: md}
	s := string(md)

	if m := h1Re.FindStringSubmatch(s); m != nil {
		p.Title = strings.TrimSpace(m[1])
	}

	p.Short = strings.Join(strings.Fields(firstParagraph(section(s, "short description"))), " ")
	if p.Short == "" && p.Title != "" {
		p.Short = p.Title + "."
	}

	p.Examples = parseExamples(firstFence(section(s, "quick examples")))
	return p
}

// section returns the body below the named H2+ heading, up to the next one.
func section(md, name string) string {
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		if !strings.EqualFold(md[loc[2]:loc[3]], name) {
			continue
		}
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return md[loc[1]:end]
	}
	return ""
}

func firstParagraph(body string) string {
	var lines []string
	for _, ln := range strings.Split(body, "\n") {
		if strings.TrimSpace(ln) == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, ln)
	}
	return strings.Join(lines, " ")
}

func firstFence(body string) string {
	const fence = "```"
	start := strings.Index(body, fence)
	if start < 0 {
		return ""
	}
	rest := body[start+len(fence):]
	// Drop the info string, e.g. ```sh.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// parseExamples pairs each "# description" line with the command after it.
func parseExamples(code string) []Example {
	var exs []Example
	var desc string
	for _, ln := range strings.Split(code, "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, Example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

// Man renders the whole page as roff.
func (p Page) Man() []byte {
	return md2man.Render(p.Raw)
}

// TLDR renders the page in tldr-pages format.
func (p Page) TLDR() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# defunct-%s\n\n", p.Cmd)
	switch {
	case p.Short != "":
		fmt.Fprintf(&b, "> %s\n", p.Short)
	default:
		fmt.Fprintf(&b, "> defunct %s\n", p.Cmd)
	}
	fmt.Fprintf(&b, "> More information: %s.\n\n", moreInfo)

	exs := p.Examples
	if len(exs) == 0 {
		exs = []Example{{Desc: "Show help for the command", Cmd: "defunct " + p.Cmd + " --help"}}
	}
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s:\n\n`%s`\n", ex.Desc, ex.Cmd)
	}
	return b.String()
}

// writeFileIfChanged leaves path alone when its content already matches,
// ignoring surrounding whitespace.
func writeFileIfChanged(path string, data []byte, onlyIfChanged bool) (bool, error) {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		switch {
		case err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)):
			return false, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return false, err
		}
	}
	return true, os.WriteFile(path, data, 0o644)
}
