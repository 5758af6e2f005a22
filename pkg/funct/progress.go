// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package funct

import (
	"fmt"
	"strings"
)

type progressOptions struct {
	width   int
	bar     string
	current []string
	empty   string
	percent bool
}

// ProgressOption customizes Progress.
type ProgressOption func(*progressOptions)

// WithWidth sets the bar width. Default 80.
func WithWidth(n int) ProgressOption {
	return func(o *progressOptions) { o.width = n }
}

// WithBar sets the mark for finished work. Default "#".
func WithBar(s string) ProgressOption {
	return func(o *progressOptions) { o.bar = s }
}

// WithCurrent sets the mark for the item in progress. Default "@".
func WithCurrent(s string) ProgressOption {
	return func(o *progressOptions) { o.current = []string{s} }
}

// WithSpinner rotates the current mark through frames, one per step.
func WithSpinner(frames ...string) ProgressOption {
	return func(o *progressOptions) {
		if len(frames) > 0 {
			o.current = frames
		}
	}
}

// WithEmpty sets the mark for remaining work. Default "=".
func WithEmpty(s string) ProgressOption {
	return func(o *progressOptions) { o.empty = s }
}

// WithPercent toggles the "(12.50%)" suffix. Default on.
func WithPercent(b bool) ProgressOption {
	return func(o *progressOptions) { o.percent = b }
}

// Progress renders a progress bar for step curr (zero based) of tot, e.g.
//
//	[#######@========...](10.00%)
//
// A tot of zero or less renders a finished bar.
func Progress(curr, tot int, opts ...ProgressOption) string {
	o := progressOptions{
		width:   80,
		bar:     "#",
		current: []string{"@"},
		empty:   "=",
		percent: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	prog := 1.0
	if tot > 0 {
		prog = float64(curr+1) / float64(tot)
	}
	nbars := int(float64(o.width)*prog) - 1
	rest := o.width - nbars - 1

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat(o.bar, max(nbars, 0)))
	if rest > 0 {
		b.WriteString(o.current[mod(curr, len(o.current))])
	}
	b.WriteString(strings.Repeat(o.empty, max(rest, 0)))
	b.WriteString("]")
	if o.percent {
		fmt.Fprintf(&b, "(%0.2f%%)", prog*100)
	}
	return b.String()
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
