// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Use selects what TimeIt does with a measurement.
type Use string

const (
	// Display writes start and end lines to the configured writer.
	Display Use = "display"
	// Log emits start and end lines at Info.
	Log Use = "log"
)

// ErrBadUse is returned for a Use other than Display or Log.
var ErrBadUse = errors.New("decorators: bad timeit use (should be display or log)")

// ParseUses splits a comma separated list such as "display,log".
func ParseUses(s string) ([]Use, error) {
	var uses []Use
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		u := Use(part)
		if u != Display && u != Log {
			return nil, fmt.Errorf("%w: %q", ErrBadUse, part)
		}
		uses = append(uses, u)
	}
	return uses, nil
}

const stampLayout = "01/02/06 - 15:04:05"

// TimeIt reports when fn starts and ends and how long it took, once per use.
// An empty name is derived from fn.
func TimeIt[A, R any](fn func(context.Context, A) (R, error), name string, uses []Use, opts ...Option) (func(context.Context, A) (R, error), error) {
	var display, logged bool
	for _, u := range uses {
		switch u {
		case Display:
			display = true
		case Log:
			logged = true
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadUse, u)
		}
	}

	o := newOptions(opts)
	name = nameOr(name, fn)
	speak := func(phrase string, elapsed time.Duration) {
		if display {
			fmt.Fprintln(o.out, phrase)
		}
		if logged {
			entry := o.logger.WithField("func", name)
			if elapsed >= 0 {
				entry = entry.WithDuration(elapsed)
			}
			entry.Info(phrase)
		}
	}

	return func(ctx context.Context, args A) (R, error) {
		before := time.Now()
		speak(fmt.Sprintf("%s started @ %s", name, before.Format(stampLayout)), -1)

		v, err := fn(ctx, args)

		after := time.Now()
		elapsed := after.Sub(before)
		speak(fmt.Sprintf("%s ended @ %s (%s)", name, after.Format(stampLayout), elapsed.Round(time.Millisecond)), elapsed)
		return v, err
	}, nil
}

// Timing is a result together with the time it took to produce.
type Timing[R any] struct {
	Value   R
	Elapsed time.Duration
}

// Timed returns fn's result together with its wall-clock duration. The
// duration is reported even when fn fails.
func Timed[A, R any](fn func(context.Context, A) (R, error)) func(context.Context, A) (Timing[R], error) {
	return func(ctx context.Context, args A) (Timing[R], error) {
		before := time.Now()
		v, err := fn(ctx, args)
		return Timing[R]{Value: v, Elapsed: time.Since(before)}, err
	}
}
