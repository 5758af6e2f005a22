// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"context"
	"errors"
	"fmt"
)

// ErrBadSignal is returned by WatchFor when a target is nil.
var ErrBadSignal = errors.New("decorators: bad signal (nil error)")

// WatchedError is an error that a watched function returned, tagged with the
// function's name.
type WatchedError struct {
	Func string
	Err  error
}

func (e *WatchedError) Error() string {
	return fmt.Sprintf("(- %s -): %v", e.Func, e.Err)
}

func (e *WatchedError) Unwrap() error {
	return e.Err
}

// WatchFor returns fn wrapped so that errors matching one of targets (per
// errors.Is) come back as *WatchedError naming the function. Other errors
// pass through untouched. An empty name is derived from fn.
func WatchFor[A, R any](fn func(context.Context, A) (R, error), name string, targets ...error) (func(context.Context, A) (R, error), error) {
	for i, target := range targets {
		if target == nil {
			return nil, fmt.Errorf("%w: targets[%d]", ErrBadSignal, i)
		}
	}
	name = nameOr(name, fn)

	return func(ctx context.Context, args A) (R, error) {
		v, err := fn(ctx, args)
		if err == nil {
			return v, nil
		}
		for _, target := range targets {
			if errors.Is(err, target) {
				return v, &WatchedError{Func: name, Err: err}
			}
		}
		return v, err
	}, nil
}
