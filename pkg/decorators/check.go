// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"context"
	"errors"
	"fmt"
)

// ErrAssertion matches every error CheckThat returns.
var ErrAssertion = errors.New("assertion failed")

// AssertionError is returned when a CheckThat assertion does not hold.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}

// CheckThat validates the arguments with assertion before calling fn. When
// the assertion is false fn is not called and an *AssertionError carrying
// onfail (or "[name]: assertion failed") is returned. A nil assertion always
// holds.
func CheckThat[A, R any](fn func(context.Context, A) (R, error), name string, assertion func(A) bool, onfail string) func(context.Context, A) (R, error) {
	msg := onfail
	if msg == "" {
		msg = fmt.Sprintf("[%s]: %s", nameOr(name, fn), ErrAssertion)
	}

	return func(ctx context.Context, args A) (R, error) {
		if assertion != nil && !assertion(args) {
			var zero R
			return zero, &AssertionError{Msg: msg}
		}
		return fn(ctx, args)
	}
}
