// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"context"
	"fmt"
)

// Deprecated logs a warning on every call to fn and then calls it. An empty
// name is derived from fn; reason may be empty.
func Deprecated[A, R any](fn func(context.Context, A) (R, error), name, reason string, opts ...Option) func(context.Context, A) (R, error) {
	o := newOptions(opts)
	msg := DeprecationMessage(nameOr(name, fn), reason)

	return func(ctx context.Context, args A) (R, error) {
		o.logger.Warn(msg)
		return fn(ctx, args)
	}
}

// DeprecationMessage formats the warning Deprecated emits.
func DeprecationMessage(name, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Call to deprecated function :: [%s]", name)
	}
	return fmt.Sprintf("Call to deprecated function :: [%s] (%s)", name, reason)
}
