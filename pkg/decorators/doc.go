// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package decorators wraps functions of the form
// func(context.Context, A) (R, error) with cross-cutting behavior: deprecation
// warnings, error prefixing, timing, running-average runtime and pre-call
// assertions. Every wrapper returns the same function shape, so they stack
// with each other and with autocache.
package decorators
