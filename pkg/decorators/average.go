// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"context"
	"sync"
	"time"
)

// AverageRuntime keeps the running mean of fn's wall-clock duration.
type AverageRuntime[A, R any] struct {
	fn  func(context.Context, A) (R, error)
	now func() time.Time

	mu    sync.Mutex
	calls int64
	mean  time.Duration
}

// NewAverageRuntime wraps fn.
func NewAverageRuntime[A, R any](fn func(context.Context, A) (R, error)) *AverageRuntime[A, R] {
	return &AverageRuntime[A, R]{fn: fn, now: time.Now}
}

// Call runs fn and returns its result and the mean runtime including this
// call. Failed calls are measured too.
func (a *AverageRuntime[A, R]) Call(ctx context.Context, args A) (R, time.Duration, error) {
	begin := a.now()
	v, err := a.fn(ctx, args)
	elapsed := a.now().Sub(begin)
	return v, a.observe(elapsed), err
}

// Average returns the current mean runtime.
func (a *AverageRuntime[A, R]) Average() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mean
}

// Calls returns the number of calls measured since the last Reset.
func (a *AverageRuntime[A, R]) Calls() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Reset zeroes the count and the mean.
func (a *AverageRuntime[A, R]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = 0
	a.mean = 0
}

func (a *AverageRuntime[A, R]) observe(d time.Duration) time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.mean += (d - a.mean) / time.Duration(a.calls)
	return a.mean
}
