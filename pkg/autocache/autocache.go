// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
)

// DefaultKey is used when a call names no cache location.
const DefaultKey = "cached.txt"

// Func is the computation being memoized.
type Func[A, R any] func(ctx context.Context, args A) (R, error)

// Cached is a memoized Func. cacheTo names the artifact location.
type Cached[A, R any] func(ctx context.Context, args A, cacheTo string) (R, error)

type options struct {
	store     Store
	readMode  Mode
	writeMode Mode
	verbose   bool
	logger    log.Interface
}

// Option customizes a Wrapper.
type Option func(*options)

// WithStore sets where artifacts are kept. Default is a FileStore rooted at
// the working directory.
func WithStore(s Store) Option {
	return func(o *options) { o.store = s }
}

// WithReadMode sets how existing artifacts are read. Default Text.
func WithReadMode(m Mode) Option {
	return func(o *options) { o.readMode = m }
}

// WithWriteMode sets how new artifacts are written. Default Text.
func WithWriteMode(m Mode) Option {
	return func(o *options) { o.writeMode = m }
}

// WithModes sets both the read and the write mode.
func WithModes(m Mode) Option {
	return func(o *options) {
		o.readMode = m
		o.writeMode = m
	}
}

// WithVerbose toggles the Info messages logged on hits and writes. Default
// true.
func WithVerbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// WithLogger sets the logger. Default is the apex/log package logger.
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// Wrapper memoizes fn into a Store.
type Wrapper[A, R any] struct {
	fn    Func[A, R]
	codec Codec[R]
	opts  options
}

// New wraps fn. codec reads and writes the artifacts.
func New[A, R any](fn Func[A, R], codec Codec[R], opts ...Option) (*Wrapper[A, R], error) {
	o := options{
		readMode:  Text,
		writeMode: Text,
		verbose:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if fn == nil || codec == nil {
		return nil, ErrNotCallable
	}
	if !o.readMode.valid() || !o.writeMode.valid() {
		return nil, ErrBadMode
	}
	if _, ok := any(codec).(binaryOnly); ok && (o.readMode != Binary || o.writeMode != Binary) {
		return nil, ErrModeMismatch
	}
	if o.store == nil {
		o.store = NewFileStore()
	}
	if o.logger == nil {
		o.logger = log.Log
	}

	return &Wrapper[A, R]{fn: fn, codec: codec, opts: o}, nil
}

// Wrap is New returning the bare memoized function.
func Wrap[A, R any](fn Func[A, R], codec Codec[R], opts ...Option) (Cached[A, R], error) {
	w, err := New(fn, codec, opts...)
	if err != nil {
		return nil, err
	}
	return w.Call, nil
}

// NewText wraps a function producing lines of text with the Lines codec.
func NewText[A any](fn Func[A, []string], opts ...Option) (*Wrapper[A, []string], error) {
	return New(fn, Lines(), opts...)
}

// Store returns the store the wrapper reads and writes.
func (w *Wrapper[A, R]) Store() Store {
	return w.opts.store
}

// Call returns the artifact stored at cacheTo when there is a decodable one.
// Otherwise it runs the function with args and persists the result at
// cacheTo. An error from the function is returned as is and nothing is
// written. When persisting fails the computed value is returned together
// with the error.
func (w *Wrapper[A, R]) Call(ctx context.Context, args A, cacheTo string) (R, error) {
	key := keyOrDefault(cacheTo)
	if v, ok := w.load(ctx, key); ok {
		return v, nil
	}
	return w.compute(ctx, args, key)
}

// Refresh runs the function and overwrites the artifact at cacheTo without
// looking at what is stored there.
func (w *Wrapper[A, R]) Refresh(ctx context.Context, args A, cacheTo string) (R, error) {
	return w.compute(ctx, args, keyOrDefault(cacheTo))
}

func (w *Wrapper[A, R]) load(ctx context.Context, key string) (v R, ok bool) {
	logger := w.opts.logger.WithField("key", key)

	rc, err := w.opts.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			logger.Debug("cache miss")
		} else {
			logger.WithError(err).Warn("cache unreadable, recomputing")
		}
		return v, false
	}
	defer rc.Close()

	r, err := w.opts.readMode.reader(rc)
	if err != nil {
		logger.WithError(err).Warn("cache undecodable, recomputing")
		return v, false
	}

	v, err = w.codec.Decode(r)
	if err != nil {
		logger.WithError(err).Warn("cache undecodable, recomputing")
		var zero R
		return zero, false
	}

	if w.opts.verbose {
		logger.Infof("%s is cached!", key)
	}
	return v, true
}

func (w *Wrapper[A, R]) compute(ctx context.Context, args A, key string) (R, error) {
	v, err := w.fn(ctx, args)
	if err != nil {
		var zero R
		return zero, err
	}

	if err := w.persist(ctx, key, v); err != nil {
		return v, err
	}

	if w.opts.verbose {
		w.opts.logger.WithField("key", key).Infof("cached content to %s", key)
	}
	return v, nil
}

func (w *Wrapper[A, R]) persist(ctx context.Context, key string, v R) error {
	a, err := w.opts.store.Create(ctx, key)
	if err != nil {
		return fmt.Errorf("autocache: create %s: %w", key, err)
	}

	mw, flush := w.opts.writeMode.writer(a)
	err = w.codec.Encode(v, mw)
	if err == nil {
		err = flush()
	}
	if err != nil {
		if derr := a.Discard(); derr != nil {
			w.opts.logger.WithError(derr).Warnf("failed to discard %s", key)
		}
		return err
	}

	if err := a.Commit(); err != nil {
		return fmt.Errorf("autocache: commit %s: %w", key, err)
	}
	return nil
}

func keyOrDefault(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}
