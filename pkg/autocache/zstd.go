// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

type zstdCodec[T any] struct {
	inner Codec[T]
	level zstd.EncoderLevel
}

// Zstd compresses the stream produced by inner. level is a zstd level
// (1-22); values <= 0 use the library default. It requires Binary modes.
func Zstd[T any](inner Codec[T], level int) Codec[T] {
	lvl := zstd.SpeedDefault
	if level > 0 {
		lvl = zstd.EncoderLevelFromZstd(level)
	}
	return zstdCodec[T]{inner: inner, level: lvl}
}

func (zstdCodec[T]) binaryOnly() {}

func (c zstdCodec[T]) Encode(v T, w io.Writer) error {
	if c.inner == nil {
		return ErrNotCallable
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(c.level))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if err := c.inner.Encode(v, enc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func (c zstdCodec[T]) Decode(r io.Reader) (T, error) {
	var zero T
	if c.inner == nil {
		return zero, ErrNotCallable
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return zero, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	return c.inner.Decode(dec)
}
