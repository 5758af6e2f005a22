// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist reports that no artifact is stored at a key. It is
	// fs.ErrNotExist so os errors from the file store match it directly.
	ErrNotExist = fs.ErrNotExist

	// ErrNotCallable is returned when the wrapped function or the codec is nil.
	ErrNotCallable = errors.New("autocache: bad function or codec (nil)")

	// ErrBadMode is returned for a read/write mode other than Text or Binary.
	ErrBadMode = errors.New("autocache: bad read/write mode (should be text or binary)")

	// ErrModeMismatch is returned when a binary-only codec is configured with
	// a Text mode.
	ErrModeMismatch = errors.New("autocache: codec requires binary read/write modes")

	// ErrNotText is returned in Text mode when the bytes read or written are
	// not valid UTF-8.
	ErrNotText = errors.New("autocache: artifact is not valid text")

	// ErrTrailingData is returned when an artifact holds more than the one
	// document a codec expects.
	ErrTrailingData = errors.New("autocache: trailing data after document")
)
