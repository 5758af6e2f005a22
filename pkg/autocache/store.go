// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"context"
	"io"
)

// Store is where artifacts live. Open returns an error matching ErrNotExist
// when nothing is stored at key.
type Store interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Create(ctx context.Context, key string) (Artifact, error)
}

// Artifact is a pending write. Nothing is visible at the key until Commit
// succeeds; Discard abandons the write and leaves any previous artifact in
// place. Calling either after the other is a no-op.
type Artifact interface {
	io.Writer
	Commit() error
	Discard() error
}

// Remover is implemented by stores that can delete an artifact. Removing a
// missing key is not an error.
type Remover interface {
	Remove(ctx context.Context, key string) error
}
