// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps artifacts as files. Keys are paths; relative keys are
// resolved under the base directory (the working directory by default).
type FileStore struct {
	dir    string
	hashed bool
	perm   os.FileMode
}

// FileOption customizes a FileStore.
type FileOption func(*FileStore)

// WithDir sets the base directory for relative keys.
func WithDir(dir string) FileOption {
	return func(s *FileStore) { s.dir = dir }
}

// WithHashedKeys stores every artifact directly under the base directory,
// named by the MD5 hex of its key.
func WithHashedKeys() FileOption {
	return func(s *FileStore) { s.hashed = true }
}

// WithPerm sets the file mode of committed artifacts. Default 0600.
func WithPerm(perm os.FileMode) FileOption {
	return func(s *FileStore) { s.perm = perm }
}

// NewFileStore returns a FileStore.
func NewFileStore(opts ...FileOption) *FileStore {
	s := &FileStore{perm: 0o600}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file that backs key.
func (s *FileStore) Path(key string) string {
	if s.hashed {
		return filepath.Join(s.dir, EncodeKey(key))
	}
	if filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(key))
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory: %w", f.Name(), ErrNotExist)
	}
	return f, nil
}

func (s *FileStore) Create(_ context.Context, key string) (Artifact, error) {
	p := s.Path(key)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// The temp file lives next to the target so the rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &fileArtifact{f: tmp, path: p, perm: s.perm}, nil
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type fileArtifact struct {
	f    *os.File
	path string
	perm os.FileMode
	done bool
}

func (a *fileArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, os.ErrClosed
	}
	return a.f.Write(p)
}

func (a *fileArtifact) Commit() error {
	if a.done {
		return nil
	}
	a.done = true

	tmp := a.f.Name()
	if err := a.f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, a.perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (a *fileArtifact) Discard() error {
	if a.done {
		return nil
	}
	a.done = true

	a.f.Close()
	if err := os.Remove(a.f.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// EncodeKey hashes k with MD5 and returns the hex string.
func EncodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
