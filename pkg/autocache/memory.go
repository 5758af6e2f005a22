// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MemoryStore keeps artifacts in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key]
	if !ok {
		return nil, ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *MemoryStore) Create(_ context.Context, key string) (Artifact, error) {
	return &bufferedArtifact{commit: func(b []byte) error {
		s.Put(key, b)
		return nil
	}}, nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Put stores a copy of b at key.
func (s *MemoryStore) Put(key string, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = bytes.Clone(b)
}

// Get returns the bytes stored at key.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	return bytes.Clone(b), ok
}

// Keys returns the stored keys in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bufferedArtifact collects writes in memory and hands them to commit. It
// backs every store that persists a whole object in one call.
type bufferedArtifact struct {
	buf    bytes.Buffer
	commit func([]byte) error
	done   bool
}

func (a *bufferedArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, io.ErrClosedPipe
	}
	return a.buf.Write(p)
}

func (a *bufferedArtifact) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	return a.commit(a.buf.Bytes())
}

func (a *bufferedArtifact) Discard() error {
	a.done = true
	a.buf.Reset()
	return nil
}
