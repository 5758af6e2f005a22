// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAPI is the subset of *redis.Client used by RedisStore.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ RedisAPI = (*redis.Client)(nil)

// RedisStore keeps artifacts as string values. A zero ttl stores them
// without expiry.
type RedisStore struct {
	client RedisAPI
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore. Keys are stored as prefix+key.
func NewRedisStore(client RedisAPI, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", s.prefix+key, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to get redis key: %w", err)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *RedisStore) Create(ctx context.Context, key string) (Artifact, error) {
	return &bufferedArtifact{commit: func(b []byte) error {
		if err := s.client.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set redis key: %w", err)
		}
		return nil
	}}, nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete redis key: %w", err)
	}
	return nil
}
