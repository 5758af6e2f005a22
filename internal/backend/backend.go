// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"

	awsx "github.com/staranto/defunctgo/internal/aws"
	"github.com/staranto/defunctgo/pkg/autocache"
)

// Type names an artifact store implementation.
type Type string

const (
	File   Type = "file"
	S3     Type = "s3"
	Redis  Type = "redis"
	Memory Type = "memory"
)

// Types lists the supported store types in display order.
var Types = []Type{File, S3, Redis, Memory}

var (
	ErrUnknownType = errors.New("unknown store type")
	ErrNoBucket    = errors.New("s3 store requires a bucket")
)

// ParseType accepts a store type name, case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (should be one of %v)", ErrUnknownType, s, Types)
}

// Spec describes the store a command should use. Only the fields of the
// selected Type matter.
type Spec struct {
	Type Type

	// file
	Dir    string
	Hashed bool

	// s3 and redis
	Prefix string

	// s3
	Bucket   string
	Region   string
	Profile  string
	Endpoint string

	// redis
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	TTL           time.Duration
}

// String renders spec as a location, e.g. "s3://bucket/prefix".
func (s Spec) String() string {
	switch s.Type {
	case S3:
		return strings.TrimSuffix(fmt.Sprintf("s3://%s/%s", s.Bucket, strings.Trim(s.Prefix, "/")), "/")
	case Redis:
		return fmt.Sprintf("redis://%s/%d/%s", s.RedisAddr, s.RedisDB, s.Prefix)
	case Memory:
		return "memory://"
	default:
		return "file://" + s.Dir
	}
}

// memoryStore is shared by every memory Spec in the process.
var memoryStore = autocache.NewMemoryStore()

// NewStore builds the store spec names. Building never touches the network;
// the first read or write does.
func NewStore(ctx context.Context, spec Spec) (autocache.Store, error) {
	log.Debugf("NewStore: %s", spec)

	switch spec.Type {
	case File, "":
		opts := []autocache.FileOption{autocache.WithDir(spec.Dir)}
		if spec.Hashed {
			opts = append(opts, autocache.WithHashedKeys())
		}
		return autocache.NewFileStore(opts...), nil

	case S3:
		if spec.Bucket == "" {
			return nil, ErrNoBucket
		}
		client, err := awsx.NewS3Client(ctx, awsx.Settings{
			Region:   spec.Region,
			Profile:  spec.Profile,
			Endpoint: spec.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return autocache.NewS3Store(client, spec.Bucket, spec.Prefix), nil

	case Redis:
		client := redis.NewClient(&redis.Options{
			Addr:     spec.RedisAddr,
			DB:       spec.RedisDB,
			Password: spec.RedisPassword,
		})
		return autocache.NewRedisStore(client, spec.Prefix, spec.TTL), nil

	case Memory:
		return memoryStore, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type)
}
