// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/defunctgo/internal/config"
)

// Entry represents a cached artifact on disk.
// Key is the path relative to the cache dir, always with forward slashes.
type Entry struct {
	Key     string
	Path    string
	Size    int64
	ModTime time.Time
}

// Dir resolves the base cache directory.
// Precedence:
//  1. DEFUNCT_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/defunct
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("DEFUNCT_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "defunct"), true
	}
	return "", false
}

// Enabled reports whether caching is on. A non-empty DEFUNCT_CACHE decides
// ("0"/"false" turn it off); otherwise cache.enabled from the config file
// does, defaulting to on.
func Enabled() bool {
	enabled, _ := os.LookupEnv("DEFUNCT_CACHE")
	enabled = strings.ToLower(strings.TrimSpace(enabled))
	if enabled != "" {
		return enabled != "0" && enabled != "false"
	}

	on, err := config.GetBool("cache.enabled", true)
	if err != nil {
		log.WithError(err).Warn("ignoring cache.enabled")
		return true
	}
	return on
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// isTemp reports whether name is an in-flight artifact left by a writer.
func isTemp(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}

// List returns the artifacts under base sorted by key. In-flight temp files
// are skipped. A missing base is an empty cache.
func List(base string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == base {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || isTemp(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil // removed while walking
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Key:     filepath.ToSlash(rel),
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Purge removes files under base older than the provided number of hours and
// returns how many were removed. If hours <= 0 it is a no-op.
func Purge(base string, hours int) (int, error) {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}

	entries, err := List(base)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	for _, e := range entries {
		if time.Since(e.ModTime) <= maxAge {
			continue
		}
		if err := os.Remove(e.Path); err == nil {
			removed++
			log.Debugf("removed cache file %s", e.Path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", e.Path)
		}
	}
	return removed, nil
}
