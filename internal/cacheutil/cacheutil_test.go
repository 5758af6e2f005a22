// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/defunctgo/internal/config"
)

func touch(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	when := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestDir(t *testing.T) {
	t.Setenv("DEFUNCT_CACHE_DIR", "/tmp/elsewhere")
	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/elsewhere", dir)

	t.Setenv("DEFUNCT_CACHE_DIR", "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	dir, ok = Dir()
	assert.True(t, ok)
	assert.Equal(t, "defunct", filepath.Base(dir))
}

func TestEnabled(t *testing.T) {
	t.Setenv("DEFUNCT_CFG", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}

	tests := map[string]bool{
		"":      true,
		"1":     true,
		"true":  true,
		"0":     false,
		"false": false,
		"FALSE": false,
	}
	for val, want := range tests {
		t.Run(val, func(t *testing.T) {
			t.Setenv("DEFUNCT_CACHE", val)
			assert.Equal(t, want, Enabled())
		})
	}
}

func TestEnabled_Config(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "defunct.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("cache:\n  enabled: false\n"), 0o600))
	t.Setenv("DEFUNCT_CFG", cfgFile)
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	t.Setenv("DEFUNCT_CACHE", "")
	assert.False(t, Enabled(), "config turns caching off")

	t.Setenv("DEFUNCT_CACHE", "1")
	assert.True(t, Enabled(), "env beats config")

	require.NoError(t, os.WriteFile(cfgFile, []byte("cache:\n  enabled: maybe\n"), 0o600))
	_, err = config.Load()
	require.NoError(t, err)
	t.Setenv("DEFUNCT_CACHE", "")
	assert.True(t, Enabled(), "a non-bool value is ignored")
}

func TestEnsureBaseDir(t *testing.T) {
	t.Setenv("DEFUNCT_CFG", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}
	base := filepath.Join(t.TempDir(), "nested", "cache")
	t.Setenv("DEFUNCT_CACHE_DIR", base)

	t.Setenv("DEFUNCT_CACHE", "0")
	_, ok, err := EnsureBaseDir()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoDirExists(t, base)

	t.Setenv("DEFUNCT_CACHE", "")
	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, got)
	assert.DirExists(t, base)
}

func TestList(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "b.txt"), 0)
	touch(t, filepath.Join(base, "a", "c.json"), 0)
	touch(t, filepath.Join(base, ".b.txt.1234.tmp"), 0)

	entries, err := List(base)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a/c.json", entries[0].Key)
	assert.Equal(t, "b.txt", entries[1].Key)
	assert.Equal(t, int64(1), entries[1].Size)
	assert.Equal(t, filepath.Join(base, "b.txt"), entries[1].Path)
}

func TestList_MissingBase(t *testing.T) {
	entries, err := List(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurge(t *testing.T) {
	base := t.TempDir()
	old := filepath.Join(base, "old.txt")
	fresh := filepath.Join(base, "sub", "fresh.txt")
	touch(t, old, 48*time.Hour)
	touch(t, fresh, time.Minute)

	n, err := Purge(base, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.FileExists(t, old)

	n, err = Purge(base, 24)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
}

func TestPurge_MissingBase(t *testing.T) {
	n, err := Purge(filepath.Join(t.TempDir(), "nope"), 1)
	assert.NoError(t, err)
	assert.Zero(t, n)
}
