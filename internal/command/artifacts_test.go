// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	dir := isolate(t)
	writeArtifact(t, dir, "doc.json", `{"name":"widget","tags":["a","b"]}`)

	t.Run("raw", func(t *testing.T) {
		out, _, err := runApp(t, "show", "doc.json")
		require.NoError(t, err)
		assert.Equal(t, `{"name":"widget","tags":["a","b"]}`, out)
	})

	t.Run("query scalar", func(t *testing.T) {
		out, _, err := runApp(t, "show", "-q", "name", "doc.json")
		require.NoError(t, err)
		assert.Equal(t, "widget\n", out)
	})

	t.Run("query yaml", func(t *testing.T) {
		out, _, err := runApp(t, "show", "-q", "tags", "-o", "yaml", "doc.json")
		require.NoError(t, err)
		assert.Equal(t, "- a\n- b\n", out)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := runApp(t, "show", "nope.json")
		assert.ErrorContains(t, err, "no artifact at nope.json")
	})

	t.Run("bad output", func(t *testing.T) {
		_, _, err := runApp(t, "show", "-o", "xml", "doc.json")
		assert.Error(t, err)
	})

	t.Run("key count", func(t *testing.T) {
		_, _, err := runApp(t, "show")
		assert.ErrorContains(t, err, "exactly one KEY")
	})
}

func TestLs(t *testing.T) {
	dir := isolate(t)
	writeArtifact(t, dir, "b.txt", "hello")
	writeArtifact(t, dir, "a.txt", "abc")
	writeArtifact(t, dir, ".a.txt.123.tmp", "partial")

	t.Run("json", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "-o", "json")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "a.txt", rows[0]["key"])
		assert.EqualValues(t, 3, rows[0]["size"])
		assert.Equal(t, "b.txt", rows[1]["key"])
	})

	t.Run("sort descending", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "-o", "json", "--sort=-size")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "b.txt", rows[0]["key"])
	})

	t.Run("filter", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "-o", "json", "-f", "key^b")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "b.txt", rows[0]["key"])
	})

	t.Run("filter nothing", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "-o", "json", "-f", "key=zzz")
		require.NoError(t, err)
		assert.Equal(t, "[]\n", out)
	})

	t.Run("text", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "a.txt")
		assert.Contains(t, out, "3 B")
		assert.Regexp(t, `now|seconds? ago`, out)
		assert.NotContains(t, out, ".tmp")
	})

	t.Run("attrs", func(t *testing.T) {
		out, _, err := runApp(t, "ls", "--no-color", "-a", "key:name:u,!size")
		require.NoError(t, err)
		assert.Contains(t, out, "A.TXT")
		assert.NotContains(t, out, "3 B")
	})

	t.Run("bad attrs", func(t *testing.T) {
		_, _, err := runApp(t, "ls", "-a", "a:b:c:d")
		assert.ErrorContains(t, err, "--attrs")
	})

	t.Run("other dir", func(t *testing.T) {
		other := t.TempDir()
		writeArtifact(t, other, "x/y.txt", "1")

		out, _, err := runApp(t, "ls", "-d", other, "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "key: x/y.txt")
	})
}

func TestRm(t *testing.T) {
	dir := isolate(t)
	a := writeArtifact(t, dir, "a.txt", "a")
	b := writeArtifact(t, dir, "b.txt", "b")
	c := writeArtifact(t, dir, "c.txt", "c")

	_, _, err := runApp(t, "rm", "a.txt", "b.txt", "never.txt")
	require.NoError(t, err)
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
	assert.FileExists(t, c)

	_, _, err = runApp(t, "rm")
	assert.ErrorContains(t, err, "at least one KEY")
}

func TestDiff(t *testing.T) {
	dir := isolate(t)
	writeArtifact(t, dir, "left.json", `{"a":1,"b":"same"}`)
	writeArtifact(t, dir, "right.json", `{"a":2,"b":"same"}`)
	writeArtifact(t, dir, "list.json", `[1,2]`)

	out, _, err := runApp(t, "diff", "--no-color", "left.json", "right.json")
	require.NoError(t, err)
	assert.Contains(t, out, `-  "a": 1`)
	assert.Contains(t, out, `+  "a": 2`)

	out, _, err = runApp(t, "diff", "--no-color", "left.json", "left.json")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = runApp(t, "diff", "left.json", "list.json")
	assert.Error(t, err)

	_, _, err = runApp(t, "diff", "left.json")
	assert.ErrorContains(t, err, "exactly two KEYs")
}

func TestPurge(t *testing.T) {
	dir := isolate(t)
	old := writeArtifact(t, dir, "old.txt", "old")
	fresh := writeArtifact(t, dir, "fresh.txt", "fresh")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	out, _, err := runApp(t, "purge", "--hours", "24")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 artifact(s)")
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
}

func TestPurge_HoursFromConfig(t *testing.T) {
	dir := isolate(t)
	cfgFile := filepath.Join(t.TempDir(), "defunct.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("cache:\n  clean: 1\n"), 0o600))
	t.Setenv("DEFUNCT_CFG", cfgFile)

	old := writeArtifact(t, dir, "old.txt", "old")
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	_, _, err := runApp(t, "purge")
	require.NoError(t, err)
	assert.NoFileExists(t, old)
}

func TestClean_Deprecated(t *testing.T) {
	dir := isolate(t)
	old := writeArtifact(t, dir, "old.txt", "old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	out, errOut, err := runApp(t, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 artifact(s)")
	assert.Contains(t, errOut, "Call to deprecated function :: [clean] (use purge)")
	assert.NoFileExists(t, old)
}
