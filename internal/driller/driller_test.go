// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

// listing looks like `defunct ls -o json` output wrapped in a document.
const listing = `{
  "dir": "/tmp/defunct",
  "count": 3,
  "stale": false,
  "owner": null,
  "artifacts": [
    {"key": "a.txt", "size": 3, "tags": ["text"]},
    {"key": "run-0123.out", "size": 42, "tags": ["run", "zstd"]},
    {"key": "nested/b.json", "size": 7, "tags": []}
  ],
  "store": [{"type": "s3", "bucket": {"name": "artifacts", "prefix": ["team"]}}]
}`

func TestDriller(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
		typ  gjson.Type
	}{
		{"string", "dir", "/tmp/defunct", gjson.String},
		{"number", "count", "3", gjson.Number},
		{"false", "stale", "false", gjson.False},
		{"null", "owner", "", gjson.Null},

		{"index", "artifacts[1].key", "run-0123.out", gjson.String},
		{"dotted index", "artifacts.2.key", "nested/b.json", gjson.String},
		{"index in index", "artifacts[1].tags[1]", "zstd", gjson.String},
		{"gjson count", "artifacts.#", "3", gjson.Number},
		{"gjson projection", "artifacts.#.size", "[3,42,7]", gjson.JSON},

		{"lone element unwrapped", "store", `{"type": "s3", "bucket": {"name": "artifacts", "prefix": ["team"]}}`, gjson.JSON},
		{"drill through lone element", "store.type", "s3", gjson.String},
		{"drill through twice", "store.bucket.prefix", "team", gjson.String},
		{"lone element by index", "store[0].bucket.name", "artifacts", gjson.String},
		{"lone tag unwrapped", "artifacts[0].tags", "text", gjson.String},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Driller(listing, tt.path)
			assert.True(t, r.Exists())
			assert.Equal(t, tt.typ, r.Type)
			if tt.typ == gjson.String {
				assert.Equal(t, tt.want, r.String())
			} else if tt.typ != gjson.Null {
				assert.Equal(t, tt.want, r.Raw)
			}
		})
	}
}

func TestDriller_Missing(t *testing.T) {
	for _, path := range []string{
		"nope",
		"dir.deeper",
		"artifacts[9]",
		"artifacts[0].tags[5]",
		"store.bucket.missing",
		"count[0]",
	} {
		t.Run(path, func(t *testing.T) {
			assert.False(t, Driller(listing, path).Exists())
		})
	}
}

func TestDriller_MultiElementArray(t *testing.T) {
	r := Driller(listing, "artifacts[1].tags")
	assert.True(t, r.IsArray())
	assert.Len(t, r.Array(), 2)
}

func TestDriller_BadJSON(t *testing.T) {
	assert.False(t, Driller(`{"a":`, "b").Exists())
	assert.False(t, Driller("", "a").Exists())
}
