// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/defunctgo/internal/attrs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec    string
		want    []Filter
		wantErr string
	}{
		{spec: ""},
		{spec: "key=run.out", want: []Filter{{Key: "key", Operand: "=", Target: "run.out"}}},
		{spec: "key!=run.out", want: []Filter{{Key: "key", Operand: "=", Target: "run.out", Negate: true}}},
		{spec: "key^runs/,size>9", want: []Filter{
			{Key: "key", Operand: "^", Target: "runs/"},
			{Key: "size", Operand: ">", Target: "9"},
		}},
		{spec: "key=a=b", want: []Filter{{Key: "key", Operand: "=", Target: "a=b"}}},
		{spec: "key=", want: []Filter{{Key: "key", Operand: "=", Target: ""}}},
		{spec: "nooperand", wantErr: `invalid filter "nooperand"`},
		{spec: "=foo", wantErr: `invalid filter "=foo"`},
		{spec: "key/(", wantErr: `invalid filter "key/("`},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Regex(t *testing.T) {
	got, err := Parse(`key/\.json$`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Match("a.json"))
	assert.False(t, got[0].Match("a.jsonl"))
}

func TestParse_Delimiter(t *testing.T) {
	t.Setenv("DEFUNCT_FILTER_DELIM", ";")

	got, err := Parse("key@a,b;key!^x")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a,b", got[0].Target)
	assert.True(t, got[1].Negate)
}

func TestMatch_Strings(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		filter Filter
		want   bool
	}{
		{"equal", "a.txt", Filter{Operand: "=", Target: "a.txt"}, true},
		{"not equal", "a.txt", Filter{Operand: "=", Target: "a.txt", Negate: true}, false},
		{"fold", "A.TXT", Filter{Operand: "~", Target: "a.txt"}, true},
		{"prefix", "runs/a", Filter{Operand: "^", Target: "runs/"}, true},
		{"greater", "b", Filter{Operand: ">", Target: "a"}, true},
		{"less", "b", Filter{Operand: "<", Target: "a"}, false},
		{"contains", "runs/a", Filter{Operand: "@", Target: "s/a"}, true},
		{"unparsed regex", "a.json", Filter{Operand: "/", Target: `\.json$`}, true},
		{"bad regex", "a.json", Filter{Operand: "/", Target: `(`}, false},
		{"unknown operand", "a", Filter{Operand: "%", Target: "a"}, false},
		{"bool", true, Filter{Operand: "=", Target: "true"}, true},
		{"nil", nil, Filter{Operand: "=", Target: "", Negate: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestMatch_Numbers(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		filter Filter
		want   bool
	}{
		{"equal", 10, Filter{Operand: "=", Target: "10"}, true},
		{"not equal", int64(10), Filter{Operand: "=", Target: "10", Negate: true}, false},
		{"greater numerically", 10, Filter{Operand: ">", Target: "9"}, true},
		{"less", uint64(10), Filter{Operand: "<", Target: "9"}, false},
		{"size target", int64(2048), Filter{Operand: ">", Target: "1KB"}, true},
		{"binary size target", int64(2048), Filter{Operand: "=", Target: "2KiB"}, true},
		{"prefix as text", 10.5, Filter{Operand: "^", Target: "10."}, true},
		{"word target as text", 10, Filter{Operand: "=", Target: "ten"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestMatch_Times(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	assert.True(t, Filter{Operand: "=", Target: "2024-01-01T11:00:00Z"}.Match(at))
	assert.True(t, Filter{Operand: ">", Target: "2024-01-01T10:00:00Z"}.Match(at))
	assert.False(t, Filter{Operand: "<", Target: "2024-01-01T10:00:00Z"}.Match(at))
	assert.True(t, Filter{Operand: "^", Target: "2024-01-01T11"}.Match(at))
	assert.True(t, Filter{Operand: ">", Target: "2023"}.Match(at))
}

func TestMatch_Collections(t *testing.T) {
	list := []any{"x", 2}
	m := map[string]any{"k": 1}

	assert.True(t, Filter{Operand: "@", Target: "x"}.Match(list))
	assert.True(t, Filter{Operand: "@", Target: "2"}.Match(list))
	assert.False(t, Filter{Operand: "@", Target: "x", Negate: true}.Match(list))
	assert.True(t, Filter{Operand: "@", Target: "k"}.Match(m))
	assert.True(t, Filter{Operand: "@", Target: "z", Negate: true}.Match(m))
	assert.False(t, Filter{Operand: "=", Target: "x"}.Match(list))
}

func TestFilterDataset(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []map[string]interface{}{
		{"key": "runs/a.json", "size": int64(10), "modified": old, "tags": []any{"x", "y"}},
		{"key": "runs/b.txt", "size": int64(9), "modified": old.Add(time.Hour), "tags": []any{"y"}},
		{"key": "other.json", "size": int64(2000), "modified": old.Add(2 * time.Hour), "tags": nil},
	}
	al := attrs.AttrList{{Key: "size", OutputKey: "bytes", Include: true}}

	keys := func(rs []map[string]interface{}) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r["key"].(string))
		}
		return out
	}

	tests := []struct {
		spec string
		want []string
	}{
		{"", []string{"runs/a.json", "runs/b.txt", "other.json"}},
		{"key^runs/", []string{"runs/a.json", "runs/b.txt"}},
		{`key/\.json$`, []string{"runs/a.json", "other.json"}},
		{"key!@a.", []string{"runs/b.txt", "other.json"}},
		{"tags@x", []string{"runs/a.json"}},
		{"tags!@x", []string{"runs/b.txt"}},
		{"key~RUNS/B.TXT", []string{"runs/b.txt"}},
		{"size>9", []string{"runs/a.json", "other.json"}},
		{"size>1kB", []string{"other.json"}},
		{"bytes<50", []string{"runs/a.json", "runs/b.txt"}},
		{"modified>2024-01-01T00:30:00Z", []string{"runs/b.txt", "other.json"}},
		{"size>9,key^runs/", []string{"runs/a.json"}},
		{"missing=1", []string{"runs/a.json", "runs/b.txt", "other.json"}},
		{"key=nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := FilterDataset(rows, al, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}

	_, err := FilterDataset(rows, al, "broken")
	assert.Error(t, err)
}
