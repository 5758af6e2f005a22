// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

// Driller returns the value at path in json. A missing value is the zero
// gjson.Result.
//
// The path is first tried as a gjson path, with items[1] read as items.1.
// If that finds nothing it is walked a segment at a time, stepping into any
// one element array on the way, so users.name finds the name of a lone user.
// A one element array result is returned as its element.
func Driller(json, path string) gjson.Result {
	if r := gjson.Get(json, indexRe.ReplaceAllString(path, ".$1")); r.Exists() {
		return unwrap(r)
	}
	return unwrap(walk(gjson.Parse(json), path))
}

func walk(cur gjson.Result, path string) gjson.Result {
	for _, seg := range strings.Split(path, ".") {
		name := seg
		var idx []int
		if i := strings.IndexByte(seg, '['); i >= 0 {
			name = seg[:i]
			for _, m := range indexRe.FindAllStringSubmatch(seg[i:], -1) {
				n, _ := strconv.Atoi(m[1])
				idx = append(idx, n)
			}
		}

		cur = unwrap(cur)
		if name != "" {
			cur = cur.Get(name)
		}
		for _, n := range idx {
			if !cur.IsArray() {
				return gjson.Result{}
			}
			arr := cur.Array()
			if n >= len(arr) {
				return gjson.Result{}
			}
			cur = arr[n]
		}
		if !cur.Exists() {
			return gjson.Result{}
		}
	}
	return cur
}

func unwrap(r gjson.Result) gjson.Result {
	if r.IsArray() {
		if arr := r.Array(); len(arr) == 1 {
			return arr[0]
		}
	}
	return r
}
