// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// ErrShapeMismatch is returned when one document is an object and the other
// an array (or a scalar).
var ErrShapeMismatch = errors.New("documents are not both objects or both arrays")

// Diff writes an ASCII diff of two JSON documents to w and reports whether
// they differ. Identical documents write nothing.
func Diff(w io.Writer, left, right []byte, color bool) (bool, error) {
	var l, r interface{}
	if err := json.Unmarshal(left, &l); err != nil {
		return false, fmt.Errorf("left: %w: %v", ErrNotJSON, err)
	}
	if err := json.Unmarshal(right, &r); err != nil {
		return false, fmt.Errorf("right: %w: %v", ErrNotJSON, err)
	}

	differ := gojsondiff.New()
	var d gojsondiff.Diff
	switch lv := l.(type) {
	case map[string]interface{}:
		rv, ok := r.(map[string]interface{})
		if !ok {
			return false, ErrShapeMismatch
		}
		d = differ.CompareObjects(lv, rv)
	case []interface{}:
		rv, ok := r.([]interface{})
		if !ok {
			return false, ErrShapeMismatch
		}
		d = differ.CompareArrays(lv, rv)
	default:
		return false, ErrShapeMismatch
	}

	if !d.Modified() {
		return false, nil
	}

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(d)
	if err != nil {
		return true, fmt.Errorf("failed to format diff: %w", err)
	}
	_, err = io.WriteString(w, out)
	return true, err
}
