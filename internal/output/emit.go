// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v2"

	"github.com/staranto/defunctgo/internal/driller"
)

// Formats accepted by Emit.
var Formats = []string{"raw", "text", "json", "yaml"}

var (
	ErrNotJSON  = errors.New("artifact is not JSON")
	ErrNoMatch  = errors.New("query matched nothing")
	ErrBadFormt = errors.New("unknown output format")
)

// Emit writes an artifact to w. A non-empty query is a driller path applied
// first, which requires the artifact to be JSON. raw and text write the bytes
// (or a scalar query result) untouched; json pretty prints; yaml converts.
func Emit(w io.Writer, data []byte, format, query string) error {
	if query != "" {
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("%w: cannot apply query %q", ErrNotJSON, query)
		}
		result := driller.Driller(string(data), query)
		if !result.Exists() {
			return fmt.Errorf("%w: %s", ErrNoMatch, query)
		}
		if result.Type == gjson.String && (format == "raw" || format == "text" || format == "") {
			_, err := fmt.Fprintln(w, result.String())
			return err
		}
		data = []byte(result.Raw)
	}

	switch format {
	case "", "raw", "text":
		_, err := w.Write(data)
		return err

	case "json":
		if !gjson.ValidBytes(data) {
			return ErrNotJSON
		}
		_, err := w.Write(pretty.Pretty(data))
		return err

	case "yaml":
		if !gjson.ValidBytes(data) {
			return ErrNotJSON
		}
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	}

	return fmt.Errorf("%w: %q (should be one of %s)", ErrBadFormt, format, strings.Join(Formats, ", "))
}
