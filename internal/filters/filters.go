// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/defunctgo/internal/attrs"
)

// filterRegex splits key, operator and target. Operators are one of
// = ^ ~ < > @ /, optionally negated with a leading '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is one parsed --filter term.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	re *regexp.Regexp
}

// Parse splits spec on "," (or DEFUNCT_FILTER_DELIM) into filters. A term
// without a key or an operator, or a "/" term with a bad regex, is an error.
func Parse(spec string) ([]Filter, error) {
	if spec == "" {
		return nil, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("DEFUNCT_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	terms := strings.Split(spec, delim)
	filters := make([]Filter, 0, len(terms))
	for _, term := range terms {
		parts := filterRegex.FindStringSubmatch(term)
		if parts == nil || parts[1] == "" {
			return nil, fmt.Errorf("invalid filter %q, want key, operator and value", term)
		}

		f := Filter{
			Key:     parts[1],
			Negate:  strings.HasPrefix(parts[2], "!"),
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		}
		if f.Operand == "/" {
			re, err := regexp.Compile(f.Target)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", term, err)
			}
			f.re = re
		}
		filters = append(filters, f)
	}

	return filters, nil
}

// FilterDataset returns the rows matching every filter in spec. Filter keys
// may name a row key or the title given to it in al. A key that no row has
// is warned about and ignored.
func FilterDataset(rows []map[string]interface{}, al attrs.AttrList, spec string) ([]map[string]interface{}, error) {
	filters, err := Parse(spec)
	if err != nil || len(filters) == 0 {
		return rows, err
	}

	warned := map[string]bool{}
	//nolint:prealloc
	var filtered []map[string]interface{}
rows:
	for _, row := range rows {
		for _, f := range filters {
			key, ok := resolveKey(row, al, f.Key)
			if !ok {
				if !warned[f.Key] {
					log.Warnf("filter key not found: %s", f.Key)
					warned[f.Key] = true
				}
				continue
			}
			if !f.Match(row[key]) {
				continue rows
			}
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

// resolveKey maps a filter key to a row key.
func resolveKey(row map[string]interface{}, al attrs.AttrList, key string) (string, bool) {
	if _, ok := row[key]; ok {
		return key, true
	}
	for _, attr := range al {
		if attr.OutputKey == key {
			if _, ok := row[attr.Key]; ok {
				return attr.Key, true
			}
		}
	}
	return "", false
}

// Match reports whether value passes f. nil never does.
func (f Filter) Match(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return f.matchString(v)
	case bool:
		return f.matchString(strconv.FormatBool(v))
	case time.Time:
		return f.matchTime(v)
	case []any, map[string]any:
		return f.matchContains(v)
	}

	if num, ok := toFloat64(value); ok {
		return f.matchNumber(num)
	}
	return f.matchString(fmt.Sprintf("%v", value))
}

// matchContains handles '@' against collections.
func (f Filter) matchContains(value interface{}) bool {
	if f.Operand != "@" {
		log.Debugf("operand %s does not apply to collections", f.Operand)
		return false
	}
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == f.Target {
				return !f.Negate
			}
		}
		return f.Negate
	case map[string]any:
		_, found := val[f.Target]
		return found == !f.Negate
	}
	return false
}

// matchNumber compares numerically. The target may also be a size such as
// 10KB or 2MiB.
func (f Filter) matchNumber(value float64) bool {
	tgt, ok := numericTarget(f.Target)
	if !ok {
		log.Debugf("non-numeric target %q, comparing as text", f.Target)
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}

	switch f.Operand {
	case "=":
		return (value == tgt) == !f.Negate
	case ">":
		return (value > tgt) == !f.Negate
	case "<":
		return (value < tgt) == !f.Negate
	}
	return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
}

func numericTarget(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, true
	}
	if n, err := humanize.ParseBytes(s); err == nil {
		return float64(n), true
	}
	return 0, false
}

// matchTime compares instants when the target is RFC3339, otherwise the
// RFC3339 UTC rendering of value is compared as text.
func (f Filter) matchTime(value time.Time) bool {
	tgt, err := time.Parse(time.RFC3339, strings.TrimSpace(f.Target))
	if err != nil {
		return f.matchString(value.UTC().Format(time.RFC3339))
	}

	switch f.Operand {
	case "=":
		return value.Equal(tgt) == !f.Negate
	case ">":
		return value.After(tgt) == !f.Negate
	case "<":
		return value.Before(tgt) == !f.Negate
	}
	return f.matchString(value.UTC().Format(time.RFC3339))
}

func (f Filter) matchString(value string) bool {
	var hit bool
	switch f.Operand {
	case "=":
		hit = value == f.Target
	case "~":
		hit = strings.EqualFold(value, f.Target)
	case "^":
		hit = strings.HasPrefix(value, f.Target)
	case ">":
		hit = value > f.Target
	case "<":
		hit = value < f.Target
	case "@":
		hit = strings.Contains(value, f.Target)
	case "/":
		re := f.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(f.Target); err != nil {
				log.Errorf("invalid regex: %s", f.Target)
				return false
			}
		}
		hit = re.MatchString(value)
	default:
		log.Errorf("unsupported filtering operand: %s", f.Operand)
		return false
	}
	return hit == !f.Negate
}

// toFloat64 normalizes numeric types.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
