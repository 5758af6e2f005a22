// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
)

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one column of text output, taken from a row key.
type Attr struct {
	// The row key to read.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The column title and the key of the projected row.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the attr's transform spec to value:
//
//	t, T   render a time.Time in $TZ
//	l, L   lower case
//	u, U   upper case
//	N      truncate to N characters
//	-N     shorten to N characters by eliding the middle
//
// The last case and length directive win, so a per-attr spec overrides a
// global one prepended by SetGlobalTransformSpec.
func (a *Attr) Transform(value interface{}) interface{} {
	if strings.ContainsAny(a.TransformSpec, "tT") {
		switch v := value.(type) {
		case time.Time:
			value = localTime(v)
		case string:
			// RFC3339 strings, e.g. from JSON, are only converted when a
			// zone is asked for.
			if t, err := time.Parse(time.RFC3339, v); err == nil && os.Getenv("TZ") != "" {
				value = localTime(t)
			}
		}
	}

	result, ok := value.(string)
	if !ok {
		return value
	}

	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	match := lengthRe.FindAllString(a.TransformSpec, -1)
	if len(match) != 0 {
		// Take the last (overriding) match.
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if abs > 0 && len(result) > abs {
			if l < 0 {
				lr := max(abs/2-1, 1)
				result = result[:lr] + ".." + result[len(result)-lr:]
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

// localTime formats t in the zone named by $TZ, or as is when TZ is unset
// or unknown.
func localTime(t time.Time) string {
	const layout = "2006-01-02T15:04:05MST"

	tz := os.Getenv("TZ")
	if tz == "" {
		return t.Format(layout)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Errorf("unknown TZ %q: %v", tz, err)
		return t.Format(layout)
	}
	return t.In(loc).Format(layout)
}

type AttrList []Attr

// Return a string representation of the AttrList.  This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses an --attrs value and merges it into the list. Each spec is
// key[:title[:transform]]; a leading ! hides the key, * is the global
// transform.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q: too many fields", spec)
		}

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// for cmd or the user double-entered it) just apply the OutputKey, Include
		// and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec.  If there is more than one, we're not
	// dealing with it and just taking the first.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

// Columns returns the output keys of the included attrs, in order.
func (alist AttrList) Columns() []string {
	cols := make([]string, 0, len(alist))
	for _, a := range alist {
		if a.Include {
			cols = append(cols, a.OutputKey)
		}
	}
	return cols
}

// Project returns rows holding only the included attrs, keyed by their
// output keys and transformed.
func (alist AttrList) Project(rows []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]interface{}, len(alist))
		for i := range alist {
			a := &alist[i]
			if !a.Include {
				continue
			}
			if v, ok := row[a.Key]; ok {
				p[a.OutputKey] = a.Transform(v)
			}
		}
		out = append(out, p)
	}
	return out
}
