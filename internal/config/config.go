// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the standard locations.
const FileName = "defunct.yaml"

var errNotFound = errors.New("no valid path found")

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

func init() {
	_, _ = Load()
}

// Load reads the config file into Config. An optional namespace (usually the
// subcommand) is tried before the bare key by every getter.
func Load(namespace ...string) (Type, error) {
	ns := Config.Namespace
	if len(namespace) > 0 {
		ns = namespace[0]
	}

	path, err := getConfigPath()
	if err != nil {
		Config = Type{Namespace: ns}
		return Config, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: ns,
		Data:      data}

	return Config, nil
}

// get traverses the map using a dotted key path, namespaced path first.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w among: %v", errNotFound, candidateKeys)
}

// lookup loads the config if needed and fetches key.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

// getAs looks key up and converts it with conv. A missing key yields the
// default when exactly one is given.
func getAs[T any](key, kind string, conv func(any) (T, bool), defaultValue []T) (T, error) {
	var zero T
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	v, ok := conv(val)
	if !ok {
		return zero, fmt.Errorf("%s: value is not %s", key, kind)
	}
	return v, nil
}

func GetString(key string, defaultValue ...string) (string, error) {
	return getAs(key, "a string", func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	}, defaultValue)
}

// GetInt accepts any YAML number; fractions are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return getAs(key, "an int", func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	}, defaultValue)
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	return getAs(key, "a bool", func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	}, defaultValue)
}

// GetStringSlice returns a YAML sequence of strings. A scalar string is
// returned as a one element slice.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := getAs(key, "a list of strings", func(v any) ([]interface{}, bool) {
		switch l := v.(type) {
		case string:
			return []interface{}{l}, true
		case []interface{}:
			return l, true
		}
		return nil, false
	}, nil)
	if errors.Is(err, errNotFound) && len(defaultValue) == 1 {
		return defaultValue[0], nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(val))
	for _, item := range val {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: value contains a non-string: %v", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

func getConfigPath() (string, error) {
	// An explicit DEFUNCT_CFG wins and must exist.
	if cfgFile, ok := os.LookupEnv("DEFUNCT_CFG"); ok && cfgFile != "" {
		fileInfo, err := os.Stat(cfgFile)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", cfgFile)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("DEFUNCT_CFG points to a directory: %s", cfgFile)
		}
		return cfgFile, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
