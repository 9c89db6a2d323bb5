// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/treediff/internal/log"
)

// FileName is the config file name looked up in the user config directory.
const FileName = "treediff.yaml"

// ErrNoConfig is returned when no config file exists in any of the standard
// locations. Running without a config file is normal.
var ErrNoConfig = errors.New("no config file found in standard locations")

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Data: raw key/value tree unmarshaled from YAML.
//
// Data is kept as map[string]any so that sets and color overrides can take
// any shape. Callers should use the typed getters.
type Type struct {
	Source string
	Data   map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; common cases are handled.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lazy().get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("value of %s is not an int", key)
	}
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lazy().get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("value of %s is not a string", key)
	}

	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// A scalar string is promoted to a one element slice so that a set can be
// written either way in YAML.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lazy().get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d of %s is not a string", i, key)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("value of %s is not a slice", key)
	}
}

// Load reads the YAML configuration file and populates the global Config.
// Returns ErrNoConfig when there is nothing to load.
func Load() (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
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
		Source: path,
		Data:   data,
	}
	log.Debugf("config loaded: source=%s keys=%d", path, len(data))

	return Config, nil
}

// File returns the absolute path to the YAML config file. If the
// TREEDIFF_CFG_FILE environment variable is set, it is treated as the full
// path to the config file. Otherwise, the OS-specific user configuration
// directory returned by os.UserConfigDir is used with FileName. The file must
// exist and not be a directory.
func File() (string, error) {
	if cfgPath := os.Getenv("TREEDIFF_CFG_FILE"); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file from TREEDIFF_CFG_FILE: %s", cfgPath)
				return filepath.Abs(cfgPath)
			}
			return "", fmt.Errorf("TREEDIFF_CFG_FILE points to a directory: %s", cfgPath)
		}
		return "", fmt.Errorf("config file not found at TREEDIFF_CFG_FILE path: %s", cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", ErrNoConfig
}

// lazy returns the global config, loading it on first use.
func lazy() *Type {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return &Config
}

// get traverses the configuration tree using a dotted key path (e.g.
// "sets.exfat").
func (cfg *Type) get(kspec string) (any, error) {
	var current interface{} = cfg.Data
	for _, key := range strings.Split(kspec, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("no valid path found for %s", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no valid path found for %s", kspec)
		}
	}

	return current, nil
}
