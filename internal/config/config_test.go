// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points TREEDIFF_CFG_FILE at a testdata file and resets the
// global Config so that the next getter reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TREEDIFF_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.True(t, filepath.IsAbs(cfg.Source))
				assert.Equal(t, 3584, cfg.Data["quantum"])
				assert.Equal(t, "text", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				color, ok := cfg.Data["color"].(map[string]interface{})
				require.True(t, ok, "color should be a map")
				assert.Equal(t, "#d70000", color["delete"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TREEDIFF_CFG_FILE", "/nonexistent/path/treediff.yaml")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("TREEDIFF_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "simple.yaml", key: "quantum", want: 3584},
		{name: "float truncated", testFile: "mixed-types.yaml", key: "timeout", want: 30},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{4}, want: 4},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "not an int", testFile: "simple.yaml", key: "output", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "nested", testFile: "nested.yaml", key: "color.insert", want: "#00af00"},
		{name: "missing with default", testFile: "nested.yaml", key: "color.equal", defaultValue: []string{"#fff"}, want: "#fff"},
		{name: "missing without default", testFile: "nested.yaml", key: "color.equal", wantErr: true},
		{name: "traverse non-map", testFile: "simple.yaml", key: "quantum.value", wantErr: true},
		{name: "not a string", testFile: "mixed-types.yaml", key: "enabled", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name     string
		testFile string
		key      string
		want     []string
		wantErr  bool
	}{
		{name: "list", testFile: "nested.yaml", key: "sets.exfat", want: []string{"--quantum 3584", "--summary"}},
		{name: "scalar promoted", testFile: "nested.yaml", key: "sets.ntfs", want: []string{"--quantum 0"}},
		{name: "non-string element", testFile: "mixed-types.yaml", key: "sets.broken", wantErr: true},
		{name: "not a slice", testFile: "mixed-types.yaml", key: "version", wantErr: true},
		{name: "missing", testFile: "nested.yaml", key: "sets.none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetStringSlice(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSliceDefault(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	got, err := GetStringSlice("sets.none", []string{"--summary"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--summary"}, got)
}
