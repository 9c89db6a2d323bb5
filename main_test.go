// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/treediff/internal/config"
	"github.com/tfctl/treediff/internal/version"
)

func useSets(t *testing.T) {
	t.Helper()
	cfg, err := filepath.Abs(filepath.Join("testdata", "sets.yaml"))
	require.NoError(t, err)
	t.Setenv("TREEDIFF_CFG_FILE", cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestProcessSets(t *testing.T) {
	useSets(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no sets",
			args:     []string{"treediff", "a.txt", "b.txt"},
			expected: []string{"treediff", "a.txt", "b.txt"},
		},
		{
			name:     "list set expanded in place",
			args:     []string{"treediff", "@exfat", "a.txt", "b.txt"},
			expected: []string{"treediff", "--quantum", "32768", "--summary", "a.txt", "b.txt"},
		},
		{
			name:     "scalar set",
			args:     []string{"treediff", "a.txt", "@exact", "b.txt"},
			expected: []string{"treediff", "a.txt", "--quantum", "0", "b.txt"},
		},
		{
			name:     "several sets",
			args:     []string{"treediff", "@exact", "@json", "a.txt", "b.txt"},
			expected: []string{"treediff", "--quantum", "0", "-o", "json", "--quiet", "a.txt", "b.txt"},
		},
		{
			name:     "unknown set kept as listing name",
			args:     []string{"treediff", "@2024.txt", "b.txt"},
			expected: []string{"treediff", "@2024.txt", "b.txt"},
		},
		{
			name:     "nothing expanded after terminator",
			args:     []string{"treediff", "@exact", "--", "@json", "b.txt"},
			expected: []string{"treediff", "--quantum", "0", "--", "@json", "b.txt"},
		},
		{
			name:     "bare at sign kept",
			args:     []string{"treediff", "@", "b.txt"},
			expected: []string{"treediff", "@", "b.txt"},
		},
		{
			name:     "completion untouched",
			args:     []string{"treediff", "completion", "@exfat"},
			expected: []string{"treediff", "completion", "@exfat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSets(tt.args))
		})
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		handled bool
	}{
		{"long", []string{"treediff", "--version"}, true},
		{"short after listings", []string{"treediff", "a", "b", "-v"}, true},
		{"absent", []string{"treediff", "a", "b"}, false},
		{"after terminator", []string{"treediff", "--", "-v", "b"}, false},
		{"program name only", []string{"-v"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.handled, handleVersion(&buf, tt.args))
			if tt.handled {
				assert.Equal(t, version.Version+"\n", buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestInitAndRunAppExitCodes(t *testing.T) {
	t.Setenv("TREEDIFF_CFG_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	config.Config = config.Type{}

	assert.Equal(t, 2, initAndRunApp([]string{"treediff", "--quiet", "missing-a.txt", "missing-b.txt"}))
	assert.Equal(t, 2, initAndRunApp([]string{"treediff"}), "no listings is a usage error")
	assert.Equal(t, 2, initAndRunApp([]string{"treediff", "a.txt"}), "one listing is a usage error")
}
