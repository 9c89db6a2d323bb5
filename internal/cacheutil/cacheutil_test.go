// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TREEDIFF_CACHE_DIR", dir)
	t.Setenv("TREEDIFF_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := useCacheDir(t)

	result, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, result)

	t.Setenv("TREEDIFF_CACHE_DIR", "")
	result, ok = Dir()
	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "treediff", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("TREEDIFF_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	dir := useCacheDir(t)
	subdirs := []string{"s3", "dumps"}
	data := []byte("[ 1] a\n    [ 2] a/b\n")

	_, hit := Read(subdirs, "s3://dumps/treeA.txt")
	assert.False(t, hit)

	require.NoError(t, Write(subdirs, "s3://dumps/treeA.txt", `"abc123"`, data))

	entry, hit := Read(subdirs, "s3://dumps/treeA.txt")
	require.True(t, hit)
	assert.Equal(t, `"abc123"`, entry.ETag)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "s3://dumps/treeA.txt", entry.Key)
	assert.Equal(t, filepath.Join(dir, "s3", "dumps", entry.EncodedKey), entry.Path)

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteOverwrites(t *testing.T) {
	useCacheDir(t)

	require.NoError(t, Write(nil, "k", "one", []byte("old")))
	require.NoError(t, Write(nil, "k", "two", []byte("new\n")))

	entry, hit := Read(nil, "k")
	require.True(t, hit)
	assert.Equal(t, "two", entry.ETag)
	assert.Equal(t, "new\n", string(entry.Data))
}

func TestDisabled(t *testing.T) {
	dir := useCacheDir(t)
	t.Setenv("TREEDIFF_CACHE", "false")

	require.NoError(t, Write(nil, "k", "etag", []byte("x")))
	_, hit := Read(nil, "k")
	assert.False(t, hit)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadMalformed(t *testing.T) {
	dir := useCacheDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, encodeKey("k")), []byte("no newline"), 0o600))

	_, hit := Read(nil, "k")
	assert.False(t, hit)
}

func TestPurge(t *testing.T) {
	dir := useCacheDir(t)
	require.NoError(t, Write([]string{"s3"}, "old", "e", []byte("x")))
	require.NoError(t, Write([]string{"s3"}, "new", "e", []byte("y")))

	oldPath, ok := entryPath([]string{"s3"}, "old")
	require.True(t, ok)
	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	_, ok = entryPath([]string{"s3"}, "old")
	assert.True(t, ok, "zero hours disables purging")

	require.NoError(t, Purge(2))
	_, ok = entryPath([]string{"s3"}, "old")
	assert.False(t, ok)
	_, ok = entryPath([]string{"s3"}, "new")
	assert.True(t, ok)

	_, err := os.Stat(filepath.Join(dir, "s3"))
	assert.NoError(t, err)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://dumps/treeA.txt")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("s3://dumps/treeA.txt"))
	assert.NotEqual(t, a, encodeKey("s3://dumps/treeB.txt"))
}
