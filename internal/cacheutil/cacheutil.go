// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/treediff/internal/log"
)

// Entry represents a cached listing on disk.
// Key is the clear-text key; EncodedKey is the hashed filename. ETag is the
// validator the listing was fetched with.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	ETag       string
	Data       []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. TREEDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/treediff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("TREEDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "treediff"), true
	}
	return "", false
}

// Enabled returns true unless TREEDIFF_CACHE explicitly disables it
// ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TREEDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// entryPath returns the path where a cache entry would live and whether a
// file currently exists there.
func entryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(append([]string{base}, append(subdirs, encodeKey(clearKey))...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read attempts to read a cached entry. The first line of the file holds the
// ETag, the rest is the listing as fetched.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := entryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	etag, data, found := bytes.Cut(b, []byte("\n"))
	if !found {
		log.Warnf("ignoring malformed cache file %s", p)
		return nil, false
	}
	log.Debugf("cache hit: key=%s etag=%s", clearKey, etag)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		ETag:       string(etag),
		Data:       data,
	}, true
}

// Write stores data and its ETag for the given key beneath subdirs. Creates
// directories as needed.
func Write(subdirs []string, clearKey, etag string, data []byte) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(etag) + 1 + len(data))
	buf.WriteString(etag)
	buf.WriteByte('\n')
	buf.Write(data)

	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, buf.Bytes(), os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s etag=%s", clearKey, etag)
	return nil
}

// sha256 returns a 32-byte digest.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
