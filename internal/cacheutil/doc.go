// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil keeps fetched remote listings on disk, keyed by a hash of
// their URL and stored with the ETag they were served with.
package cacheutil
