// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the edit script between two tree listings. Entries
// are matched with a tolerant relation: same path, same depth and a size
// difference that is a whole number of block quanta (3584 bytes by default,
// the per-folder overhead exFAT reports over NTFS). The sequence diff itself
// is Myers' algorithm from znkr.io/diff.
package differ
