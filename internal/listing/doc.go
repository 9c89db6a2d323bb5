// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package listing parses tree listings: text dumps of a directory tree where
// every line carries a nesting depth (the column of the opening bracket), a
// byte size in brackets and a path.
//
//	[          4096] root
//	    [       1024] root/a.txt
//	    [       3072] root/sub
//
// A line without an opening bracket is not fatal. It yields a skipped Entry and
// ErrMissingBracket so that one stray line cannot block a comparison. Every
// other malformation is a *FormatError.
//
// A tab before the bracket advances to the next indent stop, so the display
// form written by Record.String reads back at the same depth. Producers that
// count a tab as a single column will see tab-indented lines at a different
// depth than they intended.
package listing
