// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"cmp"
	"fmt"
	"strings"
)

// SizeWidth is the width of the right-justified size field in the display
// form.
const SizeWidth = 14

// Record is one parsed listing line.
type Record struct {
	Path   string `json:"path" yaml:"path"`
	Size   int64  `json:"size" yaml:"size"`
	Indent int    `json:"indent" yaml:"indent"`
}

// String returns the display form: Indent tabs, the size right-justified in a
// bracketed field and the path.
func (r Record) String() string {
	return fmt.Sprintf("%s[%*d] %s", strings.Repeat("\t", r.Indent), SizeWidth, r.Size, r.Path)
}

// Compare orders records by path, then size, then indent. It is a plain
// field-by-field order and has nothing to do with how the differ decides that
// two records match.
func Compare(a, b Record) int {
	if c := strings.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}
	return cmp.Compare(a.Indent, b.Indent)
}

// Entry is a Record together with where it came from. Skipped is set for lines
// that had no opening bracket; their Record is always the zero value.
type Entry struct {
	Record
	Line    int    `json:"line" yaml:"line"`
	Raw     string `json:"-" yaml:"-"`
	Skipped bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
