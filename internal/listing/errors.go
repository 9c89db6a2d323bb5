// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"errors"
	"fmt"
)

// ErrMissingBracket marks a line without an opening bracket. It is the only
// recoverable parse error.
var ErrMissingBracket = errors.New("missing [")

// Causes of a *FormatError, usable with errors.Is.
var (
	ErrMissingClose  = errors.New("missing ] after [")
	ErrInvalidIndent = errors.New("invalid indent")
	ErrInvalidSize   = errors.New("invalid size")
)

// FormatError reports a line that breaks the listing format. Listings holding
// such a line are not comparable and the run must stop.
type FormatError struct {
	// Line is the 1-based line number, zero when parsing a lone line.
	Line int
	Raw  string
	// Column is the character column of the opening bracket.
	Column int
	// Text is the bracketed size text for ErrInvalidSize.
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	var msg string
	switch e.Err {
	case ErrInvalidIndent:
		msg = fmt.Sprintf("invalid indent %d: %s", e.Column, e.Raw)
	case ErrInvalidSize:
		msg = fmt.Sprintf("invalid size: %s in %s", e.Text, e.Raw)
	default:
		msg = fmt.Sprintf("%v: %s", e.Err, e.Raw)
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
