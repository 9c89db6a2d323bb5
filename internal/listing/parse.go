// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tfctl/treediff/internal/log"
)

// DefaultIndentWidth is the number of columns per nesting level.
const DefaultIndentWidth = 4

// maxLineSize bounds a single listing line. Paths are short, but some dumps
// carry very deep trees.
const maxLineSize = 1 << 20

type options struct {
	indentWidth int
}

// Option customizes parsing.
type Option func(*options)

// WithIndentWidth sets the columns per nesting level. Values below one keep
// the default.
func WithIndentWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.indentWidth = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{indentWidth: DefaultIndentWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse converts one listing line into an Entry. A line without an opening
// bracket returns a skipped Entry along with ErrMissingBracket; any other
// error is a *FormatError and the Entry must be discarded.
func Parse(line string, opts ...Option) (Entry, error) {
	return parse(line, newOptions(opts))
}

func parse(line string, o options) (Entry, error) {
	opn := strings.IndexByte(line, '[')
	if opn < 0 {
		return Entry{Raw: line, Skipped: true}, ErrMissingBracket
	}

	cls := strings.IndexByte(line, ']')
	if cls < opn {
		return Entry{}, &FormatError{Raw: line, Err: ErrMissingClose}
	}

	col := column(line[:opn], o.indentWidth)
	if col%o.indentWidth != 0 {
		return Entry{}, &FormatError{Raw: line, Column: col, Err: ErrInvalidIndent}
	}

	text := line[opn+1 : cls]
	size, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return Entry{}, &FormatError{Raw: line, Column: col, Text: text, Err: ErrInvalidSize}
	}

	return Entry{
		Record: Record{
			Path:   strings.TrimSpace(line[cls+1:]),
			Size:   size,
			Indent: col / o.indentWidth,
		},
		Raw: line,
	}, nil
}

// column returns the display column reached after prefix. Every character
// takes one column except a tab, which advances to the next indent stop so
// that tab-indented display forms parse back to the same depth.
func column(prefix string, width int) int {
	col := 0
	for _, r := range prefix {
		if r == '\t' {
			col += width - col%width
			continue
		}
		col++
	}
	return col
}

// Read parses every line of r. Lines without an opening bracket are logged and
// kept as skipped entries; the first *FormatError stops the read.
func Read(ctx context.Context, r io.Reader, opts ...Option) ([]Entry, error) {
	o := newOptions(opts)

	var entries []Entry
	var skipped int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		entry, err := parse(line, o)
		switch {
		case errors.Is(err, ErrMissingBracket):
			log.Warnf("Missing [ -- skipping: '%s'", line)
			skipped++
		case err != nil:
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = n
			}
			return nil, err
		}

		entry.Line = n
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading listing: %w", err)
	}

	log.Debugf("listing read: entries=%d skipped=%d", len(entries), skipped)
	return entries, nil
}
