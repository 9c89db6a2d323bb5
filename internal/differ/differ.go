// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"iter"

	"znkr.io/diff"

	"github.com/tfctl/treediff/internal/listing"
	"github.com/tfctl/treediff/internal/log"
)

// DefaultQuantum is the size difference, in bytes, that still counts as the
// same entry.
const DefaultQuantum = 3584

// Tolerance is the equality relation used to match entries.
type Tolerance struct {
	// Quantum is the block size absorbed by the comparison. Zero or less means
	// sizes must match exactly.
	Quantum int64
}

// Equal reports whether a and b describe the same entry: equal paths, equal
// indents and sizes a whole number of quanta apart. Skipped entries only
// match other skipped entries.
func (t Tolerance) Equal(a, b listing.Entry) bool {
	if a.Skipped || b.Skipped {
		return a.Skipped && b.Skipped
	}
	if a.Path != b.Path || a.Indent != b.Indent {
		return false
	}

	d := a.Size - b.Size
	if t.Quantum <= 0 {
		return d == 0
	}
	return d%t.Quantum == 0
}

// Op tags a change.
type Op int

const (
	Equal  Op = iota // Present in both listings
	Delete           // Only in the first listing
	Insert           // Only in the second listing
)

var opNames = [...]string{"equal", "delete", "insert"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// MarshalText renders the op by name in JSON and YAML output.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Prefix is the marker written before a changed entry in text output.
func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Change is one element-level edit. For Equal, Entry is taken from the first
// listing.
type Change struct {
	Op    Op            `json:"op" yaml:"op"`
	Entry listing.Entry `json:"entry" yaml:"entry"`
}

// Hunk is a contiguous run of changes covering a[PosA:EndA] and b[PosB:EndB].
type Hunk struct {
	PosA, EndA int
	PosB, EndB int
	Changes    []Change
}

// Result is the edit script between two listings.
type Result struct {
	Tolerance Tolerance
	Hunks     []Hunk
}

type options struct {
	tolerance Tolerance
	context   int
}

// Option customizes Diff.
type Option func(*options)

// WithQuantum sets the tolerance quantum. Zero or less compares sizes exactly.
func WithQuantum(q int64) Option {
	return func(o *options) { o.tolerance.Quantum = q }
}

// WithContext keeps n equal entries around every hunk. Default is zero.
func WithContext(n int) Option {
	return func(o *options) { o.context = max(0, n) }
}

// Diff compares a and b under the tolerance and returns the edit script.
// Listings that match entry for entry produce no hunks.
func Diff(a, b []listing.Entry, opts ...Option) Result {
	o := options{tolerance: Tolerance{Quantum: DefaultQuantum}}
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("diffing: a=%d b=%d quantum=%d context=%d", len(a), len(b), o.tolerance.Quantum, o.context)

	hunks := diff.HunksFunc(a, b, o.tolerance.Equal, diff.Context(o.context))

	res := Result{
		Tolerance: o.tolerance,
		Hunks:     make([]Hunk, 0, len(hunks)),
	}
	for _, h := range hunks {
		changes := make([]Change, 0, len(h.Edits))
		for _, e := range h.Edits {
			switch e.Op {
			case diff.Delete:
				changes = append(changes, Change{Op: Delete, Entry: e.X})
			case diff.Insert:
				changes = append(changes, Change{Op: Insert, Entry: e.Y})
			default:
				changes = append(changes, Change{Op: Equal, Entry: e.X})
			}
		}
		res.Hunks = append(res.Hunks, Hunk{
			PosA:    h.PosX,
			EndA:    h.EndX,
			PosB:    h.PosY,
			EndB:    h.EndY,
			Changes: changes,
		})
	}

	log.Debugf("diff done: hunks=%d", len(res.Hunks))
	return res
}

// All yields every change in order, including the Equal context kept around
// each hunk.
func (r Result) All() iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for _, h := range r.Hunks {
			for _, c := range h.Changes {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Changes yields every Delete and Insert in order, dropping Equal context.
func (r Result) Changes() iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for _, h := range r.Hunks {
			for _, c := range h.Changes {
				if c.Op == Equal {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Identical reports whether the listings matched entry for entry.
func (r Result) Identical() bool {
	for range r.Changes() {
		return false
	}
	return true
}

// Stats summarizes an edit script.
type Stats struct {
	Deleted       int   `json:"deleted" yaml:"deleted"`
	Inserted      int   `json:"inserted" yaml:"inserted"`
	DeletedBytes  int64 `json:"deletedBytes" yaml:"deletedBytes"`
	InsertedBytes int64 `json:"insertedBytes" yaml:"insertedBytes"`
	Hunks         int   `json:"hunks" yaml:"hunks"`
}

// Stats counts the changes in r and sums their sizes.
func (r Result) Stats() Stats {
	s := Stats{Hunks: len(r.Hunks)}
	for c := range r.Changes() {
		switch c.Op {
		case Delete:
			s.Deleted++
			s.DeletedBytes += c.Entry.Size
		case Insert:
			s.Inserted++
			s.InsertedBytes += c.Entry.Size
		}
	}
	return s
}
