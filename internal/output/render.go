// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v2"

	"github.com/tfctl/treediff/internal/differ"
	"github.com/tfctl/treediff/internal/log"
)

// Output formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the valid output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Banners bracketing text output.
const (
	StartBanner  = "Diffing..."
	FinishBanner = "Finished!"
)

// Options controls rendering.
type Options struct {
	Format  string
	Color   bool
	Summary bool
	Quiet   bool
	// NameA and NameB identify the listings in structured output.
	NameA, NameB string
}

// Renderer writes an edit script in one of the output formats.
type Renderer struct {
	w       io.Writer
	opts    Options
	palette palette
}

// New returns a Renderer writing to w, or os.Stdout if w is nil.
func New(w io.Writer, opts Options) (*Renderer, error) {
	if w == nil {
		w = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if !slices.Contains(Formats, opts.Format) {
		return nil, fmt.Errorf("unknown output format %q, must be one of %v", opts.Format, Formats)
	}

	r := &Renderer{w: w, opts: opts}
	if opts.Color && opts.Format == FormatText {
		r.palette = newPalette()
	}
	return r, nil
}

// banners reports whether the text banners are written.
func (r *Renderer) banners() bool {
	return r.opts.Format == FormatText && !r.opts.Quiet
}

// Start writes the opening banner. It is a no-op for structured formats.
func (r *Renderer) Start() error {
	if !r.banners() {
		return nil
	}
	_, err := fmt.Fprintln(r.w, StartBanner)
	return err
}

// Render writes res. In text form, every deleted entry is written as "-" and
// every inserted one as "+" followed by its display form. Matching entries
// only appear as hunk context, prefixed with a space.
func (r *Renderer) Render(res differ.Result) error {
	log.Debugf("rendering: format=%s color=%t summary=%t", r.opts.Format, r.opts.Color, r.opts.Summary)

	switch r.opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(NewDocument(res, r.opts), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(r.w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(NewDocument(res, r.opts))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = r.w.Write(data)
		return err
	}

	for c := range res.All() {
		line := c.Op.Prefix() + c.Entry.String()
		if _, err := fmt.Fprintln(r.w, r.palette.paint(c.Op, line)); err != nil {
			return err
		}
	}

	if r.opts.Summary {
		if _, err := fmt.Fprintln(r.w, Summary(res.Stats())); err != nil {
			return err
		}
	}

	if r.banners() {
		_, err := fmt.Fprintln(r.w, FinishBanner)
		return err
	}
	return nil
}

// Row is one change in structured output.
type Row struct {
	Op      differ.Op `json:"op" yaml:"op"`
	Line    int       `json:"line" yaml:"line"`
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size" yaml:"size"`
	Indent  int       `json:"indent" yaml:"indent"`
	Skipped bool      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Document is the structured form of an edit script.
type Document struct {
	A       string        `json:"a" yaml:"a"`
	B       string        `json:"b" yaml:"b"`
	Quantum int64         `json:"quantum" yaml:"quantum"`
	Changes []Row         `json:"changes" yaml:"changes"`
	Stats   *differ.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewDocument flattens res into a Document, hunk context included as equal
// rows. Stats are included with opts.Summary.
func NewDocument(res differ.Result, opts Options) Document {
	doc := Document{
		A:       opts.NameA,
		B:       opts.NameB,
		Quantum: res.Tolerance.Quantum,
		Changes: []Row{},
	}
	for c := range res.All() {
		doc.Changes = append(doc.Changes, Row{
			Op:      c.Op,
			Line:    c.Entry.Line,
			Path:    c.Entry.Path,
			Size:    c.Entry.Size,
			Indent:  c.Entry.Indent,
			Skipped: c.Entry.Skipped,
		})
	}
	if opts.Summary {
		s := res.Stats()
		doc.Stats = &s
	}
	return doc
}
