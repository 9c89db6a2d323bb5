// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tfctl/treediff/internal/log"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// ErrInteractive is returned when a listing would be read from a terminal.
var ErrInteractive = errors.New("refusing to read a listing from an interactive terminal")

// options holds optional overrides for opening sources.
type options struct {
	profile     string
	region      string
	stdin       io.Reader
	interactive func() bool
	s3          func(context.Context, options) (GetObjectAPI, error)
}

// Option customizes how sources are opened.
type Option func(*options)

// WithProfile sets the AWS shared config profile used for s3:// sources.
// Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the AWS region used for s3:// sources. Defaults to
// env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithStdin replaces standard input. interactive reports whether r is a
// terminal; nil means never.
func WithStdin(r io.Reader, interactive func() bool) Option {
	return func(o *options) {
		o.stdin = r
		o.interactive = interactive
	}
}

// WithS3Client injects the client used for s3:// sources.
func WithS3Client(c GetObjectAPI) Option {
	return func(o *options) {
		o.s3 = func(context.Context, options) (GetObjectAPI, error) { return c, nil }
	}
}

func newOptions(opts []Option) options {
	o := options{
		stdin: os.Stdin,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		s3: newS3Client,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open returns a reader for the named listing. The caller must close it.
func Open(ctx context.Context, name string, opts ...Option) (io.ReadCloser, error) {
	o := newOptions(opts)

	switch {
	case name == "":
		return nil, errors.New("empty listing name")
	case name == Stdin:
		if o.interactive != nil && o.interactive() {
			return nil, ErrInteractive
		}
		log.Debugf("reading listing from stdin")
		return io.NopCloser(o.stdin), nil
	case strings.HasPrefix(name, s3Scheme):
		return openS3(ctx, name, o)
	default:
		return openFile(name)
	}
}

func openFile(name string) (io.ReadCloser, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("listing %s must be readable: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("listing %s is a directory", name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("listing %s must be readable: %w", name, err)
	}
	log.Debugf("opened listing: path=%s size=%d", name, info.Size())
	return f, nil
}
