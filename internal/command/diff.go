// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treediff/internal/differ"
	"github.com/tfctl/treediff/internal/listing"
	"github.com/tfctl/treediff/internal/log"
	"github.com/tfctl/treediff/internal/meta"
	"github.com/tfctl/treediff/internal/output"
	"github.com/tfctl/treediff/internal/source"
)

// diffCommandAction is the action handler for the root command. It reads
// both listings fully, diffs them and renders the edit script.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing diff for %v (config=%s)", meta.Args, meta.Config.Source)

	nameA, nameB, err := listingNames(cmd)
	if err != nil {
		return err
	}

	width := int(cmd.Int("indent-width"))
	if width < 1 {
		return fmt.Errorf("--indent-width must be at least 1, got %d", width)
	}
	parseOpts := []listing.Option{listing.WithIndentWidth(width)}

	srcOpts := []source.Option{
		source.WithProfile(cmd.String("aws-profile")),
		source.WithRegion(cmd.String("aws-region")),
	}
	if r := cmd.Root().Reader; r != nil && r != os.Stdin {
		srcOpts = append(srcOpts, source.WithStdin(r, nil))
	}

	a, err := loadListing(ctx, nameA, srcOpts, parseOpts)
	if err != nil {
		return err
	}
	b, err := loadListing(ctx, nameB, srcOpts, parseOpts)
	if err != nil {
		return err
	}

	r, err := output.New(cmd.Root().Writer, output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Summary: cmd.Bool("summary"),
		Quiet:   cmd.Bool("quiet"),
		NameA:   nameA,
		NameB:   nameB,
	})
	if err != nil {
		return err
	}

	if err := r.Start(); err != nil {
		return err
	}

	res := differ.Diff(a, b,
		differ.WithQuantum(int64(cmd.Int("quantum"))),
		differ.WithContext(int(cmd.Int("context"))),
	)

	return r.Render(res)
}

// listingNames returns the two positional listing names.
func listingNames(cmd *cli.Command) (string, string, error) {
	args := cmd.Args().Slice()
	if raw := GetMeta(cmd).Args; slices.Contains(raw, source.Stdin) {
		// The flag parser can swallow a leading "-", so take the positionals
		// from the raw command line instead.
		args = positionals(raw, cmd.Flags)
	}

	switch {
	case len(args) < 1:
		return "", "", errors.New("need filename A")
	case len(args) < 2:
		return "", "", errors.New("need filename B")
	case len(args) > 2:
		return "", "", fmt.Errorf("expected two listings, got %d arguments", len(args))
	}

	a, b := args[0], args[1]
	if a == source.Stdin && b == source.Stdin {
		return "", "", errors.New("only one listing can be read from stdin")
	}
	return a, b, nil
}

// positionals returns the non-flag arguments of a raw command line, the
// program name excluded. Flags other than booleans consume the following
// argument unless written as --name=value. Everything after "--" is
// positional; "-" on its own is positional.
func positionals(raw []string, flags []cli.Flag) []string {
	takesValue := map[string]bool{}
	for _, f := range flags {
		_, isBool := f.(*cli.BoolFlag)
		for _, n := range f.Names() {
			takesValue[n] = !isBool
		}
	}

	var out []string
	for i := 1; i < len(raw); i++ {
		a := raw[i]
		switch {
		case a == "--":
			return append(out, raw[i+1:]...)
		case a == source.Stdin || !strings.HasPrefix(a, "-"):
			out = append(out, a)
		case strings.Contains(a, "="):
		case takesValue[strings.TrimLeft(a, "-")]:
			i++
		}
	}
	return out
}

// loadListing opens and parses one listing. Parse errors are prefixed with
// the listing name.
func loadListing(ctx context.Context, name string, srcOpts []source.Option, parseOpts []listing.Option) ([]listing.Entry, error) {
	rc, err := source.Open(ctx, name, srcOpts...)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	entries, err := listing.Read(ctx, rc, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Infof("loaded %s: %d entries", name, len(entries))
	return entries, nil
}

// diffCommandBuilder constructs the root command.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "treediff",
		Usage:     "diff two tree listings, tolerating block-quantum size drift",
		UsageText: "treediff [options] <listingA> <listingB>",
		ArgsUsage: "<listingA> <listingB>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewDiffFlags(meta.Config.Source),
		Action: diffCommandAction,
	}
}
