// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treediff/internal/config"
	"github.com/tfctl/treediff/internal/log"
	"github.com/tfctl/treediff/internal/meta"
)

// InitApp builds the treediff command tree. The config file is loaded once
// here so that flag defaults can be sourced from it.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		// A broken config file should not block a diff. Flags still work.
		log.WithError(err).Warnf("ignoring config file")
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := diffCommandBuilder(meta)
	app.Commands = append(app.Commands,
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
