// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/treediff/internal/cacheutil"
	"github.com/tfctl/treediff/internal/command"
	"github.com/tfctl/treediff/internal/config"
	"github.com/tfctl/treediff/internal/log"
	"github.com/tfctl/treediff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(w io.Writer, args []string) bool {
	for _, a := range args[min(1, len(args)):] {
		if a == "--" {
			return false
		}
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// processSets expands every @name argument into the flags stored under
// sets.name in the config file. Each configured item is split on whitespace
// so "--output json" becomes two arguments. An @ argument naming no set is
// kept as is, so listings like @2024.txt still work. Nothing after "--" is
// expanded.
func processSets(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if i == 0 || len(a) < 2 || !strings.HasPrefix(a, "@") {
			out = append(out, a)
			continue
		}

		set := a[1:]
		items, err := config.GetStringSlice("sets." + set)
		if err != nil {
			log.Debugf("no set %s, keeping argument: %v", set, err)
			out = append(out, a)
			continue
		}
		for _, item := range items {
			out = append(out, strings.Fields(item)...)
		}
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Drop cached remote listings older than cache.purge_hours.
	if hours, _ := config.GetInt("cache.purge_hours", 0); hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(os.Stdout, args) {
		return 0
	}

	args = processSets(args)
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}
