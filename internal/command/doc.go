// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI for treediff. It wires flags, config file
// sources, validators, the diff action and shell completion.
package command
