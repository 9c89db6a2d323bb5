// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for treediff's optional
// user configuration. The configuration is a YAML document named
// treediff.yaml located in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/treediff.yaml or $HOME/.config/treediff.yaml
//   - macOS: $HOME/Library/Application Support/treediff.yaml
//   - Windows: %APPDATA%/treediff.yaml
//
// TREEDIFF_CFG_FILE overrides the location. A typical file:
//
//	quantum: 3584
//	indent_width: 4
//	color:
//	  delete: "#d70000"
//	  insert: "#00af00"
//	sets:
//	  exfat: ["--quantum 3584", "--summary"]
package config
