// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/treediff/internal/differ"
	"github.com/tfctl/treediff/internal/listing"
	"github.com/tfctl/treediff/internal/output"
)

// NewDiffFlags returns the flags of the root command. When cfgFile is set,
// flags that have a config key fall back to it after the environment.
func NewDiffFlags(cfgFile string) (flags []cli.Flag) {
	quantum := &cli.IntFlag{
		Name:  "quantum",
		Usage: "size drift in bytes tolerated between matching entries, 0 for exact sizes",
		Value: differ.DefaultQuantum,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TREEDIFF_QUANTUM"),
		),
	}

	indentWidth := &cli.IntFlag{
		Name:  "indent-width",
		Usage: "columns per nesting level in the listings",
		Value: listing.DefaultIndentWidth,
	}

	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   output.FormatText,
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	if cfgFile != "" {
		ConfigFileSource(&quantum.Sources, "quantum", cfgFile)
		ConfigFileSource(&indentWidth.Sources, "indent_width", cfgFile)
		ConfigFileSource(&outputFlag.Sources, "output", cfgFile)
	}

	flags = []cli.Flag{
		quantum,
		indentWidth,
		outputFlag,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:  "context",
			Usage: "matching entries shown around each change",
			Value: 0,
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "omit the Diffing.../Finished! banners",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "summary",
			Aliases: []string{"s"},
			Usage:   "print change counts and byte totals",
			Value:   false,
		},
		&cli.StringFlag{
			Name:  "aws-profile",
			Usage: "AWS profile for s3:// listings",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		&cli.StringFlag{
			Name:  "aws-region",
			Usage: "AWS region for s3:// listings",
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "treediff version info",
			HideDefault: true,
		},
	}

	return
}

// ConfigFileSource appends the YAML config file value at key to chain.
func ConfigFileSource(chain *cli.ValueSourceChain, key string, path string) {
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
}
