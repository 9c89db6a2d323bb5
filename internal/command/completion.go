// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treediff/internal/meta"
)

const bashCompletionScript = `# bash completion for treediff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_treediff()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local opts="--aws-profile --aws-region --color -c --context --indent-width --output -o --quantum --quiet -q --summary -s --help --version"

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "completion" -- "$cur") $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ "${COMP_WORDS[1]}" == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
    fi

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --quantum|--indent-width|--context|--aws-profile|--aws-region)
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Listings are plain files
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -o filenames -F _treediff treediff
`

const zshCompletionScript = `#compdef treediff

_treediff() {
  if [[ $words[2] == completion ]]; then
    _arguments '2: :((bash zsh))'
    return
  fi

  _arguments -s \
    '--aws-profile[AWS profile for s3:// listings]:profile' \
    '--aws-region[AWS region for s3:// listings]:region' \
    '(-c --color)'{-c,--color}'[enable colored text output]' \
    '--context[matching entries kept around each change]:count' \
    '--indent-width[columns per nesting level]:width' \
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
    '--quantum[tolerated size drift in bytes]:bytes' \
    '(-q --quiet)'{-q,--quiet}'[omit banners]' \
    '(-s --summary)'{-s,--summary}'[print change counts and byte totals]' \
    '1:listing A:_files' \
    '2:listing B:_files'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _treediff treediff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: treediff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "treediff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
