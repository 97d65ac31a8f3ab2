// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for parkmenu
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_parkmenu()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "clean completion fetch serve --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t"

    case "$cmd" in
    fetch)
      local opts="$common --date -d --beverages -b --refresh -r"
            ;;
        serve)
            local opts="--host -H --port -p"
            ;;
        clean)
            local opts="--days --date -d"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _parkmenu parkmenu
`

const zshCompletionScript = `#compdef parkmenu

_parkmenu() {
  local -a cmds
  cmds=(
    'clean:evict stale cache files'
    'completion:generate shell completion script'
    'fetch:fetch dining venues and menus for a date'
    'serve:serve the menu browser web UI'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'parkmenu commands' cmds
    return
  fi

  case $words[2] in
    fetch)
      _arguments -C \
        $common \
        '(-d --date)'{-d,--date}'[park date]:date' \
        '(-b --beverages)'{-b,--beverages}'[report beverages]' \
        '(-r --refresh)'{-r,--refresh}'[purge cache first]'
      ;;
    serve)
      _arguments -C \
        '(-H --host)'{-H,--host}'[address to bind]:host' \
        '(-p --port)'{-p,--port}'[port to bind]:port'
      ;;
    clean)
      _arguments -C \
        '--days[evict files older than days]:days' \
        '(-d --date)'{-d,--date}'[remove files for one date]:date'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _parkmenu parkmenu
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: parkmenu completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "parkmenu completion [bash|zsh]",
		Action:    CompletionCommandAction,
	}
}
