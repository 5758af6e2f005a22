package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/meta"
)

const bashCompletionScript = `# bash completion for defunct
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_defunct()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "run show fetch ls rm diff purge completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--store --dir -d --hashed --bucket --prefix --region --profile --endpoint --redis-addr --redis-db --ttl --tldr"

    case "$cmd" in
        run)
            local opts="$store --cache-to -k --overwrite -f --compress -z --level --time -T --time-use"
            ;;
        show)
            local opts="$store --output -o --query -q --compressed -z"
            ;;
        fetch)
            local opts="$store --output -o --query -q --header -H --token --timeout --cache-to -k --overwrite -f --compress -z --level"
            ;;
        ls)
            local opts="--dir -d --output -o --attrs -a --color -c --filter -f --sort -s --titles -t --tldr"
            ;;
        rm)
            local opts="$store"
            ;;
        diff)
            local opts="$store --color -c --compressed -z"
            ;;
        purge)
            local opts="--hours --dir -d --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="--tldr"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "raw text json yaml" -- "$cur") )
            return 0
            ;;
        --store)
            COMPREPLY=( $(compgen -W "file s3 redis memory" -- "$cur") )
            return 0
            ;;
        --time-use)
            COMPREPLY=( $(compgen -W "display log display,log" -- "$cur") )
            return 0
            ;;
        --dir|-d)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    # Everything after the command of run belongs to the wrapped command.
    if [[ "$cmd" == "run" && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -c -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _defunct defunct
`

const zshCompletionScript = `#compdef defunct

_defunct() {
  local -a cmds
  cmds=(
    'run:run a command and cache its output'
    'show:print an artifact'
    'fetch:GET a URL and cache its body'
    'ls:list the artifacts in the cache dir'
    'rm:remove artifacts'
    'diff:diff two JSON artifacts'
    'purge:remove old artifacts from the cache dir'
    'completion:generate shell completion script'
  )

  local -a store
  store=(
  '--store[artifact store]:store:(file s3 redis memory)'
  '(-d --dir)'{-d,--dir}'[file store directory]:dir:_directories'
  '--hashed[hash file store keys]'
  '--bucket[S3 bucket]:bucket'
  '--prefix[key prefix]:prefix'
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[S3 endpoint]:url'
  '--redis-addr[redis host:port]:addr'
  '--redis-db[redis database]:db'
  '--ttl[redis expiry]:duration'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'defunct commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    run)
      _arguments -C \
        $store \
        '(-k --cache-to)'{-k,--cache-to}'[artifact key]:key' \
        '(-f --overwrite)'{-f,--overwrite}'[recompute and overwrite]' \
        '(-z --compress)'{-z,--compress}'[zstd compress the artifact]' \
        '--level[zstd level]:level' \
        '(-T --time)'{-T,--time}'[time the command]' \
        '--time-use[where timings go]:use:(display log display,log)' \
        '*::command:_normal'
      ;;
    show)
      _arguments -C \
        $store \
        '(-o --output)'{-o,--output}'[output format]:format:(raw text json yaml)' \
        '(-q --query)'{-q,--query}'[gjson path]:query' \
        '(-z --compressed)'{-z,--compressed}'[artifact is compressed]' \
        '1:key'
      ;;
    fetch)
      _arguments -C \
        $store \
        '(-o --output)'{-o,--output}'[output format]:format:(raw text json yaml)' \
        '(-q --query)'{-q,--query}'[gjson path]:query' \
        '*'{-H,--header}'[request header]:header' \
        '--token[bearer token]:token' \
        '--timeout[request timeout]:duration' \
        '(-k --cache-to)'{-k,--cache-to}'[artifact key]:key' \
        '(-f --overwrite)'{-f,--overwrite}'[refetch and overwrite]' \
        '(-z --compress)'{-z,--compress}'[zstd compress the artifact]' \
        '--level[zstd level]:level' \
        '1:url:_urls'
      ;;
    ls)
      _arguments -C \
        '(-d --dir)'{-d,--dir}'[directory]:dir:_directories' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-a --attrs)'{-a,--attrs}'[columns to show]:attrs' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '--tldr[show tldr page]'
      ;;
    rm)
      _arguments -C $store '*:key'
      ;;
    diff)
      _arguments -C \
        $store \
        '(-c --color)'{-c,--color}'[enable colored diff]' \
        '(-z --compressed)'{-z,--compressed}'[artifacts are compressed]' \
        '1:left key' '2:right key'
      ;;
    purge)
      _arguments -C \
        '--hours[age in hours]:hours' \
        '(-d --dir)'{-d,--dir}'[directory]:dir:_directories' \
        '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _defunct defunct
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL or print usage
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
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		fmt.Fprintln(stderr(cmd), "usage: defunct completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "defunct completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
