package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_accesskeeper() {
    local cur prev words cword
    _init_completion || return

    local commands="search add remove list diff history rotate keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        remove)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--force" -- "$cur"))
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save forget status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _accesskeeper accesskeeper
`

const zshCompletion = `#compdef accesskeeper

_accesskeeper() {
    local -a commands
    commands=(
        'search:Search credentials by pattern'
        'add:Add credentials and commit a new snapshot'
        'remove:Remove credentials matching a pattern'
        'list:Show all stored credentials'
        'diff:Preview pending changes without committing'
        'history:List committed snapshots'
        'rotate:Re-encrypt under a new passphrase'
        'keyring:Manage passphrase in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'accesskeeper commands' commands
            ;;
        args)
            case "${words[2]}" in
                remove)
                    _arguments '--force[Remove without confirmation]'
                    ;;
                keyring)
                    _values 'subcommand' save forget status
                    ;;
                help)
                    _describe -t commands 'accesskeeper commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_accesskeeper "$@"
`

const fishCompletion = `# accesskeeper fish completions

set -l commands search add remove list diff history rotate keyring help completion

complete -c accesskeeper -f

# Commands
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a search -d 'Search credentials'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add credentials'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a remove -d 'Remove credentials'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a list -d 'Show all credentials'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Preview pending changes'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a history -d 'List committed snapshots'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a rotate -d 'Re-encrypt with new passphrase'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage passphrase in OS keyring'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c accesskeeper -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# remove flags
complete -c accesskeeper -n "__fish_seen_subcommand_from remove" -l force -d 'Remove without confirmation'

# keyring subcommands
complete -c accesskeeper -n "__fish_seen_subcommand_from keyring" -a "save forget status"

# help completions
complete -c accesskeeper -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c accesskeeper -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
