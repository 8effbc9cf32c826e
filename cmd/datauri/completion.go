// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	"github.com/kraklabs/datauri/internal/errors"
)

const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for datauri
# Installation:
#   source <(datauri completion bash)

_datauri_completion() {
    local cur commands
    commands="encode init completion"
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--config --json --no-color --quiet --verbose --version" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        encode)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force --size-limit --timeout --concurrency --rate-limit --metrics-addr --json" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -f -- ${cur}) )
            fi
            ;;
        init)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force-overwrite" -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _datauri_completion datauri
`

const zshCompletionTemplate = `#compdef datauri

# Zsh completion script for datauri
# Installation:
#   datauri completion zsh > "${fpath[1]}/_datauri"

_datauri() {
    local -a commands
    commands=(
        'encode:Encode files or URLs as data URIs'
        'init:Create .datauri.yaml configuration'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .datauri.yaml]:config file:_files -g "*.yaml"' \
        '--json[Machine-readable output]' \
        '--no-color[Disable colored output]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress progress and summaries]' \
        '*'{-v,--verbose}'[Increase log verbosity]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                encode)
                    _arguments \
                        '--force[Bypass the size limit]' \
                        '--size-limit[Maximum payload in bytes]:bytes:' \
                        '--timeout[Per-request timeout]:duration:' \
                        '--concurrency[Inputs encoded at once]:count:' \
                        '--rate-limit[Remote requests per second]:rate:' \
                        '--metrics-addr[Prometheus metrics address]:address:' \
                        '--json[Output as JSON]' \
                        '*:path or url:_files'
                    ;;
                init)
                    _arguments \
                        '--force-overwrite[Replace an existing .datauri.yaml]'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_datauri
`

const fishCompletionTemplate = `# Fish completion script for datauri
# Installation:
#   datauri completion fish > ~/.config/fish/completions/datauri.fish

complete -c datauri -f -n "__fish_use_subcommand" -a "encode" -d "Encode files or URLs as data URIs"
complete -c datauri -f -n "__fish_use_subcommand" -a "init" -d "Create .datauri.yaml configuration"
complete -c datauri -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

complete -c datauri -l version -d "Show version and exit"
complete -c datauri -l config -d "Path to .datauri.yaml" -r
complete -c datauri -l json -d "Machine-readable output"
complete -c datauri -l no-color -d "Disable colored output"
complete -c datauri -s q -l quiet -d "Suppress progress and summaries"
complete -c datauri -s v -l verbose -d "Increase log verbosity"

complete -c datauri -n "__fish_seen_subcommand_from encode" -l force -d "Bypass the size limit"
complete -c datauri -n "__fish_seen_subcommand_from encode" -l size-limit -d "Maximum payload in bytes" -r
complete -c datauri -n "__fish_seen_subcommand_from encode" -l timeout -d "Per-request timeout" -r
complete -c datauri -n "__fish_seen_subcommand_from encode" -l concurrency -d "Inputs encoded at once" -r
complete -c datauri -n "__fish_seen_subcommand_from encode" -l rate-limit -d "Remote requests per second" -r
complete -c datauri -n "__fish_seen_subcommand_from encode" -l metrics-addr -d "Prometheus metrics address" -r
complete -c datauri -n "__fish_seen_subcommand_from encode" -F

complete -c datauri -n "__fish_seen_subcommand_from init" -l force-overwrite -d "Replace an existing .datauri.yaml"

complete -c datauri -n "__fish_seen_subcommand_from completion" -f -a "bash zsh fish"
`

var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

// runCompletion writes the completion script for the shell named in args.
//
// Examples:
//
//	source <(datauri completion bash)
//	datauri completion fish | source
func runCompletion(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.NewInputError(
			"Missing shell name",
			"completion takes exactly one argument",
			"Run 'datauri completion bash', 'zsh' or 'fish'",
		)
	}
	script, ok := completionScripts[args[0]]
	if !ok {
		return errors.NewInputError(
			fmt.Sprintf("Unsupported shell: %s", args[0]),
			"Completion scripts exist for bash, zsh and fish",
			"Run 'datauri completion bash', 'zsh' or 'fish'",
		)
	}
	_, _ = io.WriteString(stdout, script)
	return nil
}
