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

// Package main implements the datauri CLI, which turns local image files
// and remote image URLs into base64 data URIs.
//
// Usage:
//
//	datauri encode <path-or-url>...   Print data URIs
//	datauri init                      Create .datauri.yaml
//	datauri completion bash|zsh|fish  Print a shell completion script
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/datauri/internal/errors"
	"github.com/kraklabs/datauri/internal/output"
	"github.com/kraklabs/datauri/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds flags accepted before the command name.
type GlobalFlags struct {
	// JSON switches output to machine-readable documents. It implies Quiet.
	JSON bool
	// Quiet suppresses progress and summaries.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// Verbose raises log verbosity: 1 for info, 2 or more for debug.
	Verbose int
}

const usage = `datauri - inline images as data URIs

Usage:
  datauri [global options] <command> [options]

Commands:
  encode        Encode files or URLs as data URIs
  init          Create .datauri.yaml configuration
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
  --config      Path to .datauri.yaml
  --json        Machine-readable output
  --no-color    Disable colored output
  -q, --quiet   Suppress progress and summaries
  -v, --verbose Increase log verbosity (repeatable)
  --version     Show version and exit

Examples:
  datauri encode assets/logo.png
  datauri encode --size-limit 262144 a.png https://example.com/b.svg
  datauri --json encode icons/*.png
  datauri init

Environment Variables:
  DATAURI_SIZE_LIMIT    Size limit in bytes
  DATAURI_TIMEOUT       Per-request timeout (e.g. 20s)
  DATAURI_CONCURRENCY   Inputs encoded at once

For detailed command help: datauri <command> --help
`

func main() {
	var (
		globals     GlobalFlags
		configPath  string
		showVersion bool
	)

	fs := flag.NewFlagSet("datauri", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.StringVar(&configPath, "config", "", "Path to .datauri.yaml (default: ./.datauri.yaml)")
	fs.BoolVar(&globals.JSON, "json", false, "Machine-readable output")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and summaries")
	fs.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity")
	fs.BoolVar(&showVersion, "version", false, "Show version and exit")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(errors.ExitSuccess)
		}
		os.Exit(errors.ExitInput)
	}

	if showVersion {
		if globals.JSON {
			_ = output.JSON(map[string]string{"version": version, "commit": commit, "date": date})
			os.Exit(errors.ExitSuccess)
		}
		fmt.Printf("datauri version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(errors.ExitSuccess)
	}

	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor || os.Getenv("NO_COLOR") != "")
	slog.SetDefault(newLogger(os.Stderr, globals))

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	command, cmdArgs := args[0], args[1:]

	var err error
	switch command {
	case "encode":
		err = runEncode(cmdArgs, configPath, &globals, os.Stdout, os.Stderr)
	case "init":
		err = runInit(cmdArgs, configPath, os.Stdout)
	case "completion":
		err = runCompletion(cmdArgs, os.Stdout)
	default:
		if globals.JSON {
			_ = output.JSONError(fmt.Errorf("unknown command: %s", command))
			os.Exit(errors.ExitInput)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
}

// newLogger builds the stderr text logger. Verbosity maps to warn, info and
// debug; quiet mode keeps errors only.
func newLogger(w io.Writer, globals GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case globals.Verbose >= 2:
		level = slog.LevelDebug
	case globals.Verbose == 1:
		level = slog.LevelInfo
	case globals.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
