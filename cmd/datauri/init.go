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
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/datauri/internal/errors"
	"github.com/kraklabs/datauri/internal/ui"
)

// runInit executes the 'init' command, writing a default .datauri.yaml.
//
// Flags:
//   - --force-overwrite: Replace an existing configuration file
//
// Examples:
//
//	datauri init
//	datauri --config ci/datauri.yaml init --force-overwrite
func runInit(args []string, configPath string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	overwrite := fs.Bool("force-overwrite", false, "Replace an existing configuration file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: datauri init [options]

Creates .datauri.yaml with the default encoder settings.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errors.NewInputError("Invalid arguments", err.Error(), "Run 'datauri init --help'")
	}

	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.NewConfigError("Cannot determine the current directory", err.Error(), "", err)
		}
		path = ConfigPath(cwd)
	}

	if _, err := os.Stat(path); err == nil && !*overwrite {
		return errors.NewConfigError(
			"Configuration already exists",
			fmt.Sprintf("%s is present", path),
			"Pass --force-overwrite to replace it",
			nil,
		)
	}

	if err := SaveConfig(DefaultConfig(), path); err != nil {
		return err
	}
	ui.Successf(stdout, "Wrote %s", path)
	return nil
}
