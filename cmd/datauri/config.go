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
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/datauri/internal/errors"
	"github.com/kraklabs/datauri/pkg/datauri"
)

// ConfigFileName is the per-directory configuration file.
const ConfigFileName = ".datauri.yaml"

// Environment variables overlaid on the configuration file.
const (
	EnvSizeLimit   = "DATAURI_SIZE_LIMIT"
	EnvTimeout     = "DATAURI_TIMEOUT"
	EnvConcurrency = "DATAURI_CONCURRENCY"
)

// Config is the on-disk configuration of the CLI.
type Config struct {
	Force       bool          `yaml:"force"`
	SizeLimit   int64         `yaml:"size_limit"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`

	// UserAgent is sent with remote requests. Empty uses the library default.
	UserAgent string `yaml:"user_agent,omitempty"`

	// RateLimit caps remote requests per second. 0 disables pacing.
	RateLimit float64 `yaml:"rate_limit"`

	// MetricsAddr serves Prometheus metrics at /metrics while encoding.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// DefaultConfig returns the configuration written by 'datauri init'.
func DefaultConfig() *Config {
	o := datauri.DefaultOptions()
	return &Config{
		SizeLimit:   o.SizeLimit,
		Timeout:     o.Timeout,
		Concurrency: o.Concurrency,
	}
}

// ConfigPath returns the configuration path for dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// LoadConfig reads the configuration and applies environment overrides.
//
// With an empty path, ./.datauri.yaml is used when present and defaults
// otherwise. An explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.NewConfigError("Cannot determine the current directory", err.Error(), "", err)
		}
		path = ConfigPath(cwd)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected config file
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError(
				"Cannot load datauri configuration",
				fmt.Sprintf("%s is not valid YAML", path),
				"Fix the file or run 'datauri init --force-overwrite'",
				err,
			)
		}
	case os.IsNotExist(err) && !explicit:
		// no config file; defaults apply
	default:
		return nil, errors.NewConfigError(
			"Cannot load datauri configuration",
			fmt.Sprintf("cannot read %s", path),
			"Check the --config path or run 'datauri init'",
			err,
		)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays DATAURI_* variables. Unset variables are ignored.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvSizeLimit); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return envError(EnvSizeLimit, v, "a positive number of bytes", err)
		}
		c.SizeLimit = n
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return envError(EnvTimeout, v, "a positive duration such as 20s", err)
		}
		c.Timeout = d
	}
	if v := getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return envError(EnvConcurrency, v, "an integer of at least 1", err)
		}
		c.Concurrency = n
	}
	return nil
}

func envError(name, value, want string, err error) error {
	return errors.NewConfigError(
		fmt.Sprintf("Invalid %s", name),
		fmt.Sprintf("%q is not %s", value, want),
		fmt.Sprintf("Unset %s or give it %s", name, want),
		err,
	)
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewInternalError("Cannot encode configuration", err.Error(), "", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.NewPermissionError(
			"Cannot write configuration",
			fmt.Sprintf("writing %s failed", path),
			"Check the directory permissions",
			err,
		)
	}
	return nil
}

// Options converts the configuration into encoder options.
func (c *Config) Options() *datauri.Options {
	return &datauri.Options{
		Force:       c.Force,
		SizeLimit:   c.SizeLimit,
		Timeout:     c.Timeout,
		Concurrency: c.Concurrency,
	}
}

// Validate rejects values the encoder would silently replace with defaults.
func (c *Config) Validate() error {
	switch {
	case c.SizeLimit <= 0:
		return errors.NewInputError("Invalid size limit", fmt.Sprintf("size limit must be positive, got %d", c.SizeLimit), "Use a value like 131072")
	case c.Timeout <= 0:
		return errors.NewInputError("Invalid timeout", fmt.Sprintf("timeout must be positive, got %s", c.Timeout), "Use a value like 20s")
	case c.Concurrency < 1:
		return errors.NewInputError("Invalid concurrency", fmt.Sprintf("concurrency must be at least 1, got %d", c.Concurrency), "Use a value like 10")
	case c.RateLimit < 0:
		return errors.NewInputError("Invalid rate limit", fmt.Sprintf("rate limit must not be negative, got %g", c.RateLimit), "Use 0 to disable pacing")
	}
	return nil
}
