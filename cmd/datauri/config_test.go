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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/datauri/internal/errors"
	"github.com/kraklabs/datauri/pkg/datauri"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Force = true
	cfg.Timeout = 3 * time.Second
	cfg.RateLimit = 2.5
	cfg.UserAgent = "bot/1"

	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 3s")

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("size_limit: 4096\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), cfg.SizeLimit)
	assert.Equal(t, datauri.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, datauri.DefaultConcurrency, cfg.Concurrency)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("size_limit: [oops\n"), 0600))

	tests := []struct {
		name string
		path string
	}{
		{"missing explicit file", filepath.Join(dir, "nope.yaml")},
		{"invalid yaml", bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			var ue *errors.UserError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, errors.ExitConfig, ue.ExitCode)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSizeLimit:   "1024",
		EnvTimeout:     "5s",
		EnvConcurrency: "3",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, int64(1024), cfg.SizeLimit)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestConfig_ApplyEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvSizeLimit, "lots"},
		{EnvSizeLimit, "-1"},
		{EnvTimeout, "soon"},
		{EnvConcurrency, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.applyEnv(func(k string) string {
				if k == tt.key {
					return tt.value
				}
				return ""
			})
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("concurrency: 4\n"), 0600))
	t.Setenv(EnvConcurrency, "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Concurrency)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero size limit", func(c *Config) { c.SizeLimit = 0 }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, false},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, false},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{Force: true, SizeLimit: 10, Timeout: time.Second, Concurrency: 2}
	assert.Equal(t, &datauri.Options{Force: true, SizeLimit: 10, Timeout: time.Second, Concurrency: 2}, cfg.Options())
}
