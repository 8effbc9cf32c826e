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

package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/kraklabs/datauri/pkg/datauri"
)

// noColor disables colors for the duration of a test.
func noColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	color.NoColor = false
	InitColors(false)
	if color.NoColor {
		t.Error("InitColors(false) must not disable colors")
	}

	InitColors(true)
	if !color.NoColor {
		t.Error("InitColors(true) must disable colors")
	}
}

func TestMessageHelpers(t *testing.T) {
	noColor(t)

	tests := []struct {
		name string
		fn   func(*bytes.Buffer)
		want string
	}{
		{"success", func(b *bytes.Buffer) { Successf(b, "Wrote %s", ".datauri.yaml") }, "✓ Wrote .datauri.yaml\n"},
		{"warning", func(b *bytes.Buffer) { Warningf(b, "%d skipped", 2) }, "⚠ 2 skipped\n"},
		{"info", func(b *bytes.Buffer) { Infof(b, "metrics on %s", ":9090") }, "ℹ metrics on :9090\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fn(&buf)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureLine(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	FailureLine(&buf, "logo.png", errors.New("boom"))
	if got, want := buf.String(), "✗ logo.png: boom\n"; got != want {
		t.Errorf("FailureLine() = %q, want %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	noColor(t)

	conv := datauri.New(datauri.Config{WorkDir: t.TempDir()})
	res, err := conv.EncodeAll(t.Context(), []string{"missing.png"}, nil)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	var buf bytes.Buffer
	Summary(&buf, res, 1500*time.Microsecond)
	if got, want := buf.String(), "⚠ 0 encoded, 1 failed in 2ms\n"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestTextHelpers(t *testing.T) {
	noColor(t)

	if got := DimText("a.png"); got != "a.png" {
		t.Errorf("DimText() = %q", got)
	}
	if got := CountText(42); got != "42" {
		t.Errorf("CountText() = %q", got)
	}
}
