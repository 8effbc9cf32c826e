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

// Package ui provides terminal output helpers for the datauri CLI.
//
// Colors respect the --no-color flag and the NO_COLOR environment variable,
// and are disabled automatically when the output is not a TTY.
//
// Color usage:
//   - Red: failed inputs
//   - Yellow: warnings
//   - Green: successful inputs
//   - Cyan: counts and informational messages
//   - Dim: inputs and secondary details
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/kraklabs/datauri/pkg/datauri"
)

// Pre-configured color instances for consistent CLI output.
var (
	// Red is used for failures.
	Red = color.New(color.FgRed)

	// Yellow is used for warnings.
	Yellow = color.New(color.FgYellow)

	// Green is used for successes.
	Green = color.New(color.FgGreen)

	// Cyan is used for counts and informational messages.
	Cyan = color.New(color.FgCyan)

	// Dim is used for inputs and secondary details.
	Dim = color.New(color.Faint)
)

// InitColors configures global color output. Call it right after flag
// parsing so every helper honors --no-color.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Successf writes a green message with a checkmark prefix.
//
// Example output: "✓ Wrote .datauri.yaml"
func Successf(w io.Writer, format string, args ...any) {
	_, _ = Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warningf writes a yellow message with a warning symbol prefix.
func Warningf(w io.Writer, format string, args ...any) {
	_, _ = Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Infof writes a cyan message with an info symbol prefix.
func Infof(w io.Writer, format string, args ...any) {
	_, _ = Cyan.Fprintf(w, "ℹ "+format+"\n", args...)
}

// DimText returns a dim-formatted string for less important text.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan-formatted count value.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// FailureLine writes one failed input to w.
//
// Example output: "✗ logo.png: file "logo.png" does not exist or is not readable"
func FailureLine(w io.Writer, input string, err error) {
	_, _ = fmt.Fprintf(w, "%s %s %s\n", Red.Sprint("✗"), DimText(input+":"), err)
}

// Summary writes the closing line of a batch.
//
// Example output: "✓ 4 encoded, 1 failed in 120ms"
func Summary(w io.Writer, res *datauri.BatchResult, elapsed time.Duration) {
	mark, c := Green.Sprint("✓"), Green
	if res.Failed() > 0 {
		mark, c = Yellow.Sprint("⚠"), Yellow
	}
	_, _ = fmt.Fprintf(w, "%s %s encoded, %s in %s\n",
		mark,
		CountText(res.Succeeded()),
		c.Sprintf("%d failed", res.Failed()),
		elapsed.Round(time.Millisecond),
	)
}
