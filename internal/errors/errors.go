// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the datauri CLI.
//
// This package defines UserError, a type that carries structured error information
// including what went wrong, why it happened, and how to fix it. It also defines
// consistent exit codes for different error categories.
//
// # Usage Example
//
// Converting an encoder failure and displaying it:
//
//	if _, err := conv.EncodeSingle(ctx, input, opts); err != nil {
//	    errors.FatalError(errors.FromEncodeError(err), false)
//	}
//
// # Formatted Output
//
// The Format() method provides colored terminal output:
//
//	err := errors.NewInputError(
//	    "Image is too large to inline",
//	    "logo.png is 204800 bytes, exceeding the limit of 131072 bytes",
//	    "Pass --force or raise --size-limit",
//	)
//	fmt.Fprint(os.Stderr, err.Format(false))
//	// Output (with colors):
//	// Error: Image is too large to inline
//	// Cause: logo.png is 204800 bytes, exceeding the limit of 131072 bytes
//	// Fix:   Pass --force or raise --size-limit
//
// For JSON output:
//
//	jsonData := err.ToJSON()
//	json.NewEncoder(os.Stderr).Encode(jsonData)
//	// Output:
//	// {
//	//   "error": "Image is too large to inline",
//	//   "cause": "logo.png is 204800 bytes, exceeding the limit of 131072 bytes",
//	//   "fix": "Pass --force or raise --size-limit",
//	//   "exit_code": 4
//	// }
//
// # Exit Codes
//
// The package defines semantic exit codes following Unix conventions:
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Configuration errors (missing/invalid config)
//   - ExitPartial (2): A batch finished but some inputs failed
//   - ExitNetwork (3): Network errors (bad status, timeout)
//   - ExitInput (4): Invalid input (bad arguments, rejected content)
//   - ExitPermission (5): Path escapes the working directory
//   - ExitNotFound (6): Local file not found
//   - ExitInternal (10): Internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing/invalid config files).
	ExitConfig = 1

	// ExitPartial indicates a batch that completed with at least one failed input.
	ExitPartial = 2

	// ExitNetwork indicates remote fetch errors (bad status, connection failed, timeout).
	ExitNetwork = 3

	// ExitInput indicates invalid input (bad arguments, content that cannot be inlined).
	ExitInput = 4

	// ExitPermission indicates a path rejected by the working-directory check.
	ExitPermission = 5

	// ExitNotFound indicates a local file that does not exist or cannot be read.
	ExitNotFound = 6

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	// Exit code 10 signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError is an error a person at a terminal can act on: what went wrong,
// why, and how to fix it, plus the process exit code.
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int

	// Err is the wrapped error, if any.
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: code, Err: err}
}

// NewConfigError reports an unreadable or invalid .datauri.yaml or
// DATAURI_* variable.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewPartialError reports a batch that completed with failed inputs. The
// per-input errors are expected to have been printed already.
func NewPartialError(msg, cause, fix string) *UserError {
	return newUserError(ExitPartial, msg, cause, fix, nil)
}

// NewInputError reports bad arguments or flag values.
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError reports a path that may not be read or written.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitPermission, msg, cause, fix, err)
}

// NewInternalError reports a bug, such as a panic recovered from a batch.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format renders e for the terminal, omitting empty Cause and Fix lines:
//
//	Error: Cannot download image
//	Cause: request for https://example.com/a.png timed out
//	Fix:   Raise --timeout or try again later
//
// Colors are off when noColor is set or NO_COLOR is present. The global
// color.NoColor is restored before returning.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON is the --json form of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints err to stderr and exits with its code. Errors that are
// not a UserError exit with ExitInternal. It does not return.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
