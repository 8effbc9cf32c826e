// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestUserError_Error verifies the Error() method implementation.
func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "with underlying error",
			err:  &UserError{Message: "Cannot download image", Err: fmt.Errorf("status 503")},
			want: "Cannot download image: status 503",
		},
		{
			name: "without underlying error",
			err:  &UserError{Message: "Invalid size limit"},
			want: "Invalid size limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UserError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExitCodes_Uniqueness verifies that every non-success category has its own code.
func TestExitCodes_Uniqueness(t *testing.T) {
	codes := []int{ExitConfig, ExitPartial, ExitNetwork, ExitInput, ExitPermission, ExitNotFound, ExitInternal}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c == ExitSuccess {
			t.Errorf("exit code %d collides with ExitSuccess", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitPartial != 2 {
		t.Errorf("ExitPartial = %d, want 2", ExitPartial)
	}
}

// TestConstructors verifies each constructor sets the expected exit code.
func TestConstructors(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name string
		err  *UserError
		want int
	}{
		{"NewConfigError", NewConfigError("m", "c", "f", cause), ExitConfig},
		{"NewPartialError", NewPartialError("m", "c", "f"), ExitPartial},
		{"NewInputError", NewInputError("m", "c", "f"), ExitInput},
		{"NewPermissionError", NewPermissionError("m", "c", "f", cause), ExitPermission},
		{"NewInternalError", NewInternalError("m", "c", "f", cause), ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ExitCode != tt.want {
				t.Errorf("ExitCode = %d, want %d", tt.err.ExitCode, tt.want)
			}
			if tt.err.Message != "m" || tt.err.Cause != "c" || tt.err.Fix != "f" {
				t.Errorf("fields not populated: %+v", tt.err)
			}
		})
	}
}

// TestUserError_Format verifies section layout with colors disabled.
func TestUserError_Format(t *testing.T) {
	err := NewInputError(
		"Image is too large to inline",
		"logo.png is 204800 bytes, exceeding the limit of 131072 bytes",
		"Pass --force or raise --size-limit",
	)

	got := err.Format(true)
	want := "Error: Image is too large to inline\n" +
		"Cause: logo.png is 204800 bytes, exceeding the limit of 131072 bytes\n" +
		"Fix:   Pass --force or raise --size-limit\n"
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}

	bare := (&UserError{Message: "only message"}).Format(true)
	if strings.Contains(bare, "Cause:") || strings.Contains(bare, "Fix:") {
		t.Errorf("empty sections should be omitted, got %q", bare)
	}
}

// TestUserError_ToJSON verifies the machine-readable form.
func TestUserError_ToJSON(t *testing.T) {
	err := NewInputError("No inputs given", "", "Pass a path or URL")

	data, marshalErr := json.Marshal(err.ToJSON())
	if marshalErr != nil {
		t.Fatalf("marshal: %v", marshalErr)
	}
	want := `{"error":"No inputs given","fix":"Pass a path or URL","exit_code":4}`
	if string(data) != want {
		t.Errorf("ToJSON() = %s, want %s", data, want)
	}
}
