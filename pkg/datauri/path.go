// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceKind tells the orchestrator which resolver handles an input.
type SourceKind int

const (
	// SourceLocal inputs are file-system paths.
	SourceLocal SourceKind = iota
	// SourceRemote inputs are http:// or https:// URLs.
	SourceRemote
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Classify returns SourceRemote when input starts with http:// or https://
// (case-insensitive) and SourceLocal otherwise.
func Classify(input string) SourceKind {
	if hasPrefixFold(input, "http://") || hasPrefixFold(input, "https://") {
		return SourceRemote
	}
	return SourceLocal
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// ValidateLocalPath validates input against the process working directory.
// See ValidateLocalPathIn.
func ValidateLocalPath(input string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", newError(KindPathSecurityViolation, input, fmt.Errorf("resolve working directory: %w", err))
	}
	return ValidateLocalPathIn(input, wd)
}

// ValidateLocalPathIn cleans input lexically and rejects it with
// ErrPathSecurityViolation when:
//   - the cleaned path still contains a ".." segment, or
//   - it is relative and, joined with workDir, lands outside workDir.
//
// Absolute paths are returned cleaned but otherwise unchecked: an absolute
// path is explicit caller intent. Callers accepting untrusted input must
// filter absolute paths themselves.
//
// Relative paths are returned joined with workDir.
func ValidateLocalPathIn(input, workDir string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", newError(KindPathSecurityViolation, input, fmt.Errorf("empty path"))
	}

	cleaned := filepath.Clean(input)
	if hasParentSegment(cleaned) {
		return "", newError(KindPathSecurityViolation, input, fmt.Errorf("path contains a parent directory segment"))
	}

	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}

	base, err := filepath.Abs(workDir)
	if err != nil {
		return "", newError(KindPathSecurityViolation, input, fmt.Errorf("resolve working directory: %w", err))
	}
	resolved := filepath.Join(base, cleaned)
	if !within(base, resolved) {
		return "", newError(KindPathSecurityViolation, input, fmt.Errorf("path resolves outside %s", base))
	}
	return resolved, nil
}

func hasParentSegment(p string) bool {
	segments := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	for _, s := range segments {
		if s == ".." {
			return true
		}
	}
	return false
}

// within reports whether target equals base or lives below it.
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
