// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides machine-readable output for the datauri CLI.
//
// It complements the ui package (human-readable output) and the errors
// package (exit codes and error formatting).
//
// # Usage
//
// Print a batch in --json mode:
//
//	if err := output.Batch(os.Stdout, res, elapsed); err != nil {
//	    errors.FatalError(err, true)
//	}
//
// For error output (always goes to stderr):
//
//	if err := run(); err != nil {
//	    output.JSONError(err)
//	}
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kraklabs/datauri/pkg/datauri"
)

// JSON writes data as pretty-printed JSON to stdout.
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as pretty-printed JSON (2-space indentation) to w.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// BatchJSON is the --json document for an encode run. Results keeps the
// input order of the command line.
type BatchJSON struct {
	ID         string               `json:"id"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	DurationMS int64                `json:"duration_ms"`
	Results    *datauri.BatchResult `json:"results"`
}

// Batch writes res wrapped in a BatchJSON envelope to w.
func Batch(w io.Writer, res *datauri.BatchResult, elapsed time.Duration) error {
	return JSONTo(w, BatchJSON{
		ID:         res.ID,
		Succeeded:  res.Succeeded(),
		Failed:     res.Failed(),
		DurationMS: elapsed.Milliseconds(),
		Results:    res,
	})
}

// ErrorJSON represents an error in JSON format for machine consumption.
type ErrorJSON struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSONError writes err as JSON to stderr.
func JSONError(err error) error {
	return JSONErrorTo(os.Stderr, err)
}

// JSONErrorTo writes err as JSON to w. Encoder failures carry their kind
// name in the code field.
func JSONErrorTo(w io.Writer, err error) error {
	errObj := ErrorJSON{Error: err.Error()}
	if kind := datauri.KindOf(err); kind != datauri.KindUnknown {
		errObj.Code = kind.String()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(errObj); encErr != nil {
		return fmt.Errorf("JSON error encoding failed: %w", encErr)
	}
	return nil
}
