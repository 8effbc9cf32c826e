// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import "time"

const (
	// DefaultSizeLimit is the largest payload accepted without Force (128 KiB).
	DefaultSizeLimit int64 = 128 << 10

	// DefaultTimeout bounds each remote request phase.
	DefaultTimeout = 20 * time.Second

	// DefaultConcurrency is the group size of a batch.
	DefaultConcurrency = 10
)

// Options control a single Encode or EncodeSingle call.
//
// Options are passed by value and never stored; two concurrent calls with
// different options do not observe each other.
type Options struct {
	// Force bypasses the size gate.
	Force bool `json:"force" yaml:"force"`

	// SizeLimit is the maximum accepted payload in bytes. Values <= 0 mean
	// DefaultSizeLimit.
	SizeLimit int64 `json:"size_limit" yaml:"size_limit"`

	// Timeout is the deadline applied independently to the probe and to the
	// fetch of a remote input. Values <= 0 mean DefaultTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Concurrency is the number of inputs encoded at once in a batch.
	// Values < 1 are treated as 1.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// DefaultOptions returns the options used when a caller passes nil.
func DefaultOptions() Options {
	return Options{
		SizeLimit:   DefaultSizeLimit,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// normalize fills in defaults. A nil receiver yields DefaultOptions.
func (o *Options) normalize() Options {
	if o == nil {
		return DefaultOptions()
	}
	n := *o
	if n.SizeLimit <= 0 {
		n.SizeLimit = DefaultSizeLimit
	}
	if n.Timeout <= 0 {
		n.Timeout = DefaultTimeout
	}
	if n.Concurrency < 1 {
		n.Concurrency = 1
	}
	return n
}

// exceeds reports whether size fails the size gate under these options.
func (o Options) exceeds(size int64) bool {
	return !o.Force && size > o.SizeLimit
}
