// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import "context"

// Callback receives the outcome of EncodeCallback. results is nil when err
// is non-nil.
type Callback func(err error, results map[string]Result)

// EncodeCallback runs EncodeAll and reports through cb.
//
// Deprecated: use Converter.EncodeAll. EncodeCallback only adapts the result
// for callers written against callback-style APIs and will be removed.
func (c *Converter) EncodeCallback(ctx context.Context, inputs []string, opts *Options, cb Callback) {
	res, err := c.EncodeAll(ctx, inputs, opts)
	if err != nil {
		cb(err, nil)
		return
	}
	cb(nil, res.Map())
}

// EncodeCallback runs the package-level EncodeAll and reports through cb.
//
// Deprecated: use EncodeAll.
func EncodeCallback(ctx context.Context, inputs []string, opts *Options, cb Callback) {
	defaultConverter().EncodeCallback(ctx, inputs, opts, cb)
}
