// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input of a batch: Data on success, Err on
// failure, never both.
type Result struct {
	Data string
	Err  error
}

// OK reports success.
func (r Result) OK() bool { return r.Err == nil }

type resultErrorJSON struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Size    int64  `json:"size,omitempty"`
	Limit   int64  `json:"limit,omitempty"`
	Status  int    `json:"status,omitempty"`
}

type resultJSON struct {
	Data  string           `json:"data,omitempty"`
	Error *resultErrorJSON `json:"error,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Data: r.Data}
	if r.Err != nil {
		e := &resultErrorJSON{Kind: KindOf(r.Err), Message: r.Err.Error()}
		var de *Error
		if errors.As(r.Err, &de) {
			e.Size, e.Limit, e.Status = de.Size, de.Limit, de.StatusCode
		}
		out = resultJSON{Error: e}
	}
	return json.Marshal(out)
}

// BatchResult maps each distinct input to its Result, iterating in order of
// first occurrence.
type BatchResult struct {
	// ID identifies the batch in logs.
	ID string

	keys    []string
	results []Result
	index   map[string]int
}

func newBatchResult(inputs []string) *BatchResult {
	b := &BatchResult{
		ID:    uuid.NewString(),
		index: make(map[string]int, len(inputs)),
	}
	for _, in := range inputs {
		if _, seen := b.index[in]; seen {
			continue
		}
		b.index[in] = len(b.keys)
		b.keys = append(b.keys, in)
	}
	b.results = make([]Result, len(b.keys))
	return b
}

// Len returns the number of distinct inputs.
func (b *BatchResult) Len() int { return len(b.keys) }

// Keys returns the distinct inputs in first-occurrence order.
func (b *BatchResult) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Get returns the result for input.
func (b *BatchResult) Get(input string) (Result, bool) {
	i, ok := b.index[input]
	if !ok {
		return Result{}, false
	}
	return b.results[i], true
}

// Each calls fn for every entry in order.
func (b *BatchResult) Each(fn func(input string, res Result)) {
	for i, k := range b.keys {
		fn(k, b.results[i])
	}
}

// Failed counts entries with an error.
func (b *BatchResult) Failed() int {
	n := 0
	for _, r := range b.results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded counts entries with data.
func (b *BatchResult) Succeeded() int { return b.Len() - b.Failed() }

// Map copies the results into an unordered map.
func (b *BatchResult) Map() map[string]Result {
	m := make(map[string]Result, len(b.keys))
	b.Each(func(input string, res Result) { m[input] = res })
	return m
}

// MarshalJSON writes an object whose keys follow first-occurrence order.
func (b *BatchResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.results[i])
		if err != nil {
			return nil, fmt.Errorf("marshal result for %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeAll encodes every distinct input and records a Result per input.
//
// Inputs are deduplicated by exact string equality and processed in
// consecutive groups of opts.Concurrency. All members of a group run
// concurrently; the next group starts only after the whole group has
// settled. A failing input never affects another input's entry.
//
// The returned error is non-nil only when per-input processing panicked.
func (c *Converter) EncodeAll(ctx context.Context, inputs []string, opts *Options) (*BatchResult, error) {
	o := opts.normalize()
	br := newBatchResult(inputs)
	start := time.Now()

	c.logger.Info("datauri.batch.start",
		"batch_id", br.ID,
		"inputs", len(inputs),
		"distinct", br.Len(),
		"concurrency", o.Concurrency,
	)

	for lo := 0; lo < br.Len(); lo += o.Concurrency {
		hi := min(lo+o.Concurrency, br.Len())
		if err := c.runGroup(ctx, br, lo, hi, o); err != nil {
			c.logger.Error("datauri.batch.abort", "batch_id", br.ID, "err", err)
			return nil, err
		}
		recordGroup()
		c.logger.Debug("datauri.group.done", "batch_id", br.ID, "from", lo, "to", hi)
	}

	c.logger.Info("datauri.batch.complete",
		"batch_id", br.ID,
		"succeeded", br.Succeeded(),
		"failed", br.Failed(),
		"duration", time.Since(start),
	)
	return br, nil
}

// runGroup encodes br.keys[lo:hi] concurrently. Each goroutine writes only
// its own slot of br.results.
func (c *Converter) runGroup(ctx context.Context, br *BatchResult, lo, hi int, o Options) error {
	var g errgroup.Group
	for i := lo; i < hi; i++ {
		g.Go(func() (err error) {
			input := br.keys[i]
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("encode %q: panic: %v", input, r)
				}
			}()

			uri, encErr := c.encodeOne(ctx, input, o)
			res := Result{Data: uri, Err: encErr}
			br.results[i] = res
			if c.onSettled != nil {
				c.onSettled(input, res)
			}
			return nil
		})
	}
	return g.Wait()
}
