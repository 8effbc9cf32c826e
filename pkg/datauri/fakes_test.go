// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
)

// fakeFiles is an in-memory FileAccess keyed by base name.
type fakeFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	sizeErr map[string]error
	readErr map[string]error
	reads   map[string]int

	// delay is slept inside Size, where batch tests measure overlap.
	delay time.Duration
	// onSize runs before Size returns; batch tests use it to observe or panic.
	onSize func(name string)
}

func newFakeFiles(files map[string][]byte) *fakeFiles {
	return &fakeFiles{
		files:   files,
		sizeErr: map[string]error{},
		readErr: map[string]error{},
		reads:   map[string]int{},
	}
}

func (f *fakeFiles) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[filepath.Base(path)]
	return ok
}

func (f *fakeFiles) Size(path string) (int64, error) {
	name := filepath.Base(path)
	if f.onSize != nil {
		f.onSize(name)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.sizeErr[name]; err != nil {
		return 0, err
	}
	return int64(len(f.files[name])), nil
}

func (f *fakeFiles) ReadAll(path string) ([]byte, error) {
	name := filepath.Base(path)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[name]++
	if err := f.readErr[name]; err != nil {
		return nil, err
	}
	return f.files[name], nil
}

func (f *fakeFiles) MediaTypeForPath(path string) string {
	return MediaTypeByExtension(filepath.Ext(path))
}

func (f *fakeFiles) readCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[name]
}

// fakeTransport serves canned responses and counts calls.
type fakeTransport struct {
	mu       sync.Mutex
	probe    func(ctx context.Context, url string) (*ProbeResponse, error)
	fetch    func(ctx context.Context, url string) (*FetchResponse, error)
	probes   int
	fetches  int
	deadline []time.Time
}

func (f *fakeTransport) Probe(ctx context.Context, url string) (*ProbeResponse, error) {
	f.mu.Lock()
	f.probes++
	if d, ok := ctx.Deadline(); ok {
		f.deadline = append(f.deadline, d)
	}
	f.mu.Unlock()
	return f.probe(ctx, url)
}

func (f *fakeTransport) Fetch(ctx context.Context, url string) (*FetchResponse, error) {
	f.mu.Lock()
	f.fetches++
	if d, ok := ctx.Deadline(); ok {
		f.deadline = append(f.deadline, d)
	}
	f.mu.Unlock()
	if f.fetch == nil {
		return nil, errors.New("unexpected fetch")
	}
	return f.fetch(ctx, url)
}

func (f *fakeTransport) counts() (probes, fetches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probes, f.fetches
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConverter(files FileAccess, transport Transport) *Converter {
	return New(Config{
		Files:     files,
		Transport: transport,
		Logger:    discardLogger(),
		WorkDir:   "/work",
	})
}
