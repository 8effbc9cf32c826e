// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config holds the collaborators of a Converter. Zero values select the
// defaults.
type Config struct {
	// Files defaults to OSFiles.
	Files FileAccess

	// Transport defaults to NewHTTPTransport(HTTPConfig{}).
	Transport Transport

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// WorkDir anchors relative local paths. Empty means the process working
	// directory at call time.
	WorkDir string

	// OnSettled, when set, is called once per input of a batch as soon as
	// that input has finished. It runs on the input's goroutine and must be
	// safe for concurrent use.
	OnSettled func(input string, res Result)
}

// Converter turns paths and URLs into data URIs. A Converter holds no
// per-call state and is safe for concurrent use.
type Converter struct {
	files     FileAccess
	transport Transport
	logger    *slog.Logger
	workDir   string
	onSettled func(string, Result)
}

// New creates a Converter.
func New(cfg Config) *Converter {
	c := &Converter{
		files:     cfg.Files,
		transport: cfg.Transport,
		logger:    cfg.Logger,
		workDir:   cfg.WorkDir,
		onSettled: cfg.OnSettled,
	}
	if c.files == nil {
		c.files = OSFiles{}
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(HTTPConfig{})
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Payload is a resolved input before encoding.
type Payload struct {
	Data      []byte
	MediaType string
}

// Resolve runs every gate for input and returns the bytes and media type
// that EncodeSingle would encode.
func (c *Converter) Resolve(ctx context.Context, input string, opts *Options) (*Payload, error) {
	return c.resolve(ctx, input, opts.normalize())
}

// EncodeSingle encodes one path or URL. Failures are returned as *Error.
func (c *Converter) EncodeSingle(ctx context.Context, input string, opts *Options) (string, error) {
	return c.encodeOne(ctx, input, opts.normalize())
}

func (c *Converter) resolve(ctx context.Context, input string, o Options) (*Payload, error) {
	switch Classify(input) {
	case SourceLocal:
		return c.resolveLocal(input, o)
	case SourceRemote:
		return c.resolveRemote(ctx, input, o)
	}
	return nil, fmt.Errorf("unhandled source kind for %q", input)
}

func (c *Converter) encodeOne(ctx context.Context, input string, o Options) (string, error) {
	start := time.Now()
	source := Classify(input)

	var uri string
	p, err := c.resolve(ctx, input, o)
	if err == nil {
		uri, err = Encode(p.Data, p.MediaType)
	}

	size := 0
	if p != nil {
		size = len(p.Data)
	}
	recordEncode(source, size, err, time.Since(start))

	if err != nil {
		c.logger.Debug("datauri.encode.error",
			"input", input,
			"source", source.String(),
			"kind", KindOf(err).String(),
			"err", err,
		)
		return "", err
	}
	c.logger.Debug("datauri.encode.ok",
		"input", input,
		"source", source.String(),
		"media_type", p.MediaType,
		"bytes", size,
	)
	return uri, nil
}

var defaultConverter = sync.OnceValue(func() *Converter { return New(Config{}) })

// EncodeSingle encodes one input with a Converter using OSFiles and a default
// HTTPTransport.
func EncodeSingle(ctx context.Context, input string, opts *Options) (string, error) {
	return defaultConverter().EncodeSingle(ctx, input, opts)
}

// EncodeAll encodes a batch with a Converter using OSFiles and a default
// HTTPTransport.
func EncodeAll(ctx context.Context, inputs []string, opts *Options) (*BatchResult, error) {
	return defaultConverter().EncodeAll(ctx, inputs, opts)
}
