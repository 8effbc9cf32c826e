// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// resolveRemote probes url, gates on the declared type and length, fetches
// it, and gates again on the downloaded length. The probe only saves
// downloads; the fetched body is authoritative.
func (c *Converter) resolveRemote(ctx context.Context, url string, o Options) (*Payload, error) {
	probe, err := c.probe(ctx, url, o.Timeout)
	if err != nil {
		return nil, err
	}
	if !probe.OK() {
		return nil, &Error{Kind: KindRemoteError, Input: url, StatusCode: probe.StatusCode}
	}

	declared := bareMediaType(probe.ContentType)
	if !isImageType(declared) {
		return nil, &Error{Kind: KindNotAnImage, Input: url, MediaType: probe.ContentType}
	}
	if probe.ContentLength > 0 && o.exceeds(probe.ContentLength) {
		return nil, sizeError(url, probe.ContentLength, o.SizeLimit)
	}

	resp, err := c.fetch(ctx, url, o.Timeout)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &Error{Kind: KindRemoteError, Input: url, StatusCode: resp.StatusCode}
	}

	body := resp.Body
	if body == nil {
		body = []byte{}
	}
	if size := int64(len(body)); o.exceeds(size) {
		return nil, sizeError(url, size, o.SizeLimit)
	}

	mediaType, err := fetchedMediaType(url, declared, resp.ContentType, body)
	if err != nil {
		return nil, err
	}
	return &Payload{Data: body, MediaType: mediaType}, nil
}

// fetchedMediaType picks the type to encode with. A type sent with the body
// wins and must be an image. Without one the body is sniffed, and when
// sniffing is inconclusive the probe's declared type is kept.
func fetchedMediaType(url, declared, actual string, body []byte) (string, error) {
	if t := bareMediaType(actual); t != "" {
		if !isImageType(t) {
			return "", &Error{Kind: KindNotAnImage, Input: url, MediaType: actual}
		}
		return t, nil
	}
	if sniffed := bareMediaType(mimetype.Detect(body).String()); isImageType(sniffed) {
		return sniffed, nil
	}
	return declared, nil
}

func isImageType(t string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t)), "image/")
}

func (c *Converter) probe(ctx context.Context, url string, timeout time.Duration) (*ProbeResponse, error) {
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.logger.Debug("datauri.remote.probe", "url", url, "timeout", timeout)
	resp, err := c.transport.Probe(pctx, url)
	if err != nil {
		err = transportError(pctx, url, err)
		recordRemote("probe", 0, err)
		return nil, err
	}
	recordRemote("probe", resp.StatusCode, nil)
	return resp, nil
}

func (c *Converter) fetch(ctx context.Context, url string, timeout time.Duration) (*FetchResponse, error) {
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.logger.Debug("datauri.remote.fetch", "url", url, "timeout", timeout)
	resp, err := c.transport.Fetch(fctx, url)
	if err != nil {
		err = transportError(fctx, url, err)
		recordRemote("fetch", 0, err)
		return nil, err
	}
	recordRemote("fetch", resp.StatusCode, nil)
	return resp, nil
}

// transportError maps a transport failure to KindTimeout when the phase
// deadline expired and to KindRemoteError otherwise. Failures the transport
// already typed pass through.
func transportError(ctx context.Context, url string, err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	if isTimeout(ctx, err) {
		return newError(KindTimeout, url, err)
	}
	return newError(KindRemoteError, url, err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
