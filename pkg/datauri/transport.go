// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent by HTTPTransport when no agent is configured.
const DefaultUserAgent = "datauri/1.0 (+https://github.com/kraklabs/datauri)"

// Transport is the HTTP capability used by the remote resolver. The caller
// bounds each call with a deadline on ctx.
type Transport interface {
	// Probe issues a metadata-only request (HEAD).
	Probe(ctx context.Context, url string) (*ProbeResponse, error)
	// Fetch issues a full request (GET) and returns the complete body.
	Fetch(ctx context.Context, url string) (*FetchResponse, error)
}

// ProbeResponse holds the headers of interest from a probe.
type ProbeResponse struct {
	StatusCode  int
	ContentType string
	// ContentLength is 0 when the header is absent or unparseable.
	ContentLength int64
}

// OK reports a 2xx status.
func (r *ProbeResponse) OK() bool { return statusOK(r.StatusCode) }

// FetchResponse holds a fully downloaded response.
type FetchResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *FetchResponse) OK() bool { return statusOK(r.StatusCode) }

func statusOK(code int) bool { return code >= 200 && code < 300 }

// HTTPConfig configures NewHTTPTransport.
type HTTPConfig struct {
	// Client performs the requests. Defaults to a client with tuned
	// connection pooling and no overall timeout; deadlines come from ctx.
	Client *http.Client

	// UserAgent defaults to DefaultUserAgent.
	UserAgent string

	// RequestsPerSecond paces outgoing requests across all goroutines
	// sharing the transport. 0 disables pacing.
	RequestsPerSecond float64

	// MaxBodyBytes stops reading a fetched body once it is larger than this
	// many bytes and fails the fetch with ErrSizeLimitExceeded. It applies
	// regardless of Options.Force. 0 reads bodies in full.
	MaxBodyBytes int64
}

// errPaced marks a request the rate limiter could not admit before the
// context deadline. The deadline has not passed yet, so it is not a timeout.
var errPaced = errors.New("request pacing exceeds deadline")

// HTTPTransport implements Transport with net/http.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	maxBody   int64
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates an HTTPTransport.
func NewHTTPTransport(cfg HTTPConfig) *HTTPTransport {
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	t := &HTTPTransport{client: client, userAgent: ua, maxBody: cfg.MaxBodyBytes}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return t
}

func (t *HTTPTransport) Probe(ctx context.Context, url string) (*ProbeResponse, error) {
	resp, err := t.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return &ProbeResponse{
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: parseContentLength(resp.Header.Get("Content-Length")),
	}, nil
}

func (t *HTTPTransport) Fetch(ctx context.Context, url string) (*FetchResponse, error) {
	resp, err := t.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := &FetchResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if !out.OK() {
		return out, nil
	}
	var r io.Reader = resp.Body
	if t.maxBody > 0 {
		r = io.LimitReader(resp.Body, t.maxBody+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if t.maxBody > 0 && int64(len(body)) > t.maxBody {
		// Size is a lower bound: the rest of the body is never read.
		return nil, sizeError(url, int64(len(body)), t.maxBody)
	}
	out.Body = body
	return out, nil
}

func (t *HTTPTransport) do(ctx context.Context, method, url string) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", errPaced, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	return t.client.Do(req)
}

func parseContentLength(v string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
