// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

// PNGSignature is the 8-byte header every PNG file starts with.
var PNGSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNGBytes returns size bytes starting with the PNG signature (or a prefix
// of it when size is smaller than the signature).
func PNGBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, PNGSignature)
	return data
}

// WritePNG writes a size-byte PNG-looking file named name into dir and
// returns its path.
//
// Example:
//
//	path := testing.WritePNG(t, t.TempDir(), "icon.png", 100)
func WritePNG(t *testing.T, dir, name string, size int) string {
	t.Helper()
	return WriteFile(t, dir, name, PNGBytes(size))
}

// WriteFile writes data to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// Route configures the responses of one ImageServer path.
type Route struct {
	// HeadStatus and GetStatus default to 200.
	HeadStatus int
	GetStatus  int

	// ContentType is sent on HEAD and, unless GetContentType is set, on GET.
	ContentType string

	// GetContentType overrides the GET content type. NoGetContentType
	// suppresses the header entirely (and net/http's sniffing).
	GetContentType   string
	NoGetContentType bool

	// OmitHeadLength drops Content-Length from the HEAD response.
	OmitHeadLength bool

	// HeadLength overrides the Content-Length declared on HEAD.
	HeadLength int64

	// Body is the GET payload.
	Body []byte

	// Delay is slept before answering either method.
	Delay time.Duration
}

// ImageServer is an httptest server with per-path routes and request
// counters.
type ImageServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	heads  map[string]int
	gets   map[string]int
}

// NewImageServer starts an ImageServer that is closed on test cleanup.
// Unknown paths answer 404.
func NewImageServer(t *testing.T) *ImageServer {
	t.Helper()

	s := &ImageServer{
		routes: make(map[string]Route),
		heads:  make(map[string]int),
		gets:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers route for path.
func (s *ImageServer) Handle(path string, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route
}

// URL returns the absolute URL of path on this server.
func (s *ImageServer) URL(path string) string {
	return s.Server.URL + path
}

// Heads returns how many HEAD requests path received.
func (s *ImageServer) Heads(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heads[path]
}

// Gets returns how many GET requests path received.
func (s *ImageServer) Gets(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[path]
}

func (s *ImageServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	route, ok := s.routes[r.URL.Path]
	switch r.Method {
	case http.MethodHead:
		s.heads[r.URL.Path]++
	case http.MethodGet:
		s.gets[r.URL.Path]++
	}
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if route.Delay > 0 {
		select {
		case <-time.After(route.Delay):
		case <-r.Context().Done():
			return
		}
	}

	switch r.Method {
	case http.MethodHead:
		if route.ContentType != "" {
			w.Header().Set("Content-Type", route.ContentType)
		}
		if !route.OmitHeadLength {
			length := route.HeadLength
			if length == 0 {
				length = int64(len(route.Body))
			}
			w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
		}
		w.WriteHeader(statusOr(route.HeadStatus))
	case http.MethodGet:
		switch {
		case route.NoGetContentType:
			w.Header()["Content-Type"] = nil
		case route.GetContentType != "":
			w.Header().Set("Content-Type", route.GetContentType)
		case route.ContentType != "":
			w.Header().Set("Content-Type", route.ContentType)
		}
		w.WriteHeader(statusOr(route.GetStatus))
		_, _ = w.Write(route.Body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func statusOr(code int) int {
	if code == 0 {
		return http.StatusOK
	}
	return code
}
