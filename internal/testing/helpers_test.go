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
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := WritePNG(t, dir, "nested/icon.png", 64)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 64)
	assert.Equal(t, PNGSignature, data[:len(PNGSignature)])
}

func TestPNGBytes_ShorterThanSignature(t *testing.T) {
	data := PNGBytes(3)
	assert.Equal(t, PNGSignature[:3], data)
}

func TestImageServer_HeadAndGet(t *testing.T) {
	srv := NewImageServer(t)
	body := PNGBytes(20)
	srv.Handle("/a.png", Route{ContentType: "image/png", Body: body})

	resp, err := http.Head(srv.URL("/a.png"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "20", resp.Header.Get("Content-Length"))

	resp, err = http.Get(srv.URL("/a.png"))
	require.NoError(t, err)
	got, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, body, got)

	assert.Equal(t, 1, srv.Heads("/a.png"))
	assert.Equal(t, 1, srv.Gets("/a.png"))
}

func TestImageServer_OmitLengthAndContentType(t *testing.T) {
	srv := NewImageServer(t)
	srv.Handle("/raw", Route{ContentType: "image/png", OmitHeadLength: true, NoGetContentType: true, Body: []byte("<html></html>")})

	resp, err := http.Head(srv.URL("/raw"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Content-Length"))

	resp, err = http.Get(srv.URL("/raw"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Content-Type"))
}

func TestImageServer_UnknownPath(t *testing.T) {
	srv := NewImageServer(t)

	resp, err := http.Get(srv.URL("/missing"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, srv.Gets("/missing"))
}
