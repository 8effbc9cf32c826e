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

// Package testing provides fixtures for datauri tests.
//
// # Quick Start
//
// Write image files into a temporary directory:
//
//	func TestMyFeature(t *testing.T) {
//	    dir := t.TempDir()
//	    path := dtesting.WritePNG(t, dir, "logo.png", 100)
//	    // path holds a 100-byte file starting with the PNG signature
//	}
//
// # Image Server
//
// NewImageServer starts an httptest server whose responses are configured
// per path. It counts HEAD and GET requests so tests can assert that a
// probe rejection never triggered a download:
//
//	srv := dtesting.NewImageServer(t)
//	srv.Handle("/page", dtesting.Route{ContentType: "text/html", Body: []byte("<html>")})
//
//	_, err := conv.EncodeSingle(ctx, srv.URL("/page"), nil)
//	require.ErrorIs(t, err, datauri.ErrNotAnImage)
//	require.Equal(t, 0, srv.Gets("/page"))
//
// The server is closed automatically when the test finishes.
package testing
