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

// Package datauri converts local files and remote HTTP(S) images into
// base64 data URIs for embedding in markup.
//
// # Quick Start
//
// Encode a single file or URL:
//
//	uri, err := datauri.EncodeSingle(ctx, "assets/logo.png", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("<img src=%q>\n", uri)
//
// Encode a batch. Every distinct input gets exactly one entry; a failing
// input never affects the others:
//
//	res, err := datauri.EncodeAll(ctx, []string{
//	    "icons/a.png",
//	    "https://example.com/b.svg",
//	}, &datauri.Options{Concurrency: 4, SizeLimit: 256 << 10})
//	if err != nil {
//	    log.Fatal(err) // only on internal failure
//	}
//	res.Each(func(input string, r datauri.Result) {
//	    if r.Err != nil {
//	        log.Printf("%s: %v", input, r.Err)
//	    }
//	})
//
// # Pipeline
//
// Each input is classified by Classify. Local paths go through
// ValidateLocalPath (traversal and working-directory checks), an existence
// check, the size gate, an extension-based media type lookup and a full
// read. Remote URLs are probed with HEAD; the declared content type must be
// image/* and the declared length must pass the size gate before a GET is
// issued. The downloaded body is checked against the size gate again since
// servers may omit or misreport Content-Length.
//
// # Batches
//
// EncodeAll deduplicates inputs, then processes them in consecutive groups
// of Options.Concurrency. All members of a group run concurrently and the
// next group starts once the slowest member of the current one finishes.
//
// # Errors
//
// All failures are *Error values. Use errors.Is with the sentinels
// (ErrNotFound, ErrSizeLimitExceeded, ErrTimeout, ...) or KindOf to branch
// on the cause.
//
// # Collaborators
//
// File-system access and HTTP are reached through FileAccess and Transport.
// OSFiles and HTTPTransport are the production implementations; tests and
// embedders may substitute their own through Config.
package datauri
