// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"encoding/base64"
	"strings"
)

// Encode returns buf as a data URI of the form
// "data:<mediaType>;base64,<payload>", using the standard base64 alphabet
// with padding and no line wrapping.
//
// Encode performs no size or content validation. It fails with
// ErrInvalidArgument only when buf is nil or mediaType is blank.
func Encode(buf []byte, mediaType string) (string, error) {
	if buf == nil {
		return "", &Error{Kind: KindInvalidArgument, Input: "buffer is nil"}
	}
	if strings.TrimSpace(mediaType) == "" {
		return "", &Error{Kind: KindInvalidArgument, Input: "media type is empty"}
	}

	var sb strings.Builder
	sb.Grow(len("data:") + len(mediaType) + len(";base64,") + base64.StdEncoding.EncodedLen(len(buf)))
	sb.WriteString("data:")
	sb.WriteString(mediaType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(buf))
	return sb.String(), nil
}
