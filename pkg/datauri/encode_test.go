// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		buf       []byte
		mediaType string
		want      string
	}{
		{name: "plain text", buf: []byte("test"), mediaType: "text/plain", want: "data:text/plain;base64,dGVzdA=="},
		{name: "ascii", buf: []byte("hello"), mediaType: "text/plain", want: "data:text/plain;base64,aGVsbG8="},
		{name: "empty buffer", buf: []byte{}, mediaType: "image/png", want: "data:image/png;base64,"},
		{name: "binary", buf: []byte{0xff, 0xfe, 0x00}, mediaType: "image/gif", want: "data:image/gif;base64,//4A"},
		{name: "media type passed through", buf: []byte("x"), mediaType: "image/svg+xml", want: "data:image/svg+xml;base64,eA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.buf, tt.mediaType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i * 7)
	}

	uri, err := Encode(buf, "image/png")
	require.NoError(t, err)
	assert.NotContains(t, uri, "\n")

	payload, ok := strings.CutPrefix(uri, "data:image/png;base64,")
	require.True(t, ok)
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, buf, decoded)
}

func TestEncode_InvalidArgument(t *testing.T) {
	_, err := Encode(nil, "image/png")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Encode([]byte("x"), "  ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
