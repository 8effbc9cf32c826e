// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"errors"
	"fmt"
)

// Kind classifies why an input could not be encoded.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors not produced by this package.
	KindUnknown Kind = iota

	// KindPathSecurityViolation: traversal segment detected, or a relative
	// path resolves outside the working directory.
	KindPathSecurityViolation

	// KindNotFound: local file does not exist or is unreadable.
	KindNotFound

	// KindUnknownMediaType: no media type derivable for a local path.
	KindUnknownMediaType

	// KindNotAnImage: remote content type is not image/*.
	KindNotAnImage

	// KindSizeLimitExceeded: declared or actual length exceeds the limit
	// and Force is not set.
	KindSizeLimitExceeded

	// KindRemoteError: non-success HTTP status or transport failure.
	KindRemoteError

	// KindTimeout: a remote phase deadline elapsed.
	KindTimeout

	// KindInvalidArgument: malformed call-site input to Encode.
	KindInvalidArgument
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindPathSecurityViolation: "PathSecurityViolation",
	KindNotFound:              "NotFound",
	KindUnknownMediaType:      "UnknownMediaType",
	KindNotAnImage:            "NotAnImage",
	KindSizeLimitExceeded:     "SizeLimitExceeded",
	KindRemoteError:           "RemoteError",
	KindTimeout:               "Timeout",
	KindInvalidArgument:       "InvalidArgument",
}

// String returns the kind name, e.g. "SizeLimitExceeded".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind as its name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is the error type returned by every operation in this package.
//
// Only the fields relevant to Kind are populated:
//   - KindSizeLimitExceeded: Size and Limit
//   - KindRemoteError: StatusCode (0 when the transport itself failed)
//   - KindNotAnImage: MediaType
//
// Err carries the underlying cause, if any, for errors.Is/As.
type Error struct {
	Kind       Kind
	Input      string
	MediaType  string
	Size       int64
	Limit      int64
	StatusCode int
	Err        error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrPathSecurityViolation = &Error{Kind: KindPathSecurityViolation}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrUnknownMediaType      = &Error{Kind: KindUnknownMediaType}
	ErrNotAnImage            = &Error{Kind: KindNotAnImage}
	ErrSizeLimitExceeded     = &Error{Kind: KindSizeLimitExceeded}
	ErrRemote                = &Error{Kind: KindRemoteError}
	ErrTimeout               = &Error{Kind: KindTimeout}
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindPathSecurityViolation:
		msg = fmt.Sprintf("path %q escapes the allowed directory", e.Input)
	case KindNotFound:
		msg = fmt.Sprintf("file %q does not exist or is not readable", e.Input)
	case KindUnknownMediaType:
		msg = fmt.Sprintf("cannot determine media type of %q", e.Input)
	case KindNotAnImage:
		msg = fmt.Sprintf("content type %q of %s is not an image", e.MediaType, e.Input)
	case KindSizeLimitExceeded:
		msg = fmt.Sprintf("%s is %d bytes, exceeding the limit of %d bytes", e.Input, e.Size, e.Limit)
	case KindRemoteError:
		if e.StatusCode > 0 {
			msg = fmt.Sprintf("request for %s failed with status %d", e.Input, e.StatusCode)
		} else {
			msg = fmt.Sprintf("request for %s failed", e.Input)
		}
	case KindTimeout:
		msg = fmt.Sprintf("request for %s timed out", e.Input)
	case KindInvalidArgument:
		msg = "invalid argument"
		if e.Input != "" {
			msg += ": " + e.Input
		}
	default:
		msg = "datauri error"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Input == "" && t.Err == nil
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, input string, cause error) *Error {
	return &Error{Kind: kind, Input: input, Err: cause}
}

func sizeError(input string, size, limit int64) *Error {
	return &Error{Kind: KindSizeLimitExceeded, Input: input, Size: size, Limit: limit}
}
