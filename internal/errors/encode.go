// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"errors"

	"github.com/kraklabs/datauri/pkg/datauri"
)

type kindAdvice struct {
	code    int
	message string
	fix     string
}

var encodeAdvice = map[datauri.Kind]kindAdvice{
	datauri.KindPathSecurityViolation: {ExitPermission, "Path is outside the working directory", "Use a path below the current directory or an absolute path"},
	datauri.KindNotFound:              {ExitNotFound, "File not found", "Check the path relative to the current directory"},
	datauri.KindUnknownMediaType:      {ExitInput, "Cannot determine the media type", "Rename the file with a known image extension such as .png or .svg"},
	datauri.KindNotAnImage:            {ExitInput, "Remote content is not an image", "Point the URL at the image itself rather than a page"},
	datauri.KindSizeLimitExceeded:     {ExitInput, "Image is too large to inline", "Pass --force or raise --size-limit"},
	datauri.KindRemoteError:           {ExitNetwork, "Cannot download image", "Check the URL and your network connection"},
	datauri.KindTimeout:               {ExitNetwork, "Image download timed out", "Raise --timeout or try again later"},
	datauri.KindInvalidArgument:       {ExitInput, "Invalid argument", ""},
}

// FromEncodeError converts an error returned by the datauri package into a
// UserError with a matching exit code. A UserError passes through unchanged
// and nil yields nil.
func FromEncodeError(err error) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}

	advice, ok := encodeAdvice[datauri.KindOf(err)]
	if !ok {
		return NewInternalError(
			"Unexpected error",
			err.Error(),
			"This is a bug. Please report it at github.com/kraklabs/datauri/issues",
			err,
		)
	}
	return newUserError(advice.code, advice.message, err.Error(), advice.fix, err)
}
