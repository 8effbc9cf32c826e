// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

func (c *Converter) validatePath(input string) (string, error) {
	if c.workDir == "" {
		return ValidateLocalPath(input)
	}
	return ValidateLocalPathIn(input, c.workDir)
}

// resolveLocal gates a local path: validate, exists, size, media type, read.
func (c *Converter) resolveLocal(input string, o Options) (*Payload, error) {
	path, err := c.validatePath(input)
	if err != nil {
		return nil, err
	}

	if !c.files.Exists(path) {
		return nil, newError(KindNotFound, input, nil)
	}

	size, err := c.files.Size(path)
	if err != nil {
		return nil, newError(KindNotFound, input, err)
	}
	if o.exceeds(size) {
		return nil, sizeError(input, size, o.SizeLimit)
	}

	mediaType := c.files.MediaTypeForPath(path)
	if mediaType == "" {
		return nil, newError(KindUnknownMediaType, input, nil)
	}

	data, err := c.files.ReadAll(path)
	if err != nil {
		return nil, newError(KindNotFound, input, err)
	}
	if data == nil {
		data = []byte{}
	}
	return &Payload{Data: data, MediaType: mediaType}, nil
}
