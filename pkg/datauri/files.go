// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package datauri

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// FileAccess is the file-system capability used by the local resolver.
type FileAccess interface {
	// Exists reports whether path names a readable regular file.
	Exists(path string) bool
	// Size returns the file size in bytes.
	Size(path string) (int64, error)
	// ReadAll returns the complete file content.
	ReadAll(path string) ([]byte, error)
	// MediaTypeForPath returns the media type implied by the extension of
	// path, or "" when none is known.
	MediaTypeForPath(path string) string
}

// OSFiles implements FileAccess on the local file system.
type OSFiles struct{}

var _ FileAccess = OSFiles{}

func (OSFiles) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path) //nolint:gosec // G304: path validated by ValidateLocalPath
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (OSFiles) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (OSFiles) ReadAll(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // G304: path validated by ValidateLocalPath
}

func (OSFiles) MediaTypeForPath(path string) string {
	return MediaTypeByExtension(filepath.Ext(path))
}

// imageTypes pins the common web image extensions so lookups do not depend
// on the host's mime.types files.
var imageTypes = map[string]string{
	".apng": "image/apng",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// MediaTypeByExtension maps a file extension (with leading dot) to a bare
// media type without parameters. It returns "" for unknown extensions.
func MediaTypeByExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return ""
	}
	if t, ok := imageTypes[ext]; ok {
		return t
	}
	return bareMediaType(mime.TypeByExtension(ext))
}

// bareMediaType strips parameters and lower-cases a Content-Type value.
func bareMediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
