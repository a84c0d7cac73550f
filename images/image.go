// Package images - image formats understood by Load and Save.
package images

import (
	"path/filepath"
	"strings"
)

// ImageFormat represents supported image formats.
type ImageFormat string

const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatWebP is the WebP image format, always written lossless.
	FormatWebP ImageFormat = "webp"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
)

// Extension returns the canonical file extension including the leading dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// FormatFromPath derives the image format from a file extension.
//
// Arguments:
// - path: The file path to inspect.
//
// Returns:
// - The format and true if the extension is known, otherwise FormatPNG and false.
func FormatFromPath(path string) (ImageFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, true
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	case ".webp":
		return FormatWebP, true
	default:
		return FormatPNG, false
	}
}

// ParseFormat maps a user-supplied format name such as "png" or "webp" to an ImageFormat.
func ParseFormat(name string) (ImageFormat, bool) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "webp":
		return FormatWebP, true
	default:
		return FormatPNG, false
	}
}
