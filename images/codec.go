package images

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// jpegQuality is used for every JPEG written by Save.
const jpegQuality = 95

// Load reads and decodes the image at path. PNG, JPEG and WebP decoders are
// registered by this package's imports.
//
// Arguments:
// - path: The file to read.
//
// Returns:
// - The decoded image.
// - error if the file cannot be opened or decoded.
//
// @example
// img, err := Load("demo_output/input_720p.png")
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %s", path)
	}
	return img, nil
}

// Save encodes img to path, choosing the encoder from the file extension.
// Unknown extensions are written as PNG. Parent directories are created.
//
// Arguments:
// - path: The destination file.
// - img: The image to encode.
//
// Returns:
// - error if the file cannot be created or encoding fails.
//
// @example
// err := Save("demo_output/fsr_1440p.png", upscaled)
func Save(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	format, _ := FormatFromPath(path)
	if err := Encode(w, img, format); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return errors.Wrapf(w.Flush(), "failed to write %s", path)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return png.Encode(w, img)
	}
}
