package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResizeLanczos validates the nfnt-backed fallback resize.
func TestResizeLanczos(t *testing.T) {
	out := ResizeLanczos(gradientImage(128, 72), 256, 144)
	assert.Equal(t, 256, out.Bounds().Dx(), "width should match target")
	assert.Equal(t, 144, out.Bounds().Dy(), "height should match target")

	invalid := ResizeLanczos(gradientImage(10, 10), -1, 5)
	assert.Equal(t, image.Rect(0, 0, 1, 1), invalid.Bounds(), "invalid target should produce a 1x1 image")
}

// TestThumbnail validates that thumbnails ignore the source aspect ratio.
func TestThumbnail(t *testing.T) {
	for _, src := range []image.Image{gradientImage(300, 300), gradientImage(90, 400), gradientImage(2560, 1440)} {
		thumb := Thumbnail(src, 64, 36)
		assert.Equal(t, image.Rect(0, 0, 64, 36), thumb.Bounds())
	}
}

// TestScaleInto validates scaling into a sub-rectangle leaves the rest untouched.
func TestScaleInto(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 10))
	green := color.RGBA{G: 255, A: 255}
	ScaleInto(dst, image.Rect(10, 0, 20, 10), solidImage(3, 7, green))

	assert.Equal(t, green, dst.RGBAAt(15, 5), "target rectangle should be filled")
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(5, 5), "outside the rectangle should stay zero")
}
