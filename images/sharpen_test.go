package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSharpen_FlatRegionUnchanged verifies the kernel leaves uniform areas alone.
func TestSharpen_FlatRegionUnchanged(t *testing.T) {
	c := color.RGBA{R: 90, G: 180, B: 45, A: 255}
	src := solidImage(32, 18, c)
	out := Sharpen(src)

	assert.Equal(t, src.Bounds(), out.Bounds(), "sharpen should preserve dimensions")
	assert.Equal(t, ComputeChecksum(src), ComputeChecksum(out), "flat image should be unchanged")
}

// TestSharpen_IncreasesContrast verifies the exact response around a single bright pixel.
func TestSharpen_IncreasesContrast(t *testing.T) {
	src := solidImage(5, 5, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	src.SetRGBA(2, 2, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	out := Sharpen(src)

	// Center: (32*100 - 2*8*50) / 16 = 150.
	assert.Equal(t, uint8(150), out.RGBAAt(2, 2).R)
	// Neighbor: (32*50 - 2*100 - 2*7*50) / 16 = 43.75, rounded to 44.
	assert.Equal(t, uint8(44), out.RGBAAt(3, 2).R)
	// Two pixels away the bright pixel is outside the 3x3 window.
	assert.Equal(t, uint8(50), out.RGBAAt(4, 4).R)
}

// TestSharpen_PreservesAlpha verifies the alpha channel is copied unchanged.
func TestSharpen_PreservesAlpha(t *testing.T) {
	src := solidImage(4, 4, color.RGBA{R: 40, G: 40, B: 40, A: 128})
	out := Sharpen(src)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(128), out.RGBAAt(x, y).A)
		}
	}
}

// TestSharpen_SubImage verifies non-zero origins produce an image anchored at (0, 0).
func TestSharpen_SubImage(t *testing.T) {
	src := gradientImage(50, 50).SubImage(image.Rect(10, 10, 30, 20))
	out := Sharpen(src)
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
}

// TestSharpen_CopiesBorder verifies the outermost pixels keep their source values.
func TestSharpen_CopiesBorder(t *testing.T) {
	src := gradientImage(16, 9)
	src.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	out := Sharpen(src)

	for x := 0; x < 16; x++ {
		assert.Equal(t, src.RGBAAt(x, 0), out.RGBAAt(x, 0), "top row x=%d", x)
		assert.Equal(t, src.RGBAAt(x, 8), out.RGBAAt(x, 8), "bottom row x=%d", x)
	}
	for y := 0; y < 9; y++ {
		assert.Equal(t, src.RGBAAt(0, y), out.RGBAAt(0, y), "left column y=%d", y)
		assert.Equal(t, src.RGBAAt(15, y), out.RGBAAt(15, y), "right column y=%d", y)
	}
	assert.NotEqual(t, src.RGBAAt(2, 2), out.RGBAAt(2, 2), "interior is still sharpened")
}

// TestSharpen_TooSmall verifies images without an interior are returned as copies.
func TestSharpen_TooSmall(t *testing.T) {
	src := gradientImage(2, 5)
	out := Sharpen(src)
	assert.Equal(t, ComputeChecksum(src), ComputeChecksum(out))
}

// TestConvolve3x3_Identity verifies an identity kernel reproduces the source.
func TestConvolve3x3_Identity(t *testing.T) {
	src := gradientImage(16, 9)
	identity := Kernel3x3{Weights: [9]float64{0, 0, 0, 0, 1, 0, 0, 0, 0}}
	out := Convolve3x3(src, identity)
	assert.Equal(t, ComputeChecksum(src), ComputeChecksum(out))
}
