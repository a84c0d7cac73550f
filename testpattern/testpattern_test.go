package testpattern

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerate_Dimensions verifies the default and custom frame sizes.
func TestGenerate_Dimensions(t *testing.T) {
	testCases := []struct {
		name   string
		opts   Options
		width  int
		height int
	}{
		{name: "defaults", opts: Options{}, width: 1280, height: 720},
		{name: "quarter size", opts: Options{Width: 320, Height: 180}, width: 320, height: 180},
		{name: "portrait", opts: Options{Width: 200, Height: 400}, width: 200, height: 400},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := Generate(tc.opts)
			require.NotNil(t, img)
			assert.Equal(t, image.Rect(0, 0, tc.width, tc.height), img.Bounds())
		})
	}
}

// TestFillGradient verifies the background formula at known coordinates.
func TestFillGradient(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	FillGradient(img)

	origin := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0), origin.R)
	assert.Equal(t, uint8(0), origin.G)
	assert.Equal(t, uint8(128), origin.B, "sin(0) leaves blue at its midpoint")
	assert.Equal(t, uint8(255), origin.A)

	mid := img.RGBAAt(640, 360)
	assert.Equal(t, uint8(127), mid.R, "255*640/1280 truncates to 127")
	assert.Equal(t, uint8(127), mid.G, "255*360/720 truncates to 127")

	corner := img.RGBAAt(1279, 719)
	assert.Equal(t, uint8(254), corner.R)
	assert.Equal(t, uint8(254), corner.G)
}

// TestGenerate_Shapes verifies each stroke lands on its expected outline.
func TestGenerate_Shapes(t *testing.T) {
	img := Generate(DefaultOptions())

	rect := img.RGBAAt(101, 200)
	assert.GreaterOrEqual(t, rect.R, uint8(200), "square outline should be white")
	assert.GreaterOrEqual(t, rect.G, uint8(200), "square outline should be white")
	assert.GreaterOrEqual(t, rect.B, uint8(200), "square outline should be white")

	circle := img.RGBAAt(401, 250)
	assert.GreaterOrEqual(t, circle.R, uint8(200), "circle outline should be red")
	assert.LessOrEqual(t, circle.G, uint8(60), "circle outline should be red")

	line := img.RGBAAt(800, 250)
	assert.GreaterOrEqual(t, line.G, uint8(200), "diagonal should be green")
	assert.LessOrEqual(t, line.R, uint8(60), "diagonal should be green")

	// Inside the square the gradient is untouched.
	plain := image.NewRGBA(img.Bounds())
	FillGradient(plain)
	assert.Equal(t, plain.RGBAAt(200, 200), img.RGBAAt(200, 200))
}

// TestGenerate_Text verifies both text lines change the pixels under them.
func TestGenerate_Text(t *testing.T) {
	img := Generate(DefaultOptions())
	plain := image.NewRGBA(img.Bounds())
	FillGradient(plain)

	changedInBand := func(y0, y1 int) int {
		changed := 0
		for y := y0; y < y1; y++ {
			for x := 50; x < 700; x++ {
				if img.RGBAAt(x, y) != plain.RGBAAt(x, y) {
					changed++
				}
			}
		}
		return changed
	}

	assert.Greater(t, changedInBand(500, 570), 1000, "title should be drawn")
	assert.Greater(t, changedInBand(600, 670), 1000, "subtitle should be drawn")
}

// TestGenerate_Deterministic verifies repeated generation is pixel-identical.
func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(Options{Width: 320, Height: 180})
	b := Generate(Options{Width: 320, Height: 180})
	assert.Equal(t, a.Pix, b.Pix)
}
