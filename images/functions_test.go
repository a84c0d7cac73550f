package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidImage creates an opaque image filled with a single color.
func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// gradientImage creates an opaque horizontal/vertical gradient.
func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / width),
				G: uint8(255 * y / height),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// TestResize_OutputDimensions verifies every filter produces exactly the requested size.
func TestResize_OutputDimensions(t *testing.T) {
	filters := []ResampleFilter{
		NearestNeighborFilter, BilinearFilter, BicubicFilter, LanczosFilter, MitchellNetravaliFilter,
	}
	sizes := []struct {
		name       string
		srcW, srcH int
		dstW, dstH int
	}{
		{name: "upscale 16:9", srcW: 128, srcH: 72, dstW: 256, dstH: 144},
		{name: "downscale", srcW: 200, srcH: 100, dstW: 64, dstH: 36},
		{name: "aspect change", srcW: 50, srcH: 50, dstW: 160, dstH: 90},
		{name: "single pixel source", srcW: 1, srcH: 1, dstW: 7, dstH: 3},
	}

	for _, filter := range filters {
		for _, sz := range sizes {
			t.Run(filter.String()+"/"+sz.name, func(t *testing.T) {
				out := Resize(gradientImage(sz.srcW, sz.srcH), sz.dstW, sz.dstH, filter)
				require.NotNil(t, out)
				assert.Equal(t, image.Rect(0, 0, sz.dstW, sz.dstH), out.Bounds(), "output bounds should match target")
			})
		}
	}
}

// TestResize_PreservesFlatColor verifies normalized kernels keep uniform regions uniform.
func TestResize_PreservesFlatColor(t *testing.T) {
	red := color.RGBA{R: 200, G: 10, B: 30, A: 255}
	for _, filter := range []ResampleFilter{BilinearFilter, BicubicFilter, LanczosFilter, MitchellNetravaliFilter} {
		t.Run(filter.String(), func(t *testing.T) {
			out := Resize(solidImage(40, 30, red), 100, 70, filter)
			for _, pt := range []image.Point{{0, 0}, {50, 35}, {99, 69}} {
				assert.Equal(t, red, out.RGBAAt(pt.X, pt.Y), "pixel %v should keep the flat color", pt)
			}
		})
	}
}

// TestResize_SameSizeCopies verifies an equal-size resize returns an identical copy.
func TestResize_SameSizeCopies(t *testing.T) {
	src := gradientImage(64, 48)
	out := Resize(src, 64, 48, BicubicFilter)

	assert.NotSame(t, src, out, "resize should never return the source image")
	assert.Equal(t, ComputeChecksum(src), ComputeChecksum(out), "same-size resize should be lossless")
}

// TestResize_SubImageBounds verifies sources with a non-zero origin are handled.
func TestResize_SubImageBounds(t *testing.T) {
	src := gradientImage(100, 100).SubImage(image.Rect(20, 30, 70, 60))
	out := Resize(src, 100, 60, BicubicFilter)
	assert.Equal(t, image.Rect(0, 0, 100, 60), out.Bounds())
}

// TestResize_InvalidDimensions verifies non-positive targets produce a 1x1 image.
func TestResize_InvalidDimensions(t *testing.T) {
	out := Resize(gradientImage(10, 10), 0, 10, BicubicFilter)
	assert.Equal(t, image.Rect(0, 0, 1, 1), out.Bounds())
}

// TestResizeNearestNeighbor verifies 2x nearest-neighbor replicates source pixels.
func TestResizeNearestNeighbor(t *testing.T) {
	src := gradientImage(4, 4)
	out := ResizeNearestNeighbor(src, 8, 8)

	assert.Equal(t, src.RGBAAt(0, 0), out.RGBAAt(0, 0))
	assert.Equal(t, src.RGBAAt(0, 0), out.RGBAAt(1, 1))
	assert.Equal(t, src.RGBAAt(3, 3), out.RGBAAt(7, 7))
}

// TestParseResampleFilter verifies names round-trip through String.
func TestParseResampleFilter(t *testing.T) {
	for _, f := range []ResampleFilter{NearestNeighborFilter, BilinearFilter, BicubicFilter, LanczosFilter, MitchellNetravaliFilter} {
		parsed, ok := ParseResampleFilter(f.String())
		assert.True(t, ok, "filter %s should parse", f)
		assert.Equal(t, f, parsed)
	}

	parsed, ok := ParseResampleFilter("sinc")
	assert.False(t, ok)
	assert.Equal(t, BicubicFilter, parsed, "unknown names fall back to bicubic")
}

// TestKernels verifies the filter weights at known distances.
func TestKernels(t *testing.T) {
	testCases := []struct {
		name     string
		filter   ResampleFilter
		distance float64
		expected float64
	}{
		{name: "bilinear center", filter: BilinearFilter, distance: 0, expected: 1},
		{name: "bilinear half", filter: BilinearFilter, distance: -0.5, expected: 0.5},
		{name: "catmull-rom center", filter: BicubicFilter, distance: 0, expected: 1},
		{name: "catmull-rom half", filter: BicubicFilter, distance: 0.5, expected: 0.5625},
		{name: "catmull-rom one", filter: BicubicFilter, distance: 1, expected: 0},
		{name: "catmull-rom outer lobe", filter: BicubicFilter, distance: 1.5, expected: -0.0625},
		{name: "mitchell center", filter: MitchellNetravaliFilter, distance: 0, expected: 8.0 / 9},
		{name: "mitchell one", filter: MitchellNetravaliFilter, distance: 1, expected: 1.0 / 18},
		{name: "lanczos center", filter: LanczosFilter, distance: 0, expected: 1},
		{name: "lanczos one", filter: LanczosFilter, distance: 1, expected: 0},
		{name: "lanczos radius", filter: LanczosFilter, distance: 3, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, kernels[tc.filter].weight(tc.distance), 1e-9)
		})
	}
}

// TestParallel verifies every index is visited exactly once.
func TestParallel(t *testing.T) {
	for _, size := range []int{0, 1, 3, 1000, 1441} {
		visits := make([]int, size)
		Parallel(size, func(start, end int) {
			for i := start; i < end; i++ {
				visits[i]++
			}
		})
		for i, v := range visits {
			require.Equal(t, 1, v, "index %d of %d should be visited once", i, size)
		}
	}
}

// TestClamp validates range restriction.
func TestClamp(t *testing.T) {
	assert.Equal(t, 255.0, Clamp(300.5, 0, 255))
	assert.Equal(t, 0.0, Clamp(-10, 0, 255))
	assert.Equal(t, 12.5, Clamp(12.5, 0, 255))
}
