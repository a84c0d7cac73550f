// Package images - provides the resampling and filtering primitives used by the
// classical upscaling path, plus codecs and named resolutions.
package images

import (
	"image"
	"image/draw"
	"math"
	"runtime"
	"sync"
)

// ResampleFilter defines the resampling algorithm used for image scaling.
type ResampleFilter int

const (
	// NearestNeighborFilter uses nearest-neighbor interpolation (fastest, lowest quality).
	NearestNeighborFilter ResampleFilter = iota
	// BilinearFilter uses bilinear interpolation (fast, good quality).
	BilinearFilter
	// BicubicFilter uses Catmull-Rom bicubic interpolation (slower, better quality).
	BicubicFilter
	// LanczosFilter uses Lanczos resampling with a=3 (slowest, sharpest).
	LanczosFilter
	// MitchellNetravaliFilter uses the Mitchell-Netravali cubic filter (balanced).
	MitchellNetravaliFilter
)

// String returns the lowercase name of the filter.
func (f ResampleFilter) String() string {
	switch f {
	case NearestNeighborFilter:
		return "nearest"
	case BilinearFilter:
		return "bilinear"
	case BicubicFilter:
		return "bicubic"
	case LanczosFilter:
		return "lanczos"
	case MitchellNetravaliFilter:
		return "mitchell"
	default:
		return "unknown"
	}
}

// ParseResampleFilter maps a filter name back to its ResampleFilter.
//
// Arguments:
// - name: One of nearest, bilinear, bicubic, lanczos, mitchell.
//
// Returns:
// - The filter and true if the name is known, otherwise BicubicFilter and false.
func ParseResampleFilter(name string) (ResampleFilter, bool) {
	for _, f := range []ResampleFilter{
		NearestNeighborFilter, BilinearFilter, BicubicFilter, LanczosFilter, MitchellNetravaliFilter,
	} {
		if f.String() == name {
			return f, true
		}
	}
	return BicubicFilter, false
}

// kernel is a resampling filter evaluated at a distance in source pixels.
// Weights are zero at and beyond radius.
type kernel struct {
	radius float64
	weight func(d float64) float64
}

// cubic returns the Mitchell-Netravali family member for parameters b and c.
func cubic(b, c float64) func(float64) float64 {
	p0, p2, p3 := (6 - 2*b) / 6, (-18 + 12*b + 6*c) / 6, (12 - 9*b - 6*c) / 6
	q0, q1, q2, q3 := (8*b + 24*c) / 6, (-12*b - 48*c) / 6, (6*b + 30*c) / 6, (-b - 6*c) / 6
	return func(d float64) float64 {
		d = math.Abs(d)
		switch {
		case d < 1:
			return p0 + d*d*(p2+d*p3)
		case d < 2:
			return q0 + d*(q1+d*(q2+d*q3))
		}
		return 0
	}
}

// sinc is the normalized sinc function.
func sinc(d float64) float64 {
	if d == 0 {
		return 1
	}
	d *= math.Pi
	return math.Sin(d) / d
}

var kernels = map[ResampleFilter]kernel{
	NearestNeighborFilter: {radius: 0.5, weight: func(d float64) float64 {
		if math.Abs(d) < 0.5 {
			return 1
		}
		return 0
	}},
	BilinearFilter: {radius: 1, weight: func(d float64) float64 {
		return math.Max(0, 1-math.Abs(d))
	}},
	LanczosFilter: {radius: 3, weight: func(d float64) float64 {
		if math.Abs(d) >= 3 {
			return 0
		}
		return sinc(d) * sinc(d/3)
	}},

	// Catmull-Rom.
	BicubicFilter:           {radius: 2, weight: cubic(0, 0.5)},
	MitchellNetravaliFilter: {radius: 2, weight: cubic(1.0/3, 1.0/3)},
}

// contribution is a single source pixel's weight toward one output pixel.
type contribution struct {
	pixel  int
	weight float64
}

// Resize performs image resizing using the specified resampling filter.
// Horizontal and vertical passes run separately, and both operate on raw RGBA
// bytes so that the per-sample cost stays constant regardless of source color model.
//
// Arguments:
// - img: The source image to resize.
// - width: The target width in pixels.
// - height: The target height in pixels.
// - filter: The resampling filter to use for interpolation.
//
// Returns:
// - A new *image.RGBA of exactly width x height, anchored at (0, 0).
//
// @example
// upscaled := Resize(frame, 2560, 1440, BicubicFilter)
func Resize(img image.Image, width, height int, filter ResampleFilter) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	src := ToRGBA(img)
	srcWidth := src.Rect.Dx()
	srcHeight := src.Rect.Dy()

	if srcWidth == 0 || srcHeight == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	// Same size: copy so the caller always owns the result.
	if srcWidth == width && srcHeight == height {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), src, src.Rect.Min, draw.Src)
		return dst
	}

	if filter == NearestNeighborFilter {
		return ResizeNearestNeighbor(src, width, height)
	}

	k, ok := kernels[filter]
	if !ok {
		k = kernels[BicubicFilter]
	}

	intermediate := image.NewRGBA(image.Rect(0, 0, width, srcHeight))
	resizeHorizontal(src, intermediate, k)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	resizeVertical(intermediate, dst, k)

	return dst
}

// ResizeNearestNeighbor performs nearest-neighbor resizing.
//
// Arguments:
// - src: The source image.
// - width: Target width.
// - height: Target height.
//
// Returns:
// - The resized image using nearest-neighbor sampling.
func ResizeNearestNeighbor(src image.Image, width, height int) *image.RGBA {
	rgba := ToRGBA(src)
	bounds := rgba.Rect
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	xRatio := float64(srcWidth) / float64(width)
	yRatio := float64(srcHeight) / float64(height)

	Parallel(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcY := int((float64(y) + 0.5) * yRatio)
			if srcY >= srcHeight {
				srcY = srcHeight - 1
			}
			for x := 0; x < width; x++ {
				srcX := int((float64(x) + 0.5) * xRatio)
				if srcX >= srcWidth {
					srcX = srcWidth - 1
				}
				si := rgba.PixOffset(bounds.Min.X+srcX, bounds.Min.Y+srcY)
				di := dst.PixOffset(x, y)
				copy(dst.Pix[di:di+4], rgba.Pix[si:si+4])
			}
		}
	})

	return dst
}

// contributions pre-computes the normalized kernel weights for every output
// index along one axis.
func contributions(srcSize, dstSize int, k kernel) [][]contribution {
	scale := float64(srcSize) / float64(dstSize)

	// When downsampling the kernel is stretched to cover all source pixels.
	filterScale := math.Max(scale, 1.0)
	support := k.radius * filterScale

	out := make([][]contribution, dstSize)
	for i := 0; i < dstSize; i++ {
		center := (float64(i) + 0.5) * scale

		lo := int(math.Floor(center - support))
		hi := int(math.Ceil(center + support))
		if lo < 0 {
			lo = 0
		}
		if hi >= srcSize {
			hi = srcSize - 1
		}

		var weights []contribution
		var sum float64
		for s := lo; s <= hi; s++ {
			w := k.weight((float64(s) + 0.5 - center) / filterScale)
			if w != 0 {
				weights = append(weights, contribution{pixel: s, weight: w})
				sum += w
			}
		}

		// Normalize so flat regions keep their brightness.
		if sum != 0 {
			for j := range weights {
				weights[j].weight /= sum
			}
		}
		out[i] = weights
	}
	return out
}

// resizeHorizontal resamples src along X into dst, which must have the
// target width and the source height.
func resizeHorizontal(src, dst *image.RGBA, k kernel) {
	sb := src.Rect
	dstWidth := dst.Rect.Dx()
	weights := contributions(sb.Dx(), dstWidth, k)

	Parallel(sb.Dy(), func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < dstWidth; x++ {
				var r, g, b, a float64
				for _, c := range weights[x] {
					i := src.PixOffset(sb.Min.X+c.pixel, sb.Min.Y+y)
					r += float64(src.Pix[i+0]) * c.weight
					g += float64(src.Pix[i+1]) * c.weight
					b += float64(src.Pix[i+2]) * c.weight
					a += float64(src.Pix[i+3]) * c.weight
				}
				writePixel(dst, x, y, r, g, b, a)
			}
		}
	})
}

// resizeVertical resamples src along Y into dst. src is always the
// intermediate produced by resizeHorizontal and is anchored at (0, 0).
func resizeVertical(src, dst *image.RGBA, k kernel) {
	dstHeight := dst.Rect.Dy()
	width := dst.Rect.Dx()
	weights := contributions(src.Rect.Dy(), dstHeight, k)

	Parallel(width, func(partStart, partEnd int) {
		for x := partStart; x < partEnd; x++ {
			for y := 0; y < dstHeight; y++ {
				var r, g, b, a float64
				for _, c := range weights[y] {
					i := src.PixOffset(x, c.pixel)
					r += float64(src.Pix[i+0]) * c.weight
					g += float64(src.Pix[i+1]) * c.weight
					b += float64(src.Pix[i+2]) * c.weight
					a += float64(src.Pix[i+3]) * c.weight
				}
				writePixel(dst, x, y, r, g, b, a)
			}
		}
	})
}

// writePixel clamps, rounds and stores one premultiplied pixel. Negative
// lobes of the cubic and Lanczos kernels can push color above alpha, so
// color channels are also bounded by alpha.
func writePixel(dst *image.RGBA, x, y int, r, g, b, a float64) {
	a = Clamp(a, 0, 255)
	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = uint8(Clamp(r, 0, a) + 0.5)
	dst.Pix[i+1] = uint8(Clamp(g, 0, a) + 0.5)
	dst.Pix[i+2] = uint8(Clamp(b, 0, a) + 0.5)
	dst.Pix[i+3] = uint8(a + 0.5)
}

// ToRGBA returns src as an *image.RGBA. If src already is one it is returned
// as-is, otherwise it is drawn into a new RGBA with the same bounds.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// Clamp restricts a value to the range [min, max].
//
// @example
// clamped := Clamp(300.5, 0, 255) // Returns 255
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Parallel splits [0, n) into contiguous chunks, one per available CPU, and
// calls fn on each chunk from its own goroutine. It returns when every chunk
// is done. Inputs too small to split run on the calling goroutine.
//
// Arguments:
// - n: The number of rows or items to cover.
// - fn: Called with the half-open range [start, end) of one chunk.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(n int, fn func(start, end int)) {
	workers := min(runtime.GOMAXPROCS(0), n/2)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
