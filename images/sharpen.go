package images

import (
	"image"
	"image/draw"
)

// Kernel3x3 is a 3x3 convolution kernel in row-major order. Each output pixel
// is sum(weights * neighborhood) / Scale + Offset.
type Kernel3x3 struct {
	Weights [9]float64
	Scale   float64
	Offset  float64
}

// SharpenKernel is the classical fixed sharpen filter: a strong center tap
// balanced by its eight neighbors so that flat regions are left unchanged.
var SharpenKernel = Kernel3x3{
	Weights: [9]float64{
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2,
	},
	Scale: 16,
}

// Sharpen applies SharpenKernel to img. The outermost row and column on each
// side have no full neighborhood and are copied from the source.
//
// Arguments:
// - img: The image to sharpen.
//
// Returns:
// - A new *image.RGBA with the same size as img, anchored at (0, 0).
//
// @example
// sharpened := Sharpen(Resize(frame, 2560, 1440, BicubicFilter))
func Sharpen(img image.Image) *image.RGBA {
	return Convolve3x3(img, SharpenKernel)
}

// Convolve3x3 applies a 3x3 kernel to the color channels of every pixel with a
// full neighborhood. Border pixels and alpha are carried over unchanged.
//
// Arguments:
// - img: The source image.
// - k: The kernel to apply. A zero Scale is treated as 1.
//
// Returns:
// - A new *image.RGBA with the same size as img, anchored at (0, 0).
func Convolve3x3(img image.Image, k Kernel3x3) *image.RGBA {
	src := ToRGBA(img)
	sb := src.Rect
	width, height := sb.Dx(), sb.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Rect, src, sb.Min, draw.Src)
	if width < 3 || height < 3 {
		return dst
	}

	scale := k.Scale
	if scale == 0 {
		scale = 1
	}

	Parallel(height-2, func(partStart, partEnd int) {
		for y := partStart + 1; y < partEnd+1; y++ {
			for x := 1; x < width-1; x++ {
				var r, g, b float64
				for ky := -1; ky <= 1; ky++ {
					row := src.PixOffset(sb.Min.X+x-1, sb.Min.Y+y+ky)
					for kx := 0; kx < 3; kx++ {
						w := k.Weights[(ky+1)*3+kx]
						if w == 0 {
							continue
						}
						i := row + kx*4
						r += float64(src.Pix[i+0]) * w
						g += float64(src.Pix[i+1]) * w
						b += float64(src.Pix[i+2]) * w
					}
				}

				a := float64(dst.Pix[dst.PixOffset(x, y)+3])
				writePixel(dst, x, y, r/scale+k.Offset, g/scale+k.Offset, b/scale+k.Offset, a)
			}
		}
	})

	return dst
}
