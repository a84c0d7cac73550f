package images

import (
	"image"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// ResizeLanczos resizes img to exactly width x height with the Lanczos3 filter
// from nfnt/resize. It is the fallback used when the external AI upscaler is
// unavailable and for normalizing its output to the requested size.
//
// Arguments:
//   - img: The image to resize.
//   - width: The width to resize the image to.
//   - height: The height to resize the image to.
//
// Returns:
//   - image.Image: The resized image.
func ResizeLanczos(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}

// Thumbnail scales src into a new width x height RGBA image with Catmull-Rom
// interpolation, ignoring the source aspect ratio.
//
// Arguments:
//   - src: The image to scale.
//   - width: The thumbnail width.
//   - height: The thumbnail height.
//
// Returns:
//   - *image.RGBA: The thumbnail anchored at (0, 0).
func Thumbnail(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	ScaleInto(dst, dst.Bounds(), src)
	return dst
}

// ScaleInto scales all of src into rect of dst with Catmull-Rom interpolation.
func ScaleInto(dst xdraw.Image, rect image.Rectangle, src image.Image) {
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
}
