package images

import (
	"crypto/md5"
	"fmt"
	"image"
)

// ComputeChecksum generates a deterministic checksum over the RGBA pixels of
// an image to verify idempotency.
//
// Arguments:
// - img: The image to compute the checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string, or "empty" for a zero-sized image.
//
// Example:
//
// ```go
//
//	checksum := ComputeChecksum(frame)
//	fmt.Printf("Frame checksum: %s\n", checksum)
//
// ```
func ComputeChecksum(img image.Image) string {
	b := img.Bounds()
	if b.Empty() {
		return "empty"
	}

	rgba := ToRGBA(img)
	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d;", b.Dx(), b.Dy())
	rowLen := b.Dx() * 4
	for y := rgba.Rect.Min.Y; y < rgba.Rect.Max.Y; y++ {
		i := rgba.PixOffset(rgba.Rect.Min.X, y)
		hash.Write(rgba.Pix[i : i+rowLen])
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
