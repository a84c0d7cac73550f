package images

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace returns the bundled Go Bold face at the given pixel size. If the
// font cannot be parsed or sized, the fixed 7x13 bitmap face is returned
// instead and scalable is false.
//
// Arguments:
// - size: The font size in pixels (72 DPI).
//
// Returns:
// - The face to draw with.
// - Whether the face is the requested scalable font.
func LoadFace(size float64) (face font.Face, scalable bool) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return basicfont.Face7x13, false
	}
	face, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, false
	}
	return face, true
}

// DrawText draws s onto dst with its top-left corner at pt.
//
// @example
// DrawText(canvas, "Hybrid (1440p)", image.Pt(650, 370), color.RGBA{255, 255, 0, 255}, face)
func DrawText(dst draw.Image, s string, pt image.Point, c color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
