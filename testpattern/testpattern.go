// Package testpattern synthesizes the demo input frame: a color gradient with
// stroked shapes and two lines of text, laid out for 1280x720 and scaled
// proportionally for other sizes.
package testpattern

import (
	"image"
	"image/color"
	"math"

	"github.com/nvr-ai/omniforge/images"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Reference layout size. Shape and text coordinates are expressed in this space.
const (
	referenceWidth  = 1280
	referenceHeight = 720
)

// Options configures the generated frame.
type Options struct {
	// Width of the frame in pixels.
	Width int `yaml:"width"`
	// Height of the frame in pixels.
	Height int `yaml:"height"`
	// Title is drawn in white at (50, 500) of the reference layout.
	Title string `yaml:"title"`
	// Subtitle is drawn in yellow at (50, 600) of the reference layout.
	Subtitle string `yaml:"subtitle"`
	// FontSize is the text size in pixels of the reference layout.
	FontSize float64 `yaml:"font_size"`
}

// DefaultOptions returns the 720p demo frame settings.
func DefaultOptions() Options {
	return Options{
		Width:    referenceWidth,
		Height:   referenceHeight,
		Title:    "Omniforge Demo - 720p Input",
		Subtitle: "Testing FSR + Waifu2x Upscaling",
		FontSize: 60,
	}
}

// Stroke is a single outlined primitive in reference coordinates.
type Stroke struct {
	Color color.RGBA
	Width float64
	add   func(p rasterx.Adder, sx, sy float64)
}

var (
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
)

// Shapes returns the strokes drawn on top of the gradient: a white square
// outline, a red circle outline and a green diagonal line. Outlines are inset
// by half their width so they stay inside their bounding boxes.
func Shapes() []Stroke {
	return []Stroke{
		{
			Color: white,
			Width: 3,
			add: func(p rasterx.Adder, sx, sy float64) {
				inset := 1.5
				rasterx.AddRect((100+inset)*sx, (100+inset)*sy, (300-inset)*sx, (300-inset)*sy, 0, p)
			},
		},
		{
			Color: red,
			Width: 3,
			add: func(p rasterx.Adder, sx, sy float64) {
				rasterx.AddEllipse(500*sx, 250*sy, (100-1.5)*sx, (100-1.5)*sy, 0, p)
			},
		},
		{
			Color: green,
			Width: 5,
			add: func(p rasterx.Adder, sx, sy float64) {
				p.Start(rasterx.ToFixedP(700*sx, 100*sy))
				p.Line(rasterx.ToFixedP(900*sx, 400*sy))
				p.Stop(false)
			},
		},
	}
}

// Generate renders the test frame.
//
// Arguments:
// - opts: Frame size and text. Zero values are replaced with DefaultOptions.
//
// Returns:
// - A new *image.RGBA of opts.Width x opts.Height.
//
// @example
// frame := testpattern.Generate(testpattern.DefaultOptions())
func Generate(opts Options) *image.RGBA {
	opts = withDefaults(opts)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	FillGradient(img)

	sx := float64(opts.Width) / referenceWidth
	sy := float64(opts.Height) / referenceHeight
	DrawStrokes(img, Shapes(), sx, sy)

	face, _ := images.LoadFace(math.Max(1, opts.FontSize*sy))
	images.DrawText(img, opts.Title, scalePoint(50, 500, sx, sy), white, face)
	images.DrawText(img, opts.Subtitle, scalePoint(50, 600, sx, sy), yellow, face)

	return img
}

// FillGradient paints the background: red grows left to right, green top to
// bottom, and blue oscillates as 128 + 127*sin(0.01x)*cos(0.01y).
func FillGradient(img *image.RGBA) {
	b := img.Rect
	width, height := b.Dx(), b.Dy()

	images.Parallel(height, func(start, end int) {
		for y := start; y < end; y++ {
			cy := math.Cos(float64(y) * 0.01)
			for x := 0; x < width; x++ {
				i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
				img.Pix[i+0] = uint8(255 * x / width)
				img.Pix[i+1] = uint8(255 * y / height)
				img.Pix[i+2] = uint8(128 + 127*math.Sin(float64(x)*0.01)*cy)
				img.Pix[i+3] = 255
			}
		}
	})
}

// DrawStrokes rasterizes each stroke onto img with anti-aliasing.
//
// Arguments:
// - img: The destination image.
// - strokes: The primitives to draw, in reference coordinates.
// - sx, sy: Scale from reference coordinates to img pixels.
func DrawStrokes(img *image.RGBA, strokes []Stroke, sx, sy float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)

	scale := math.Min(sx, sy)
	for _, s := range strokes {
		dasher.Clear()
		dasher.SetStroke(
			fixed.Int26_6(math.Max(1, s.Width*scale)*64),
			fixed.Int26_6(4*64),
			rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter, nil, 0,
		)
		s.add(dasher, sx, sy)
		dasher.SetColor(s.Color)
		dasher.Draw()
	}
}

func scalePoint(x, y int, sx, sy float64) image.Point {
	return image.Pt(int(float64(x)*sx), int(float64(y)*sy))
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.Subtitle == "" {
		opts.Subtitle = def.Subtitle
	}
	return opts
}
