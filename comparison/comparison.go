// Package comparison composites the input frame and the three upscales into
// one labelled 2x2 grid.
package comparison

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// Quadrant positions in grid order.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// labelOffset is the inset of each label from its quadrant corner.
var labelOffset = image.Pt(10, 10)

// Options lays out the grid.
type Options struct {
	// Width and Height of the whole grid. Each quadrant is half of each.
	Width  int
	Height int
	// FontSize of the labels in pixels.
	FontSize float64
	// Labels in grid order. Empty labels are skipped.
	Labels [4]string
	// LabelColor defaults to yellow.
	LabelColor color.Color
	// Background fills areas no source covers. Defaults to black.
	Background color.Color
}

// DefaultOptions returns the 1280x720 demo grid.
func DefaultOptions() Options {
	return Options{
		Width:    1280,
		Height:   720,
		FontSize: 30,
		Labels: [4]string{
			"Original (720p)",
			"FSR Upscaled (1440p)",
			"Waifu2x AI (1440p)",
			"Hybrid (1440p)",
		},
	}
}

// Quadrants returns the four cells of a width x height grid in grid order.
func Quadrants(width, height int) [4]image.Rectangle {
	hw, hh := width/2, height/2
	return [4]image.Rectangle{
		TopLeft:     image.Rect(0, 0, hw, hh),
		TopRight:    image.Rect(hw, 0, 2*hw, hh),
		BottomLeft:  image.Rect(0, hh, hw, 2*hh),
		BottomRight: image.Rect(hw, hh, 2*hw, 2*hh),
	}
}

// Render scales each source into its quadrant, ignoring the source aspect
// ratio, and draws the labels.
//
// Arguments:
// - sources: Original, classical, neural and hybrid frames; nil leaves a quadrant blank.
// - opts: Layout. Zero size falls back to DefaultOptions.
//
// Returns:
// - A new *image.RGBA of opts.Width x opts.Height.
//
// @example
// grid := comparison.Render([4]image.Image{in, fsr, ai, hybrid}, comparison.DefaultOptions())
func Render(sources [4]image.Image, opts Options) *image.RGBA {
	opts = withDefaults(opts)

	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	cells := Quadrants(opts.Width, opts.Height)
	for i, src := range sources {
		if src == nil || src.Bounds().Empty() {
			continue
		}
		images.ScaleInto(canvas, cells[i], src)
	}

	face, _ := images.LoadFace(opts.FontSize)
	for i, label := range opts.Labels {
		if label == "" {
			continue
		}
		images.DrawText(canvas, label, cells[i].Min.Add(labelOffset), opts.LabelColor, face)
	}

	return canvas
}

// RenderFiles loads the four images and renders them.
//
// Returns:
// - The grid.
// - error if any file cannot be loaded.
func RenderFiles(paths [4]string, opts Options) (*image.RGBA, error) {
	var sources [4]image.Image
	for i, p := range paths {
		img, err := images.Load(p)
		if err != nil {
			return nil, errors.Wrapf(err, "comparison source %d", i)
		}
		sources[i] = img
	}
	return Render(sources, opts), nil
}

// Create renders the four files and saves the grid to out. The format is
// chosen by the extension of out.
//
// @example
// err := comparison.Create(paths, "demo_output/comparison.png", comparison.DefaultOptions())
func Create(paths [4]string, out string, opts Options) error {
	grid, err := RenderFiles(paths, opts)
	if err != nil {
		return err
	}
	if err := images.Save(out, grid); err != nil {
		return errors.Wrap(err, "failed to save comparison")
	}
	return nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.LabelColor == nil {
		opts.LabelColor = color.RGBA{R: 255, G: 255, A: 255}
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	return opts
}
