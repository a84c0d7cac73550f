// Package quality scores an upscaled frame against the frame it was produced
// from by bringing it back to the reference size and comparing pixels.
package quality

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes the difference between two images.
type Metrics struct {
	// PSNR is the peak signal-to-noise ratio over RGB in dB. +Inf for identical images.
	PSNR float64 `json:"psnr" yaml:"psnr"`
	// MeanDeltaE is the mean CIE76 color difference in Lab space.
	MeanDeltaE float64 `json:"meanDeltaE" yaml:"mean_delta_e"`
	// StdDeltaE is the standard deviation of the per-pixel color difference.
	StdDeltaE float64 `json:"stdDeltaE" yaml:"std_delta_e"`
}

// String formats the metrics for the demo summary.
func (m Metrics) String() string {
	psnr := "inf"
	if !math.IsInf(m.PSNR, 1) {
		psnr = fmt.Sprintf("%.2f dB", m.PSNR)
	}
	return fmt.Sprintf("PSNR %s, ΔE %.2f ± %.2f", psnr, m.MeanDeltaE, m.StdDeltaE)
}

// Measure compares candidate against reference. A candidate of a different
// size is first scaled to the reference dimensions with Catmull-Rom.
//
// Arguments:
// - reference: The original image.
// - candidate: The image to score, typically an upscale of reference.
//
// Returns:
// - The Metrics.
// - error if either image is empty.
//
// @example
// m, err := quality.Measure(input, upscaled)
func Measure(reference, candidate image.Image) (Metrics, error) {
	rb := reference.Bounds()
	if rb.Empty() {
		return Metrics{}, errors.New("reference image is empty")
	}
	if candidate.Bounds().Empty() {
		return Metrics{}, errors.New("candidate image is empty")
	}

	ref := images.ToRGBA(reference)
	var cand *image.RGBA
	if candidate.Bounds().Size() == rb.Size() {
		cand = images.ToRGBA(candidate)
	} else {
		cand = images.Thumbnail(candidate, rb.Dx(), rb.Dy())
	}

	width, height := rb.Dx(), rb.Dy()
	deltaE := make([]float64, width*height)
	rowSquared := make([]float64, height)

	images.Parallel(height, func(start, end int) {
		for y := start; y < end; y++ {
			var sq float64
			for x := 0; x < width; x++ {
				i := ref.PixOffset(ref.Rect.Min.X+x, ref.Rect.Min.Y+y)
				j := cand.PixOffset(cand.Rect.Min.X+x, cand.Rect.Min.Y+y)
				a := rgb(ref.Pix[i : i+3])
				b := rgb(cand.Pix[j : j+3])

				for c := 0; c < 3; c++ {
					d := float64(ref.Pix[i+c]) - float64(cand.Pix[j+c])
					sq += d * d
				}
				deltaE[y*width+x] = a.DistanceLab(b)
			}
			rowSquared[y] = sq
		}
	})

	var total float64
	for _, sq := range rowSquared {
		total += sq
	}
	mse := total / float64(width*height*3)

	mean, std := stat.MeanStdDev(deltaE, nil)
	if len(deltaE) == 1 {
		std = 0
	}

	return Metrics{
		PSNR:       PSNR(mse),
		MeanDeltaE: mean,
		StdDeltaE:  std,
	}, nil
}

// PSNR converts a mean squared error over 8-bit samples to decibels.
func PSNR(mse float64) float64 {
	if mse <= 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

func rgb(p []uint8) colorful.Color {
	return colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}
}
