package upscale

import (
	"context"
	"image"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// Classical resamples with a separable filter and optionally sharpens the
// result. This is the "FSR" path of the demo.
type Classical struct {
	Filter  images.ResampleFilter
	Sharpen bool
}

// Mode implements Upscaler.
func (c *Classical) Mode() Mode {
	return ModeClassical
}

// Process resizes src to target and applies the sharpen pass if enabled.
//
// Arguments:
// - src: The source image.
// - target: The output resolution.
//
// Returns:
// - A new *image.RGBA of exactly target.
func (c *Classical) Process(src image.Image, target images.Resolution) *image.RGBA {
	dst := images.Resize(src, target.Pixels.Width, target.Pixels.Height, c.Filter)
	if c.Sharpen {
		dst = images.Sharpen(dst)
	}
	return dst
}

// Upscale implements Upscaler.
//
// @example
// res, err := c.Upscale(ctx, "input_720p.png", "fsr_1440p.png", images.QHD)
func (c *Classical) Upscale(ctx context.Context, in, out string, target images.Resolution) (*Result, error) {
	start := time.Now()
	if err := checkTarget(target); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "classical upscale cancelled")
	}

	src, err := images.Load(in)
	if err != nil {
		return nil, errors.Wrap(err, "classical upscale")
	}

	dst := c.Process(src, target)
	if err := images.Save(out, dst); err != nil {
		return nil, errors.Wrap(err, "classical upscale")
	}

	return &Result{
		Path:    out,
		Mode:    ModeClassical,
		Size:    dst.Rect.Size(),
		Elapsed: time.Since(start),
	}, nil
}
