// Package upscale implements the three strategies that take a frame on disk
// to a larger target resolution: a classical resample-and-sharpen pass, an
// external AI upscaler process with a Lanczos fallback, and a hybrid of both.
package upscale

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// Upscaler turns the image at in into an image of exactly target at out.
type Upscaler interface {
	// Upscale reads in, writes out and reports what was produced.
	Upscale(ctx context.Context, in, out string, target images.Resolution) (*Result, error)
	// Mode reports the strategy implemented.
	Mode() Mode
}

// Result describes one completed upscale.
type Result struct {
	// Path is the file that was written.
	Path string
	// Mode is the strategy that produced the file.
	Mode Mode
	// Size is the dimensions of the written image.
	Size image.Point
	// Fallback is true when the AI upscaler could not be used and the
	// Lanczos fallback produced the output instead.
	Fallback bool
	// Elapsed is the wall time of the whole call.
	Elapsed time.Duration
}

// String returns a one-line summary of the result.
func (r *Result) String() string {
	via := ""
	if r.Fallback {
		via = " (fallback)"
	}
	return fmt.Sprintf("%s: %dx%d%s in %v -> %s",
		r.Mode, r.Size.X, r.Size.Y, via, r.Elapsed.Truncate(time.Millisecond), r.Path)
}

// Options holds everything New needs to build any of the strategies.
type Options struct {
	// Filter is the classical resampling filter.
	Filter images.ResampleFilter
	// Sharpen enables the sharpen pass after classical resampling.
	Sharpen bool
	// Executable is the path to the AI upscaler binary.
	Executable string
	// ModelDir is passed to the AI upscaler with -m.
	ModelDir string
	// Noise is the denoise level passed with -n.
	Noise int
	// Scale is the scale factor passed with -s.
	Scale int
	// Timeout bounds a single AI upscaler run. Zero means no limit.
	Timeout time.Duration
	// Intermediate is the resolution of the hybrid classical stage.
	Intermediate images.Resolution
	// TempDir holds the hybrid intermediate file. Empty uses the directory
	// of the output file.
	TempDir string
	// Runner starts the AI upscaler. Nil uses ExecRunner.
	Runner CommandRunner
	// Log receives progress and warnings. Nil uses os.Stdout.
	Log io.Writer
}

// DefaultOptions returns the demo settings: bicubic with sharpen, noise 0,
// scale 2 and a 1080p hybrid intermediate.
func DefaultOptions() Options {
	return Options{
		Filter:       images.BicubicFilter,
		Sharpen:      true,
		Noise:        0,
		Scale:        2,
		Intermediate: images.FHD,
	}
}

// New builds the upscaler for mode.
//
// Arguments:
// - mode: The strategy to build.
// - opts: Settings shared by all strategies.
//
// Returns:
// - The Upscaler.
// - error if the mode is unknown.
//
// @example
// u, err := upscale.New(upscale.ModeHybrid, upscale.DefaultOptions())
func New(mode Mode, opts Options) (Upscaler, error) {
	classical := &Classical{Filter: opts.Filter, Sharpen: opts.Sharpen}
	neural := &Neural{
		Executable: opts.Executable,
		ModelDir:   opts.ModelDir,
		Noise:      opts.Noise,
		Scale:      opts.Scale,
		Timeout:    opts.Timeout,
		Runner:     opts.Runner,
		Log:        opts.Log,
	}

	switch mode {
	case ModeClassical:
		return classical, nil
	case ModeNeural:
		return neural, nil
	case ModeHybrid:
		intermediate := opts.Intermediate
		if !intermediate.Valid() {
			intermediate = images.FHD
		}
		return &Hybrid{
			Stage:        classical,
			Intermediate: intermediate,
			Refine:       neural,
			TempDir:      opts.TempDir,
		}, nil
	default:
		return nil, errors.Errorf("unsupported upscale mode %d", int(mode))
	}
}

func logWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func checkTarget(target images.Resolution) error {
	if !target.Valid() {
		return errors.Errorf("invalid target resolution %dx%d", target.Pixels.Width, target.Pixels.Height)
	}
	return nil
}
