package upscale

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// TempFileName is the intermediate written between the two hybrid stages.
const TempFileName = "temp_fsr.png"

// Hybrid chains a classical pass to Intermediate into the AI upscaler.
// The intermediate file is removed before Upscale returns on every path.
type Hybrid struct {
	Stage        *Classical
	Intermediate images.Resolution
	Refine       *Neural
	// TempDir holds the intermediate file. Empty uses the directory of out.
	TempDir string
}

// Mode implements Upscaler.
func (h *Hybrid) Mode() Mode {
	return ModeHybrid
}

// TempPath returns where the intermediate is written for a given output.
func (h *Hybrid) TempPath(out string) string {
	dir := h.TempDir
	if dir == "" {
		dir = filepath.Dir(out)
	}
	return filepath.Join(dir, TempFileName)
}

// Upscale implements Upscaler. The Result reports Fallback when the second
// stage could not use the AI upscaler.
//
// @example
// res, err := hybrid.Upscale(ctx, "input_720p.png", "hybrid_1440p.png", images.QHD)
func (h *Hybrid) Upscale(ctx context.Context, in, out string, target images.Resolution) (result *Result, err error) {
	start := time.Now()
	if err := checkTarget(target); err != nil {
		return nil, err
	}
	if h.Stage == nil || h.Refine == nil {
		return nil, errors.New("hybrid upscaler needs both stages")
	}

	temp := h.TempPath(out)
	defer func() {
		if rmErr := os.Remove(temp); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = errors.Wrapf(rmErr, "failed to remove %s", temp)
		}
	}()

	if _, err := h.Stage.Upscale(ctx, in, temp, h.Intermediate); err != nil {
		return nil, errors.Wrap(err, "hybrid first stage")
	}

	refined, err := h.Refine.Upscale(ctx, temp, out, target)
	if err != nil {
		return nil, errors.Wrap(err, "hybrid second stage")
	}

	return &Result{
		Path:     out,
		Mode:     ModeHybrid,
		Size:     refined.Size,
		Fallback: refined.Fallback,
		Elapsed:  time.Since(start),
	}, nil
}
