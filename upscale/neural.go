package upscale

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// Default locations of the waifu2x-ncnn-vulkan build used by the demo.
const (
	DefaultExecutable = `c:\omniforge\external\waifu2x-ncnn-vulkan\waifu2x-ncnn-vulkan.exe`
	DefaultModelDir   = `c:\omniforge\models\models-cunet`
)

// Neural runs an external AI upscaler (waifu2x-ncnn-vulkan command line).
// When the executable is missing, fails to start, exits non-zero or leaves
// no readable output, the frame is produced with Lanczos3 instead and the
// Result is flagged as a fallback. Those cases are never returned as errors.
type Neural struct {
	Executable string
	ModelDir   string
	Noise      int
	Scale      int
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
	// Runner starts the process. Nil uses ExecRunner.
	Runner CommandRunner
	// Log receives warnings. Nil uses os.Stdout.
	Log io.Writer
}

// Mode implements Upscaler.
func (n *Neural) Mode() Mode {
	return ModeNeural
}

// Args returns the command line passed to the executable.
//
// Arguments:
// - in: The input image path.
// - out: The output image path.
//
// Returns:
// - The arguments in -i -o -n -s -m order.
func (n *Neural) Args(in, out string) []string {
	return []string{
		"-i", in,
		"-o", out,
		"-n", strconv.Itoa(n.Noise),
		"-s", strconv.Itoa(n.Scale),
		"-m", n.ModelDir,
	}
}

// Available reports whether Executable points at an existing regular file.
func (n *Neural) Available() bool {
	if n.Executable == "" {
		return false
	}
	info, err := os.Stat(n.Executable)
	return err == nil && !info.IsDir()
}

// Upscale implements Upscaler.
//
// Arguments:
// - ctx: Cancels the external process. A cancelled context is returned as an error.
// - in: The input image path.
// - out: The output image path.
// - target: The exact output resolution.
//
// Returns:
// - The Result, with Fallback set if Lanczos produced the output.
// - error if the input cannot be read, the output cannot be written or ctx is done.
func (n *Neural) Upscale(ctx context.Context, in, out string, target images.Resolution) (*Result, error) {
	start := time.Now()
	if err := checkTarget(target); err != nil {
		return nil, err
	}

	src, err := images.Load(in)
	if err != nil {
		return nil, errors.Wrap(err, "neural upscale")
	}

	log := logWriter(n.Log)
	result := &Result{Path: out, Mode: ModeNeural}

	if n.Available() {
		// A file left by an earlier run must not pass for this run's output.
		if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "neural upscale: remove stale output")
		}
	}

	var produced image.Image
	if !n.Available() {
		fmt.Fprintf(log, "⚠️ Waifu2x executable not found at %s\n", n.Executable)
		result.Fallback = true
	} else if err := n.run(ctx, in, out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "neural upscale cancelled")
		}
		fmt.Fprintf(log, "⚠️ Waifu2x failed: %v\n", err)
		result.Fallback = true
	} else if produced, err = images.Load(out); err != nil {
		fmt.Fprintf(log, "⚠️ Waifu2x produced no readable output: %v\n", err)
		result.Fallback = true
	}

	var dst image.Image
	switch {
	case result.Fallback:
		fmt.Fprintln(log, "   Using fallback: Lanczos upscaling")
		dst = images.ResizeLanczos(src, target.Pixels.Width, target.Pixels.Height)
	case !target.Matches(produced):
		// The tool scales by an integer factor; bring it to the exact target.
		dst = images.ResizeLanczos(produced, target.Pixels.Width, target.Pixels.Height)
	default:
		result.Size = produced.Bounds().Size()
		result.Elapsed = time.Since(start)
		return result, nil
	}

	if err := images.Save(out, dst); err != nil {
		return nil, errors.Wrap(err, "neural upscale")
	}
	result.Size = dst.Bounds().Size()
	result.Elapsed = time.Since(start)
	return result, nil
}

func (n *Neural) run(ctx context.Context, in, out string) error {
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	runner := n.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	output, err := runner.Run(ctx, n.Executable, n.Args(in, out)...)
	if err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return errors.Wrapf(err, "%s", msg)
		}
		return err
	}
	return nil
}
