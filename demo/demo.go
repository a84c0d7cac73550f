// Package demo runs the end-to-end showcase: synthesize a frame, upscale it
// three ways, composite the results and report timings and quality.
package demo

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/omniforge/comparison"
	"github.com/nvr-ai/omniforge/config"
	"github.com/nvr-ai/omniforge/images"
	"github.com/nvr-ai/omniforge/profiler"
	"github.com/nvr-ai/omniforge/quality"
	"github.com/nvr-ai/omniforge/testpattern"
	"github.com/nvr-ai/omniforge/upscale"
	"github.com/pkg/errors"
)

var banner = strings.Repeat("=", 60)

// Pipeline runs the demo steps in order. Each step finishes writing its file
// before the next one reads it.
type Pipeline struct {
	Config   *config.Config
	Profiler *profiler.Profiler
	// Runner starts the AI upscaler. Nil uses upscale.ExecRunner.
	Runner upscale.CommandRunner
	// Opener shows the comparison when Config.Open is set. Nil uses Open.
	Opener func(path string) error
	// Out receives progress. Nil uses os.Stdout.
	Out io.Writer
}

// Report is the outcome of one Run.
type Report struct {
	Input      string
	Comparison string
	// Results holds the classical, neural and hybrid outcomes in that order.
	Results []*upscale.Result
	// Quality is keyed by mode. Empty when quality scoring is disabled.
	Quality map[upscale.Mode]quality.Metrics
	Opened  bool
	Elapsed time.Duration
}

// Result returns the outcome for mode, or nil.
func (r *Report) Result(mode upscale.Mode) *upscale.Result {
	for _, res := range r.Results {
		if res.Mode == mode {
			return res
		}
	}
	return nil
}

// New creates a pipeline for cfg with a fresh profiler.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Profiler: profiler.New(profiler.Options{}),
	}
}

// stage pairs an upscale mode with its output file and progress text.
type stage struct {
	mode    upscale.Mode
	output  string
	start   string
	done    string
	process string
}

// Run executes every step.
//
// Arguments:
// - ctx: Cancels the run, including a running AI upscaler process.
//
// Returns:
// - The Report.
// - error if a file cannot be read or written or the config is invalid.
// A missing or failing AI upscaler is not an error.
//
// @example
// report, err := demo.New(config.Default()).Run(ctx)
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	cfg := p.Config
	if cfg == nil {
		cfg = config.Default()
		p.Config = cfg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.Profiler == nil {
		p.Profiler = profiler.New(profiler.Options{})
	}
	out := p.out()

	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, "🎮 OMNIFORGE STANDALONE DEMO")
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", cfg.Output.Dir)
	}

	report := &Report{
		Input:      cfg.Path(cfg.Output.Input),
		Comparison: cfg.ComparisonPath(),
		Quality:    map[upscale.Mode]quality.Metrics{},
	}

	// Step 1: test pattern.
	fmt.Fprintf(out, "📸 Creating test image (%dx%d)...\n", cfg.Pattern.Width, cfg.Pattern.Height)
	done := p.Profiler.StartOperation("test pattern")
	frame := testpattern.Generate(cfg.Pattern)
	err := images.Save(report.Input, frame)
	done()
	if err != nil {
		return nil, errors.Wrap(err, "failed to save test image")
	}
	fmt.Fprintf(out, "✅ Test image saved: %s\n", report.Input)
	p.debugf("input checksum %s", images.ComputeChecksum(frame))
	fmt.Fprintln(out)

	// Steps 2-4: upscales.
	in := fmt.Sprintf("%dx%d", cfg.Pattern.Width, cfg.Pattern.Height)
	target := cfg.Target()
	to := fmt.Sprintf("%dx%d", target.Pixels.Width, target.Pixels.Height)
	stages := []stage{
		{
			mode:    upscale.ModeClassical,
			output:  cfg.Path(cfg.Output.Classical),
			start:   fmt.Sprintf("🔧 Running FSR upscaling (%s → %s)...", in, to),
			done:    "✅ FSR upscale complete: %s",
			process: "fsr",
		},
		{
			mode:    upscale.ModeNeural,
			output:  cfg.Path(cfg.Output.Neural),
			start:   fmt.Sprintf("🤖 Running Waifu2x AI upscaling (%s → %s)...", in, to),
			done:    "✅ Waifu2x upscale complete: %s",
			process: "waifu2x",
		},
		{
			mode:    upscale.ModeHybrid,
			output:  cfg.Path(cfg.Output.Hybrid),
			start:   "🔀 Running HYBRID upscaling (FSR → Waifu2x)...",
			done:    "✅ Hybrid upscale complete: %s",
			process: "hybrid",
		},
	}

	opts := cfg.UpscaleOptions()
	opts.Runner = p.Runner
	opts.Log = out

	for _, s := range stages {
		u, err := upscale.New(s.mode, opts)
		if err != nil {
			return nil, err
		}

		fmt.Fprintln(out, s.start)
		done := p.Profiler.StartOperation(s.process)
		res, err := u.Upscale(ctx, report.Input, s.output, target)
		done()
		if err != nil {
			return nil, errors.Wrapf(err, "%s upscale failed", s.process)
		}
		fmt.Fprintf(out, s.done+"\n", res.Path)
		p.debugf("%s", res)
		fmt.Fprintln(out)

		report.Results = append(report.Results, res)
	}

	// Step 5: comparison grid.
	fmt.Fprintln(out, "📊 Creating comparison image...")
	done = p.Profiler.StartOperation("comparison")
	err = comparison.Create(
		[4]string{report.Input, stages[0].output, stages[1].output, stages[2].output},
		report.Comparison,
		comparison.Options{
			Width:    cfg.Comparison.Width,
			Height:   cfg.Comparison.Height,
			FontSize: cfg.Comparison.FontSize,
			Labels:   cfg.Comparison.Labels,
		},
	)
	done()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "✅ Comparison saved: %s\n", report.Comparison)
	fmt.Fprintln(out)

	if cfg.Quality {
		if err := p.measure(frame, report); err != nil {
			return nil, err
		}
	}

	p.summary(report)

	if cfg.Open {
		report.Opened = p.open(report.Comparison)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// measure scores every upscale against the input frame.
func (p *Pipeline) measure(frame *image.RGBA, report *Report) error {
	defer p.Profiler.StartOperation("quality")()

	for _, res := range report.Results {
		img, err := images.Load(res.Path)
		if err != nil {
			return errors.Wrap(err, "quality")
		}
		m, err := quality.Measure(frame, img)
		if err != nil {
			return errors.Wrapf(err, "quality of %s", res.Mode)
		}
		report.Quality[res.Mode] = m
		if !math.IsInf(m.PSNR, 1) {
			p.Profiler.RecordMetric(res.Mode.String()+" psnr", m.PSNR)
		}
		p.Profiler.RecordMetric(res.Mode.String()+" delta e", m.MeanDeltaE)
	}
	return nil
}

func (p *Pipeline) summary(report *Report) {
	out := p.out()

	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, "✅ DEMO COMPLETE!")
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📁 Output files:")
	fmt.Fprintf(out, "   - Input:             %s\n", report.Input)
	for _, res := range report.Results {
		note := ""
		if res.Fallback {
			note = " (Lanczos fallback)"
		}
		fmt.Fprintf(out, "   - %-18s %s%s\n", label(res.Mode)+":", res.Path, note)
	}
	fmt.Fprintf(out, "   - Comparison:        %s\n", report.Comparison)
	fmt.Fprintln(out)

	if len(report.Quality) > 0 {
		fmt.Fprintln(out, "📏 Round-trip quality vs input:")
		for _, res := range report.Results {
			if m, ok := report.Quality[res.Mode]; ok {
				fmt.Fprintf(out, "   - %-18s %s\n", label(res.Mode)+":", m)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "⏱️  Timings:")
	if err := p.Profiler.Report(out); err != nil {
		p.debugf("profiler report: %v", err)
	}
	fmt.Fprintln(out)
}

// open shows the comparison and reports whether the viewer started.
func (p *Pipeline) open(path string) bool {
	out := p.out()
	fmt.Fprintln(out, "🖼️  Opening comparison image...")

	opener := p.Opener
	if opener == nil {
		opener = Open
	}
	if err := opener(path); err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		p.debugf("open failed: %v", err)
		fmt.Fprintf(out, "   Please open manually: %s\n", abs)
		return false
	}
	return true
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.Config == nil || !p.Config.Debug {
		return
	}
	fmt.Fprintf(p.out(), "[DEBUG] "+format+"\n", args...)
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func label(mode upscale.Mode) string {
	switch mode {
	case upscale.ModeClassical:
		return "FSR"
	case upscale.ModeNeural:
		return "Waifu2x"
	case upscale.ModeHybrid:
		return "Hybrid"
	default:
		return mode.String()
	}
}
