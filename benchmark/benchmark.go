// Package benchmark - measures the throughput of the classical upscaling path
// (resample plus sharpen) across filters and resolutions.
package benchmark

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/nvr-ai/omniforge/profiler"
	"github.com/nvr-ai/omniforge/testpattern"
	"github.com/pkg/errors"
)

// Scenario defines a specific test configuration
type Scenario struct {
	Name       string                  `json:"name"`
	Filter     string                  `json:"filter"`
	Sharpen    bool                    `json:"sharpen"`
	Source     images.ResolutionPixels `json:"source"`
	Target     images.ResolutionPixels `json:"target"`
	Iterations int                     `json:"iterations"`
	WarmupRuns int                     `json:"warmup_runs"`
}

// Validate reports whether the scenario can run.
func (s Scenario) Validate() error {
	if _, ok := images.ParseResampleFilter(s.Filter); !ok {
		return errors.Errorf("scenario %s: unknown filter %q", s.Name, s.Filter)
	}
	if s.Source.Width <= 0 || s.Source.Height <= 0 || s.Target.Width <= 0 || s.Target.Height <= 0 {
		return errors.Errorf("scenario %s: resolutions must be positive", s.Name)
	}
	if s.Iterations <= 0 {
		return errors.Errorf("scenario %s: iterations must be positive", s.Name)
	}
	return nil
}

// Suite manages and executes benchmark scenarios
type Suite struct {
	scenarios []Scenario
	outputDir string
	out       io.Writer
	mu        sync.RWMutex
	results   []PerformanceMetrics
}

// NewSuite creates a new benchmark suite.
//
// Arguments:
// - outputDir: Where SaveResults writes its JSON and CSV files.
// - out: Progress output. Nil uses os.Stdout.
//
// Returns:
// - The Suite.
func NewSuite(outputDir string, out io.Writer) *Suite {
	if out == nil {
		out = os.Stdout
	}
	return &Suite{
		outputDir: outputDir,
		out:       out,
		scenarios: make([]Scenario, 0),
		results:   make([]PerformanceMetrics, 0),
	}
}

// AddScenario adds a test scenario to the benchmark suite
func (bs *Suite) AddScenario(scenario Scenario) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.scenarios = append(bs.scenarios, scenario)
}

// AddScenarioSet adds every scenario of set.
func (bs *Suite) AddScenarioSet(set *ScenarioSet) {
	for _, s := range set.Scenarios {
		bs.AddScenario(s)
	}
}

// RunScenario executes a single benchmark scenario on a synthesized frame of
// the scenario's source size.
//
// Arguments:
// - ctx: Checked between iterations.
// - scenario: The scenario to run.
//
// Returns:
// - The measured metrics.
// - error if the scenario is invalid or ctx is cancelled.
func (bs *Suite) RunScenario(ctx context.Context, scenario Scenario) (*PerformanceMetrics, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	filter, _ := images.ParseResampleFilter(scenario.Filter)
	frame := testpattern.Generate(testpattern.Options{
		Width:  scenario.Source.Width,
		Height: scenario.Source.Height,
	})

	metrics := &PerformanceMetrics{
		Scenario:  scenario,
		Timestamp: time.Now(),
	}

	// Warmup runs
	for i := 0; i < scenario.WarmupRuns; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "benchmark cancelled")
		}
		process(frame, scenario, filter)
	}

	// Capture initial memory stats
	var startMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	frames := profiler.New(profiler.Options{MaxSamples: scenario.Iterations})
	var last *image.RGBA
	startTime := time.Now()

	for i := 0; i < scenario.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "benchmark cancelled")
		}

		done := frames.StartOperation("frame")
		var resize, sharpen time.Duration
		last, resize, sharpen = process(frame, scenario, filter)
		done()

		metrics.ResizeDuration += resize
		metrics.SharpenDuration += sharpen
	}

	metrics.TotalDuration = time.Since(startTime)

	// Capture final memory stats
	var endMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&endMem)

	if stats, ok := frames.Stats("frame"); ok {
		metrics.MinFrame = stats.Min
		metrics.MaxFrame = stats.Max
		metrics.AvgFrame = stats.Avg
	}
	if secs := metrics.TotalDuration.Seconds(); secs > 0 {
		metrics.FramesPerSecond = float64(scenario.Iterations) / secs
	}
	metrics.Checksum = images.ComputeChecksum(last)

	metrics.MemoryStats = MemoryMetrics{
		AllocBytes:      endMem.Alloc,
		TotalAllocBytes: endMem.TotalAlloc - startMem.TotalAlloc,
		SysBytes:        endMem.Sys,
		NumGC:           endMem.NumGC - startMem.NumGC,
		HeapAllocBytes:  endMem.HeapAlloc,
		HeapSysBytes:    endMem.HeapSys,
	}

	metrics.CPUStats = CPUMetrics{
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	return metrics, nil
}

func process(frame image.Image, scenario Scenario, filter images.ResampleFilter) (*image.RGBA, time.Duration, time.Duration) {
	resizeStart := time.Now()
	dst := images.Resize(frame, scenario.Target.Width, scenario.Target.Height, filter)
	resize := time.Since(resizeStart)

	if !scenario.Sharpen {
		return dst, resize, 0
	}

	sharpenStart := time.Now()
	dst = images.Sharpen(dst)
	return dst, resize, time.Since(sharpenStart)
}

// RunAllScenarios executes all configured benchmark scenarios and saves the
// results. A failing scenario is reported and skipped; cancellation stops the run.
func (bs *Suite) RunAllScenarios(ctx context.Context) error {
	bs.mu.Lock()
	scenarios := make([]Scenario, len(bs.scenarios))
	copy(scenarios, bs.scenarios)
	bs.mu.Unlock()

	for _, scenario := range scenarios {
		metrics, err := bs.RunScenario(ctx, scenario)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(bs.out, "⚠️  Scenario %s failed: %v\n", scenario.Name, err)
			continue
		}

		bs.mu.Lock()
		bs.results = append(bs.results, *metrics)
		bs.mu.Unlock()

		fmt.Fprintf(bs.out, "✅ Scenario %s completed: %.2f FPS (avg %v/frame)\n",
			scenario.Name, metrics.FramesPerSecond, metrics.AvgFrame.Truncate(time.Microsecond))
	}

	_, _, err := bs.SaveResults()
	return err
}

// SaveResults persists benchmark results to the output directory as a
// detailed JSON file and a summary CSV.
//
// Returns:
// - The JSON path.
// - The CSV path.
// - error if either file cannot be written.
func (bs *Suite) SaveResults() (string, string, error) {
	results := bs.GetResults()

	// Ensure output directory exists
	if err := os.MkdirAll(bs.outputDir, 0o755); err != nil {
		return "", "", errors.Wrap(err, "failed to create output directory")
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	resultsFile := filepath.Join(bs.outputDir, fmt.Sprintf("benchmark_results_%s.json", timestamp))

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", "", errors.Wrap(err, "failed to marshal results")
	}

	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		return "", "", errors.Wrap(err, "failed to write results file")
	}

	summaryFile := filepath.Join(bs.outputDir, fmt.Sprintf("benchmark_summary_%s.csv", timestamp))
	if err := saveSummaryCSV(summaryFile, results); err != nil {
		return "", "", errors.Wrap(err, "failed to save summary CSV")
	}

	fmt.Fprintf(bs.out, "Results saved to: %s\n", resultsFile)
	fmt.Fprintf(bs.out, "Summary saved to: %s\n", summaryFile)

	return resultsFile, summaryFile, nil
}

// summaryHeader is the first row of the summary CSV.
var summaryHeader = []string{
	"Scenario", "Filter", "Sharpen", "Source", "Target", "FPS",
	"Total_Duration_ms", "Avg_Frame_ms", "Alloc_MB", "Checksum",
}

func saveSummaryCSV(filename string, results []PerformanceMetrics) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(summaryHeader); err != nil {
		return err
	}

	for _, result := range results {
		s := result.Scenario
		row := []string{
			s.Name,
			s.Filter,
			strconv.FormatBool(s.Sharpen),
			fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height),
			fmt.Sprintf("%dx%d", s.Target.Width, s.Target.Height),
			fmt.Sprintf("%.2f", result.FramesPerSecond),
			fmt.Sprintf("%.2f", float64(result.TotalDuration.Nanoseconds())/1e6),
			fmt.Sprintf("%.3f", float64(result.AvgFrame.Nanoseconds())/1e6),
			fmt.Sprintf("%.2f", float64(result.MemoryStats.TotalAllocBytes)/(1024*1024)),
			result.Checksum,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// GetResults returns all benchmark results
func (bs *Suite) GetResults() []PerformanceMetrics {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	results := make([]PerformanceMetrics, len(bs.results))
	copy(results, bs.results)
	return results
}
