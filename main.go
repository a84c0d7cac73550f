package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/omniforge/benchmark"
	"github.com/nvr-ai/omniforge/config"
	"github.com/nvr-ai/omniforge/demo"
	"github.com/nvr-ai/omniforge/images"
)

func main() {
	// Parse command line arguments
	var (
		configPath       string
		outputDir        string
		executable       string
		modelDir         string
		noOpen           bool
		comparisonFormat string
		debug            bool
		runBenchmark     bool
		iterations       int
		scenarioFile     string
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&outputDir, "output-dir", "", "Output directory (default demo_output)")
	flag.StringVar(&executable, "waifu2x", "", "Path to the waifu2x-ncnn-vulkan executable")
	flag.StringVar(&modelDir, "models", "", "Path to the waifu2x model directory")
	flag.BoolVar(&noOpen, "no-open", false, "Do not open the comparison image when done")
	flag.StringVar(&comparisonFormat, "comparison-format", "", "Comparison image format (png, jpeg, webp)")
	flag.BoolVar(&debug, "debug", false, "Enable debug output")
	flag.BoolVar(&runBenchmark, "benchmark", false, "Benchmark the classical filters instead of running the demo")
	flag.IntVar(&iterations, "benchmark-iterations", 10, "Iterations per benchmark scenario")
	flag.StringVar(&scenarioFile, "benchmark-scenarios", "", "JSON scenario set to benchmark instead of the built-in sets")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if executable != "" {
		cfg.Upscaler.Executable = executable
	}
	if modelDir != "" {
		cfg.Upscaler.ModelDir = modelDir
	}
	if comparisonFormat != "" {
		cfg.Output.Format = comparisonFormat
	}
	if noOpen {
		cfg.Open = false
	}
	if debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if cfg.Debug {
		fmt.Printf("[DEBUG] upscaler: %s\n", cfg.Upscaler.Executable)
		fmt.Printf("[DEBUG] models: %s\n", cfg.Upscaler.ModelDir)
		fmt.Printf("[DEBUG] output: %s\n", cfg.Output.Dir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if runBenchmark {
		if err := benchmarkFilters(ctx, cfg, iterations, scenarioFile); err != nil {
			stop()
			log.Fatalf("Error running benchmark: %v", err)
		}
		return
	}

	if _, err := demo.New(cfg).Run(ctx); err != nil {
		stop()
		log.Fatalf("Error running demo: %v", err)
	}
}

// benchmarkFilters runs the scenarios in scenarioFile, or the built-in sets
// when it is empty, writing results under the output directory. Built-in sets
// are saved next to the results so they can be edited and replayed.
func benchmarkFilters(ctx context.Context, cfg *config.Config, iterations int, scenarioFile string) error {
	if iterations <= 0 {
		iterations = 1
	}

	dir := filepath.Join(cfg.Output.Dir, "benchmark")
	source := images.ResolutionFromPixels(cfg.Pattern.Width, cfg.Pattern.Height)
	suite := benchmark.NewSuite(dir, os.Stdout)

	fmt.Printf("\n🚀 Classical upscaling benchmark\n")
	fmt.Printf("=====================================\n")

	if scenarioFile != "" {
		set, err := benchmark.LoadScenarioSet(scenarioFile)
		if err != nil {
			return err
		}
		suite.AddScenarioSet(set)
		fmt.Printf("   📄 Scenarios: %s (%d)\n", scenarioFile, len(set.Scenarios))
	} else {
		filter, _ := images.ParseResampleFilter(cfg.Upscaler.Filter)
		ps := &benchmark.PredefinedScenarios{}
		sets := []*benchmark.ScenarioSet{
			ps.GetQuickScenarios(iterations),
			ps.GetFilterComparisonScenarios(source, cfg.Target(), iterations),
		}
		// The ladder starts at the largest standard frame the pattern covers.
		if base, ok := images.GetHighestResolutionUnderDimensions(source.Pixels.Width, source.Pixels.Height); ok {
			sets = append(sets, ps.GetResolutionLadderScenarios(base, filter, iterations))
			fmt.Printf("   🪜 Ladder base: %s\n", base)
		}

		for _, set := range sets {
			name := "scenarios_" + strings.ToLower(strings.ReplaceAll(set.Name, " ", "_")) + ".json"
			if err := benchmark.SaveScenarioSet(set, filepath.Join(dir, name)); err != nil {
				return err
			}
			suite.AddScenarioSet(set)
		}
	}

	fmt.Printf("   📏 Source: %s\n", source)
	fmt.Printf("   🎯 Target: %s\n", cfg.Target())
	fmt.Printf("   🔁 Iterations: %d\n", iterations)
	fmt.Printf("=====================================\n\n")

	return suite.RunAllScenarios(ctx)
}
