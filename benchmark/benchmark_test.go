package benchmark

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/omniforge/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var small = images.ResolutionFromPixels(64, 36)

func smallScenario(name string) Scenario {
	return NewScenarioBuilder(name).
		WithSource(small).
		WithTarget(images.ResolutionFromPixels(128, 72)).
		WithIterations(3).
		WithWarmupRuns(1).
		Build()
}

func TestNewSuite(t *testing.T) {
	outputDir := "./test_output"

	suite := NewSuite(outputDir, nil)

	assert.NotNil(t, suite)
	assert.Equal(t, outputDir, suite.outputDir)
	assert.NotNil(t, suite.out)
	assert.Empty(t, suite.scenarios)
	assert.Empty(t, suite.results)
}

func TestScenarioBuilder(t *testing.T) {
	scenario := NewScenarioBuilder("test_scenario").
		WithFilter(images.MitchellNetravaliFilter).
		WithSharpen(false).
		WithSource(images.FHD).
		WithTarget(images.UHD4K).
		WithIterations(50).
		WithWarmupRuns(5).
		Build()

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "mitchell", scenario.Filter)
	assert.False(t, scenario.Sharpen)
	assert.Equal(t, images.FHD.Pixels, scenario.Source)
	assert.Equal(t, images.UHD4K.Pixels, scenario.Target)
	assert.Equal(t, 50, scenario.Iterations)
	assert.Equal(t, 5, scenario.WarmupRuns)
	assert.NoError(t, scenario.Validate())
}

func TestScenarioBuilder_Defaults(t *testing.T) {
	scenario := NewScenarioBuilder("default").Build()

	assert.Equal(t, "bicubic", scenario.Filter)
	assert.True(t, scenario.Sharpen)
	assert.Equal(t, images.HD720.Pixels, scenario.Source)
	assert.Equal(t, images.QHD.Pixels, scenario.Target)
}

func TestScenario_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(s *Scenario)
	}{
		{name: "filter", modify: func(s *Scenario) { s.Filter = "sinc" }},
		{name: "source", modify: func(s *Scenario) { s.Source.Width = 0 }},
		{name: "target", modify: func(s *Scenario) { s.Target.Height = -1 }},
		{name: "iterations", modify: func(s *Scenario) { s.Iterations = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := smallScenario("invalid")
			tc.modify(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestPredefinedScenarios(t *testing.T) {
	ps := &PredefinedScenarios{}

	quick := ps.GetQuickScenarios(5)
	require.Len(t, quick.Scenarios, 3)
	assert.Equal(t, images.FHD.Pixels, quick.Scenarios[1].Target)
	assert.Equal(t, "lanczos", quick.Scenarios[2].Filter)

	filters := ps.GetFilterComparisonScenarios(images.HD720, images.QHD, 2)
	require.Len(t, filters.Scenarios, 5)
	names := map[string]bool{}
	for _, s := range filters.Scenarios {
		assert.NoError(t, s.Validate())
		assert.False(t, s.Sharpen)
		names[s.Name] = true
	}
	assert.Len(t, names, 5, "scenario names are unique")

	ladder := ps.GetResolutionLadderScenarios(images.HD720, images.BicubicFilter, 1)
	require.Len(t, ladder.Scenarios, 3, "1080p, 1440p and 2160p; 8K is above the ceiling")
	assert.Equal(t, images.FHD.Pixels, ladder.Scenarios[0].Target)
	assert.Equal(t, images.QHD.Pixels, ladder.Scenarios[1].Target)
	assert.Equal(t, images.UHD4K.Pixels, ladder.Scenarios[2].Target)
	assert.Equal(t, "bicubic_sharpen_720p_2160p", ladder.Scenarios[2].Name)
	for _, s := range ladder.Scenarios {
		assert.Equal(t, images.HD720.Pixels, s.Source)
		assert.True(t, s.Sharpen)
	}

	top := ps.GetResolutionLadderScenarios(images.UHD4K, images.LanczosFilter, 1)
	assert.Empty(t, top.Scenarios, "nothing above the ceiling")

	unnamed := ps.GetResolutionLadderScenarios(small, images.BilinearFilter, 1)
	assert.Empty(t, unnamed.Scenarios, "an unnamed source has no aspect ratio to match")
}

func TestRunScenario(t *testing.T) {
	suite := NewSuite(t.TempDir(), &bytes.Buffer{})
	scenario := smallScenario("small")

	metrics, err := suite.RunScenario(context.Background(), scenario)
	require.NoError(t, err)

	assert.Equal(t, scenario, metrics.Scenario)
	assert.GreaterOrEqual(t, metrics.TotalDuration, metrics.ResizeDuration+metrics.SharpenDuration)
	assert.Greater(t, metrics.FramesPerSecond, 0.0)
	assert.LessOrEqual(t, metrics.MinFrame, metrics.AvgFrame)
	assert.LessOrEqual(t, metrics.AvgFrame, metrics.MaxFrame)
	assert.NotEmpty(t, metrics.Checksum)
	assert.Greater(t, metrics.CPUStats.NumCPU, 0)

	again, err := suite.RunScenario(context.Background(), scenario)
	require.NoError(t, err)
	assert.Equal(t, metrics.Checksum, again.Checksum, "output is deterministic")

	noSharpen := scenario
	noSharpen.Sharpen = false
	plain, err := suite.RunScenario(context.Background(), noSharpen)
	require.NoError(t, err)
	assert.Zero(t, plain.SharpenDuration)
	assert.NotEqual(t, metrics.Checksum, plain.Checksum)
}

func TestRunScenario_Errors(t *testing.T) {
	suite := NewSuite(t.TempDir(), &bytes.Buffer{})

	bad := smallScenario("bad")
	bad.Iterations = 0
	_, err := suite.RunScenario(context.Background(), bad)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = suite.RunScenario(ctx, smallScenario("cancelled"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAllScenarios(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	suite := NewSuite(dir, &out)

	bad := smallScenario("bad")
	bad.Filter = "sinc"
	suite.AddScenario(smallScenario("first"))
	suite.AddScenario(bad)
	suite.AddScenario(smallScenario("second"))

	require.NoError(t, suite.RunAllScenarios(context.Background()))

	results := suite.GetResults()
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Scenario.Name)
	assert.Equal(t, "second", results[1].Scenario.Name)
	assert.Contains(t, out.String(), "Scenario bad failed")

	csvFiles, err := filepath.Glob(filepath.Join(dir, "benchmark_summary_*.csv"))
	require.NoError(t, err)
	require.Len(t, csvFiles, 1)

	f, err := os.Open(csvFiles[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, summaryHeader, rows[0])
	assert.Equal(t, "64x36", rows[1][3])

	jsonFiles, err := filepath.Glob(filepath.Join(dir, "benchmark_results_*.json"))
	require.NoError(t, err)
	require.Len(t, jsonFiles, 1)
	data, err := os.ReadFile(jsonFiles[0])
	require.NoError(t, err)
	var decoded []PerformanceMetrics
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
}

func TestScenarioSetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	set := (&PredefinedScenarios{}).GetQuickScenarios(2)

	require.NoError(t, SaveScenarioSet(set, path))
	loaded, err := LoadScenarioSet(path)
	require.NoError(t, err)
	assert.Equal(t, set, loaded)

	require.NoError(t, os.WriteFile(path, []byte(`{"scenarios":[{"name":"x","filter":"sinc"}]}`), 0o644))
	_, err = LoadScenarioSet(path)
	assert.Error(t, err)

	_, err = LoadScenarioSet(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "benchmark", "scenarios.json")
	require.NoError(t, SaveScenarioSet(set, nested), "missing directories are created")
	assert.FileExists(t, nested)
}

func BenchmarkClassicalFSR(b *testing.B) {
	scenario := NewScenarioBuilder("bench").Build()
	suite := NewSuite(b.TempDir(), &bytes.Buffer{})
	scenario.Iterations = 1
	scenario.WarmupRuns = 0

	for i := 0; i < b.N; i++ {
		if _, err := suite.RunScenario(context.Background(), scenario); err != nil {
			b.Fatal(err)
		}
	}
}
