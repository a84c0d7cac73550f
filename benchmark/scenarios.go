package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nvr-ai/omniforge/images"
	"github.com/pkg/errors"
)

// ScenarioBuilder helps build test scenarios with fluent API
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a new scenario builder with the demo's
// classical settings: bicubic plus sharpen from 720p to 1440p.
func NewScenarioBuilder(name string) *ScenarioBuilder {
	return &ScenarioBuilder{
		scenario: Scenario{
			Name:       name,
			Filter:     images.BicubicFilter.String(),
			Sharpen:    true,
			Source:     images.HD720.Pixels,
			Target:     images.QHD.Pixels,
			Iterations: 10,
			WarmupRuns: 1,
		},
	}
}

// WithFilter sets the resampling filter
func (sb *ScenarioBuilder) WithFilter(filter images.ResampleFilter) *ScenarioBuilder {
	sb.scenario.Filter = filter.String()
	return sb
}

// WithSharpen enables or disables the sharpen pass
func (sb *ScenarioBuilder) WithSharpen(sharpen bool) *ScenarioBuilder {
	sb.scenario.Sharpen = sharpen
	return sb
}

// WithSource sets the input frame size
func (sb *ScenarioBuilder) WithSource(res images.Resolution) *ScenarioBuilder {
	sb.scenario.Source = res.Pixels
	return sb
}

// WithTarget sets the output frame size
func (sb *ScenarioBuilder) WithTarget(res images.Resolution) *ScenarioBuilder {
	sb.scenario.Target = res.Pixels
	return sb
}

// WithIterations sets the number of test iterations
func (sb *ScenarioBuilder) WithIterations(iterations int) *ScenarioBuilder {
	sb.scenario.Iterations = iterations
	return sb
}

// WithWarmupRuns sets the number of warmup runs
func (sb *ScenarioBuilder) WithWarmupRuns(warmups int) *ScenarioBuilder {
	sb.scenario.WarmupRuns = warmups
	return sb
}

// Build returns the configured test scenario
func (sb *ScenarioBuilder) Build() Scenario {
	return sb.scenario
}

// ScenarioSet represents a collection of related test scenarios
type ScenarioSet struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Scenarios   []Scenario `json:"scenarios"`
}

// PredefinedScenarios contains common benchmark scenario sets
type PredefinedScenarios struct{}

// GetQuickScenarios returns the three resizes the demo performs.
func (ps *PredefinedScenarios) GetQuickScenarios(iterations int) *ScenarioSet {
	return &ScenarioSet{
		Name:        "Quick Demo Test",
		Description: "The classical resizes used by the FSR and hybrid paths, plus the Lanczos fallback",
		Scenarios: []Scenario{
			NewScenarioBuilder("fsr_720p_1440p").
				WithIterations(iterations).
				Build(),
			NewScenarioBuilder("hybrid_stage_720p_1080p").
				WithTarget(images.FHD).
				WithIterations(iterations).
				Build(),
			NewScenarioBuilder("lanczos_720p_1440p").
				WithFilter(images.LanczosFilter).
				WithSharpen(false).
				WithIterations(iterations).
				Build(),
		},
	}
}

// GetFilterComparisonScenarios returns one scenario per resampling filter
// between the given resolutions, without sharpening.
func (ps *PredefinedScenarios) GetFilterComparisonScenarios(source, target images.Resolution, iterations int) *ScenarioSet {
	filters := []images.ResampleFilter{
		images.NearestNeighborFilter,
		images.BilinearFilter,
		images.BicubicFilter,
		images.LanczosFilter,
		images.MitchellNetravaliFilter,
	}

	scenarios := make([]Scenario, 0, len(filters))
	for _, f := range filters {
		scenarios = append(scenarios, NewScenarioBuilder(fmt.Sprintf("%s_%dx%d_%dx%d", f,
			source.Pixels.Width, source.Pixels.Height, target.Pixels.Width, target.Pixels.Height)).
			WithFilter(f).
			WithSharpen(false).
			WithSource(source).
			WithTarget(target).
			WithIterations(iterations).
			Build())
	}

	return &ScenarioSet{
		Name:        "Filter Comparison",
		Description: fmt.Sprintf("Every resampling filter from %s to %s", source.Name, target.Name),
		Scenarios:   scenarios,
	}
}

// GetResolutionLadderScenarios upscales source to every larger standard
// resolution with the same aspect ratio, up to 4K UHD, with filter and
// sharpening.
func (ps *PredefinedScenarios) GetResolutionLadderScenarios(source images.Resolution, filter images.ResampleFilter, iterations int) *ScenarioSet {
	ceiling, _ := images.GetResolutionByType(images.ResolutionType4KUHD)

	var targets []images.Resolution
	for _, res := range images.GetSupportedResolutions() {
		if res.AspectRatio != source.AspectRatio || res.Pixels.Height <= source.Pixels.Height {
			continue
		}
		if res.Pixels.Width > ceiling.Pixels.Width || res.Pixels.Height > ceiling.Pixels.Height {
			continue
		}
		targets = append(targets, res)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Pixels.Height < targets[j].Pixels.Height })

	scenarios := make([]Scenario, 0, len(targets))
	for _, target := range targets {
		scenarios = append(scenarios, NewScenarioBuilder(fmt.Sprintf("%s_sharpen_%dp_%dp", filter, source.Pixels.Height, target.Pixels.Height)).
			WithFilter(filter).
			WithSource(source).
			WithTarget(target).
			WithIterations(iterations).
			Build())
	}

	return &ScenarioSet{
		Name:        "Resolution Ladder",
		Description: fmt.Sprintf("%s plus sharpen from %s to each larger %s resolution", filter, source.Name, source.AspectRatio),
		Scenarios:   scenarios,
	}
}

// SaveScenarioSet writes a scenario set to a JSON file
func SaveScenarioSet(scenarioSet *ScenarioSet, filename string) error {
	data, err := json.MarshalIndent(scenarioSet, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal scenario set")
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrap(err, "failed to create scenario directory")
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write scenario file")
	}

	return nil
}

// LoadScenarioSet reads a scenario set from a JSON file and validates every scenario
func LoadScenarioSet(filename string) (*ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}

	var scenarioSet ScenarioSet
	if err := json.Unmarshal(data, &scenarioSet); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal scenario set")
	}

	for _, s := range scenarioSet.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return &scenarioSet, nil
}
