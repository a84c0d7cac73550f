// Package config holds the demo settings: where files go, how the test frame
// looks and how each upscaler is driven. Defaults reproduce the stock
// demo settings; a YAML file overrides any subset of them.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nvr-ai/omniforge/images"
	"github.com/nvr-ai/omniforge/testpattern"
	"github.com/nvr-ai/omniforge/upscale"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration.
type Config struct {
	Output     OutputConfig        `yaml:"output"`
	Pattern    testpattern.Options `yaml:"pattern"`
	Upscaler   UpscalerConfig      `yaml:"upscaler"`
	Comparison ComparisonConfig    `yaml:"comparison"`
	// Open launches the platform image viewer on the comparison when done.
	Open bool `yaml:"open"`
	// Quality enables PSNR / ΔE scoring of each upscale in the summary.
	Quality bool `yaml:"quality"`
	// Debug enables [DEBUG] log lines.
	Debug bool `yaml:"debug"`
}

// OutputConfig names the files written by the demo.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Input      string `yaml:"input"`
	Classical  string `yaml:"classical"`
	Neural     string `yaml:"neural"`
	Hybrid     string `yaml:"hybrid"`
	Comparison string `yaml:"comparison"`
	// Format of the comparison image: png, jpeg or webp. It replaces the
	// extension of Comparison.
	Format string `yaml:"format"`
}

// UpscalerConfig drives the classical and AI upscalers.
type UpscalerConfig struct {
	Executable   string                  `yaml:"executable"`
	ModelDir     string                  `yaml:"model_dir"`
	Noise        int                     `yaml:"noise"`
	Scale        int                     `yaml:"scale"`
	Timeout      time.Duration           `yaml:"timeout"`
	Filter       string                  `yaml:"filter"`
	Sharpen      bool                    `yaml:"sharpen"`
	Target       images.ResolutionPixels `yaml:"target"`
	Intermediate images.ResolutionPixels `yaml:"intermediate"`
}

// ComparisonConfig lays out the 2x2 grid.
type ComparisonConfig struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	FontSize float64   `yaml:"font_size"`
	Labels   [4]string `yaml:"labels"`
}

// Default returns the stock demo configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:        "demo_output",
			Input:      "input_720p.png",
			Classical:  "fsr_1440p.png",
			Neural:     "waifu2x_1440p.png",
			Hybrid:     "hybrid_1440p.png",
			Comparison: "comparison.png",
			Format:     string(images.FormatPNG),
		},
		Pattern: testpattern.DefaultOptions(),
		Upscaler: UpscalerConfig{
			Executable:   upscale.DefaultExecutable,
			ModelDir:     upscale.DefaultModelDir,
			Noise:        0,
			Scale:        2,
			Filter:       images.BicubicFilter.String(),
			Sharpen:      true,
			Target:       images.QHD.Pixels,
			Intermediate: images.FHD.Pixels,
		},
		Comparison: ComparisonConfig{
			Width:    1280,
			Height:   720,
			FontSize: 30,
			Labels: [4]string{
				"Original (720p)",
				"FSR Upscaled (1440p)",
				"Waifu2x AI (1440p)",
				"Hybrid (1440p)",
			},
		},
		Open:    true,
		Quality: true,
	}
}

// Load reads the YAML file at path over Default and validates the result.
//
// Arguments:
// - path: The YAML file.
//
// Returns:
// - The merged configuration.
// - error if the file cannot be read or parsed, or ErrInvalidConfig.
//
// @example
// cfg, err := config.Load("omniforge.yaml")
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// waifu2x-ncnn-vulkan accepts these values for -n and -s.
var (
	validNoise  = map[int]bool{-1: true, 0: true, 1: true, 2: true, 3: true}
	validScales = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true}
)

// Validate checks that every field can be used as-is.
func (c *Config) Validate() error {
	o := c.Output
	if o.Dir == "" {
		return errors.Wrap(ErrInvalidConfig, "output.dir is required")
	}

	if o.Comparison == "" {
		return errors.Wrap(ErrInvalidConfig, "output.comparison is required")
	}

	// The comparison is checked under the name it is written as.
	seen := map[string]string{}
	for key, name := range map[string]string{
		"output.input":      o.Input,
		"output.classical":  o.Classical,
		"output.neural":     o.Neural,
		"output.hybrid":     o.Hybrid,
		"output.comparison": c.comparisonName(),
	} {
		if name == "" {
			return errors.Wrapf(ErrInvalidConfig, "%s is required", key)
		}
		if filepath.Base(name) == upscale.TempFileName {
			return errors.Wrapf(ErrInvalidConfig, "%s collides with the hybrid temporary file", key)
		}
		if other, dup := seen[name]; dup {
			return errors.Wrapf(ErrInvalidConfig, "%s and %s both write %s", key, other, name)
		}
		seen[name] = key
	}
	if _, ok := images.ParseFormat(o.Format); !ok {
		return errors.Wrapf(ErrInvalidConfig, "output.format %q is not one of png, jpeg, webp", o.Format)
	}

	if c.Pattern.Width <= 0 || c.Pattern.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "pattern size %dx%d must be positive", c.Pattern.Width, c.Pattern.Height)
	}

	u := c.Upscaler
	if !validNoise[u.Noise] {
		return errors.Wrapf(ErrInvalidConfig, "upscaler.noise %d must be between -1 and 3", u.Noise)
	}
	if !validScales[u.Scale] {
		return errors.Wrapf(ErrInvalidConfig, "upscaler.scale %d must be a power of two up to 32", u.Scale)
	}
	if u.Timeout < 0 {
		return errors.Wrap(ErrInvalidConfig, "upscaler.timeout must not be negative")
	}
	if _, ok := images.ParseResampleFilter(u.Filter); !ok {
		return errors.Wrapf(ErrInvalidConfig, "upscaler.filter %q is unknown", u.Filter)
	}
	if u.Target.Width <= 0 || u.Target.Height <= 0 {
		return errors.Wrap(ErrInvalidConfig, "upscaler.target must be positive")
	}
	if u.Intermediate.Width <= 0 || u.Intermediate.Height <= 0 {
		return errors.Wrap(ErrInvalidConfig, "upscaler.intermediate must be positive")
	}

	if c.Comparison.Width <= 0 || c.Comparison.Height <= 0 {
		return errors.Wrap(ErrInvalidConfig, "comparison size must be positive")
	}
	if c.Comparison.Width%2 != 0 || c.Comparison.Height%2 != 0 {
		return errors.Wrap(ErrInvalidConfig, "comparison size must be even to split into quadrants")
	}

	return nil
}

// Path joins name onto the output directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.Output.Dir, name)
}

// ComparisonPath returns the comparison file with the extension of the
// configured format.
func (c *Config) ComparisonPath() string {
	return c.Path(c.comparisonName())
}

func (c *Config) comparisonName() string {
	name := c.Output.Comparison
	format, ok := images.ParseFormat(c.Output.Format)
	if !ok {
		format = images.FormatPNG
	}
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + format.Extension()
}

// Target returns the resolution every upscaler must produce.
func (c *Config) Target() images.Resolution {
	return images.ResolutionFromPixels(c.Upscaler.Target.Width, c.Upscaler.Target.Height)
}

// UpscaleOptions converts the upscaler section for upscale.New.
func (c *Config) UpscaleOptions() upscale.Options {
	filter, _ := images.ParseResampleFilter(c.Upscaler.Filter)
	return upscale.Options{
		Filter:       filter,
		Sharpen:      c.Upscaler.Sharpen,
		Executable:   c.Upscaler.Executable,
		ModelDir:     c.Upscaler.ModelDir,
		Noise:        c.Upscaler.Noise,
		Scale:        c.Upscaler.Scale,
		Timeout:      c.Upscaler.Timeout,
		Intermediate: images.ResolutionFromPixels(c.Upscaler.Intermediate.Width, c.Upscaler.Intermediate.Height),
		TempDir:      c.Output.Dir,
	}
}
