package upscale

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects which upscaling strategy produces an output frame.
type Mode int

const (
	// ModeClassical resamples with a built-in filter followed by a sharpen pass.
	ModeClassical Mode = iota
	// ModeNeural delegates to the external AI upscaler executable.
	ModeNeural
	// ModeHybrid runs a classical pass to an intermediate resolution and refines
	// it with the AI upscaler.
	ModeHybrid
)

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeClassical:
		return "classical"
	case ModeNeural:
		return "neural"
	case ModeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Modes returns every mode in pipeline order.
func Modes() []Mode {
	return []Mode{ModeClassical, ModeNeural, ModeHybrid}
}

// ParseMode maps a mode name to its Mode. The enum-style names (fsr_only,
// neural_only) and tool names (fsr, waifu2x) are accepted as aliases.
// Matching is case-insensitive.
//
// Arguments:
// - name: The mode name.
//
// Returns:
// - The matching Mode.
// - error if the name is not recognised.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classical", "fsr", "fsr_only":
		return ModeClassical, nil
	case "neural", "waifu2x", "neural_only":
		return ModeNeural, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return ModeClassical, errors.Errorf("unknown upscale mode %q", name)
	}
}
