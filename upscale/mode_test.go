package upscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	testCases := []struct {
		name string
		want Mode
	}{
		{name: "classical", want: ModeClassical},
		{name: "fsr", want: ModeClassical},
		{name: "FSR_ONLY", want: ModeClassical},
		{name: "neural", want: ModeNeural},
		{name: "waifu2x", want: ModeNeural},
		{name: "NEURAL_ONLY", want: ModeNeural},
		{name: " hybrid ", want: ModeHybrid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMode(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseMode("bilateral")
	assert.Error(t, err)
}

func TestMode_StringRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	assert.Equal(t, "unknown", Mode(-1).String())
}
