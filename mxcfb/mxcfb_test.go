package mxcfb

import (
	"testing"
	"unsafe"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/eink/internal/ioctl"
)

func TestStructSizes(t *testing.T) {
	assert.Equal(t, uintptr(16), unsafe.Sizeof(Rect{}))
	assert.Equal(t, uintptr(72), unsafe.Sizeof(UpdateData{}))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(UpdateMarkerData{}))
}

func TestCommands(t *testing.T) {
	assert.Equal(t, ioctl.Command(0x4048462e), SendUpdate)
	assert.Equal(t, ioctl.Command(0xc008462f), WaitForUpdateComplete)
}

func TestParseWaveformMode(t *testing.T) {
	tests := []struct {
		Name string
		Want WaveformMode
	}{
		{"gc16", WaveformGC16},
		{"GC16", WaveformGC16},
		{"gc16_fast", WaveformGC16Fast},
		{" a2 ", WaveformA2},
		{"du", WaveformDU},
		{"gl16-inv", WaveformGL16Inv},
		{"init", WaveformInit},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			mode, err := ParseWaveformMode(test.Name)
			require.NoError(t, err)
			assert.Equal(t, test.Want, mode)
		})
	}

	_, err := ParseWaveformMode("sparkle")
	assert.True(t, errors.IsNotValid(err))
}

func TestWaveformModeString(t *testing.T) {
	for mode, name := range waveformNames {
		assert.Equal(t, name, mode.String())

		parsed, err := ParseWaveformMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	assert.Equal(t, "waveform(0x101)", WaveformMode(0x101).String())
}

func TestUpdateModeString(t *testing.T) {
	assert.Equal(t, "partial", UpdatePartial.String())
	assert.Equal(t, "full", UpdateFull.String())
	assert.Equal(t, "mode(0x7)", UpdateMode(7).String())
}
