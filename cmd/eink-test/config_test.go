package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "eink.hcl")
	require.NoError(t, os.WriteFile(name, []byte(`
device      = "/dev/fb1"
waveform    = "gl16"
temperature = 24
frontlight  = "GPIO12"
`), 0o600))

	config := defaultFileConfig
	require.NoError(t, loadConfig(name, &config))
	assert.Equal(t, "/dev/fb1", config.Device)
	assert.Equal(t, "gl16", config.Waveform)
	assert.Equal(t, 24, config.Temperature)
	assert.Equal(t, "GPIO12", config.Frontlight)
	assert.Equal(t, defaultFileConfig.Fast, config.Fast, "unset keys keep their default")
	assert.Equal(t, defaultFileConfig.Text, config.Text)
}

func TestLoadConfigErrors(t *testing.T) {
	config := defaultFileConfig
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.hcl"), &config))

	for _, test := range []struct {
		name, input string
	}{
		{"unterminated", `device = "/dev/fb1`},
		{"type", `temperature = "hot"`},
		{"token", `waveform = [`},
	} {
		t.Run(test.name, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "broken.hcl")
			require.NoError(t, os.WriteFile(name, []byte(test.input), 0o600))
			config := defaultFileConfig
			assert.Error(t, loadConfig(name, &config))
		})
	}
}
