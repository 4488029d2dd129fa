package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thunderhead/internal/lightning"
	"thunderhead/internal/quarkgl"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "thunderhead", cfg.Window.Title)
	assert.Equal(t, 2.0, cfg.Window.MaxPixelRatio)
	assert.Equal(t, float32(75), cfg.Camera.FOV)
	assert.InDelta(t, 0.1, cfg.Camera.Near, 1e-6)
	assert.Equal(t, float32(100), cfg.Camera.Far)
	assert.Equal(t, quarkgl.V3(0, 10, 20), cfg.Camera.Position)
	assert.True(t, cfg.Controls.Damping)
	assert.InDelta(t, 0.05, cfg.Controls.DampingFactor, 1e-6)
	assert.Equal(t, uint32(0x222222), cfg.Light.Ambient)
	assert.Equal(t, float32(3), cfg.Light.FlashIntensity)
	assert.Equal(t, float32(50), cfg.Light.FlashDistance)
	assert.Equal(t, 0.0, cfg.Bloom.Threshold)
	assert.Equal(t, 2.0, cfg.Bloom.Strength)
	assert.Equal(t, 0.5, cfg.Bloom.Radius)
	assert.Equal(t, lightning.DefaultConfig(), cfg.Strike)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Headless.Enabled)
	assert.Equal(t, 60, cfg.Headless.Hz)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "thunderhead.json")
	body := `{
		"window": { "width": 1024, "title": "storm" },
		"strike": { "seed": 42, "lifetime": "1s", "origin": { "y": 12 } },
		"bloom": { "strength": 1.5 }
	}`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))

	cfg, err := Load(file, nil)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "storm", cfg.Window.Title)
	assert.Equal(t, uint64(42), cfg.Strike.Seed)
	assert.Equal(t, time.Second, cfg.Strike.Lifetime)
	assert.Equal(t, quarkgl.V3(0, 12, 0), cfg.Strike.Origin)
	assert.Equal(t, 1.5, cfg.Bloom.Strength)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/thunderhead.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "thunderhead.yaml")
	require.NoError(t, os.WriteFile(file, []byte("window:\n  width: 640\n"), 0o644))
	t.Setenv("THUNDERHEAD_WINDOW_WIDTH", "1280")
	t.Setenv("THUNDERHEAD_HEADLESS_HZ", "30")

	cfg, err := Load(file, nil)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 30, cfg.Headless.Hz)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("THUNDERHEAD_WINDOW_HEIGHT", "700")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--height=768", "--headless", "--ticks=5", "--seed=9"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, 800, cfg.Window.Width, "unset flags keep the defaults")
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, 5, cfg.Headless.Ticks)
	assert.Equal(t, uint64(9), cfg.Strike.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"width":    {"THUNDERHEAD_WINDOW_WIDTH", "0"},
		"fov":      {"THUNDERHEAD_CAMERA_FOV", "180"},
		"damping":  {"THUNDERHEAD_CONTROLS_DAMPINGFACTOR", "2"},
		"levels":   {"THUNDERHEAD_BLOOM_LEVELS", "9"},
		"strands":  {"THUNDERHEAD_STRIKE_STRANDS", "0"},
		"interval": {"THUNDERHEAD_STRIKE_MININTERVAL", "10s"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load("", nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidateWrapsStrikeErrors(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	cfg.Strike.BranchChance = 2
	err = cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, lightning.ErrConfig)
}
