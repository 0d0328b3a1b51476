package config

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, DefaultElementCount, c.ElementCount)
	assert.Equal(t, float64(DefaultRadius), c.Radius)
	assert.Equal(t, DefaultSensitivity, c.Sensitivity)
	assert.False(t, c.FlatOpacity)
	assert.Equal(t, 400, c.ViewportWidth)
	assert.Equal(t, 800, c.ViewportHeight)
	assert.Equal(t, 50, c.ElementSize)
	assert.Equal(t, "#ff9500", c.ElementColor)
	assert.Equal(t, 16, c.FrameIntervalMS)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, 90, c.WebPQuality)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Equal(t, "frames", c.OutputDir)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	c := Config{ElementCount: 30, Radius: 80, WebPQuality: 50, ElementColor: "nonsense"}
	c.Resolve(Flags{Elements: 12, Quality: 101, FlatOpacity: true, Width: 640})

	assert.Equal(t, 12, c.ElementCount)
	assert.Equal(t, 80.0, c.Radius)
	assert.Equal(t, 100, c.WebPQuality, "quality clamps to 100")
	assert.True(t, c.FlatOpacity)
	assert.Equal(t, 640, c.ViewportWidth)
	assert.Equal(t, "#ff9500", c.ElementColor, "invalid colors fall back")
}

func TestResolveClampsNegatives(t *testing.T) {
	t.Parallel()

	c := Config{ElementCount: -5, Radius: -1}
	c.Resolve(Flags{})
	assert.Zero(t, c.ElementCount)
	assert.Zero(t, c.Radius)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sphere.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"script_file": "spin.json",
		"sprite_file": "/abs/dot.png",
		"element_count": 64,
		"sensitivity": 0.02
	}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, c.BaseDir)

	c.Resolve(Flags{OutputDir: "out"})
	assert.Equal(t, filepath.Join(dir, "spin.json"), c.ScriptFile)
	assert.Equal(t, "/abs/dot.png", c.SpriteFile)
	assert.Equal(t, filepath.Join(dir, "out"), c.OutputDir)
	assert.Equal(t, 64, c.ElementCount)
	assert.Equal(t, 0.02, c.Sensitivity)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "config: parse")
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]color.NRGBA{
		"#ff9500":   {R: 0xff, G: 0x95, B: 0x00, A: 0xff},
		"fff":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		"#10203040": {R: 0x10, G: 0x20, B: 0x30, A: 0x40},
	} {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "#12", "#gggggg"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}
