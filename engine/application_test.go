package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parallax.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
title = "demo"
width = 800

[renderer]
backend = "headless"
frames = 10

[demo]
name = "ocean"
`), 0o644))

	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(720), cfg.Window.Height)
	assert.True(t, cfg.Renderer.CullFaces)
	assert.Equal(t, uint64(10), cfg.Renderer.Frames)
	assert.Equal(t, "ocean", cfg.Demo.Name)

	rt, err := cfg.RendererType()
	require.NoError(t, err)
	assert.Equal(t, renderer.Headless, rt)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	again := filepath.Join(t.TempDir(), "again.toml")
	require.NoError(t, os.WriteFile(again, out, 0o644))
	reloaded, err := LoadApplicationConfig(again)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestApplicationConfigErrors(t *testing.T) {
	cfg, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), cfg)

	rt, err := cfg.RendererType()
	require.NoError(t, err)
	assert.Equal(t, renderer.OpenGL, rt)

	cfg.Renderer.Backend = "vulkan"
	_, err = cfg.RendererType()
	assert.ErrorIs(t, err, core.ErrUnknownBackend)

	broken := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[window\nwidth = "), 0o644))
	_, err = LoadApplicationConfig(broken)
	assert.Error(t, err)
}
