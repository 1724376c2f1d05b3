package systems

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, root, rel string, w, h int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))))
}

func writeCubemap(t *testing.T, root, dir string, size int) {
	t.Helper()
	for _, face := range metadata.CubemapFaces {
		writeImage(t, root, "cubemaps/"+dir+"/"+face+".png", size, size)
	}
}

func TestLoad2DCachesByName(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "textures/earth_diffuse.png", 8, 4)
	b := headless.New()
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 4}, nil, newAssets(t, root, false), b)
	require.NoError(t, err)

	h, err := ts.Load2D("textures/earth_diffuse.png", true)
	require.NoError(t, err)
	require.NotZero(t, h)
	assert.Equal(t, headless.Texture{Kind: metadata.Texture2D, Width: 8, Height: 4, Mipmap: true}, b.Textures[h])

	again, err := ts.Load2D("textures/earth_diffuse.png", true)
	require.NoError(t, err)
	assert.Equal(t, h, again)
	assert.Len(t, b.Textures, 1)

	h, err = ts.Load2D("textures/missing.png", false)
	assert.Zero(t, h)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestLoadCubemap(t *testing.T) {
	root := t.TempDir()
	writeCubemap(t, root, "NissiBeach2", 4)
	writeCubemap(t, root, "uneven", 4)
	writeImage(t, root, "cubemaps/uneven/negz.png", 2, 2)
	writeCubemap(t, root, "partial", 4)
	require.NoError(t, os.Remove(filepath.Join(root, "cubemaps", "partial", "posy.png")))

	js, err := NewJobSystem(3, 6)
	require.NoError(t, err)
	defer js.Shutdown()

	b := headless.New()
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 8}, js, newAssets(t, root, false), b)
	require.NoError(t, err)

	h, err := ts.LoadCubemap("NissiBeach2", true)
	require.NoError(t, err)
	assert.Equal(t, metadata.TextureCubeMap, b.Textures[h].Kind)
	binding, ok := ts.Get("cubemaps/NissiBeach2")
	require.True(t, ok)
	assert.Equal(t, h, binding.Handle)

	h, err = ts.LoadCubemap("uneven", true)
	assert.Zero(t, h)
	assert.ErrorIs(t, err, core.ErrCubemapFace)

	h, err = ts.LoadCubemap("partial", true)
	assert.Zero(t, h)
	assert.ErrorIs(t, err, core.ErrCubemapFace)

	require.NoError(t, ts.Shutdown())
	assert.Empty(t, b.Textures)
}

func TestTextureCapacity(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "a.png", 1, 1)
	writeImage(t, root, "b.png", 1, 1)
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 1}, nil, newAssets(t, root, false), headless.New())
	require.NoError(t, err)

	_, err = ts.Load2D("a.png", false)
	require.NoError(t, err)
	h, err := ts.Load2D("b.png", false)
	assert.Error(t, err)
	assert.Zero(t, h)

	_, err = NewTextureSystem(&TextureSystemConfig{}, nil, nil, headless.New())
	assert.Error(t, err)
}
