package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writePNG(t *testing.T, root, rel string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		// red top row, blue bottom row
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, h-1, color.NRGBA{B: 255, A: 255})
	}
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newManager(t *testing.T, root string, watch bool) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root, watch))
	t.Cleanup(func() { _ = am.Shutdown() })
	return am
}

func TestIndexAndResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders/fallback.vert", "void main() {}")
	writeFile(t, root, "shaders/fallback.frag", "void main() {}")
	writeFile(t, root, "notes.md", "ignored")
	writePNG(t, root, "textures/checker.png", 4, 4)

	am := newManager(t, root, false)
	assert.Equal(t, 3, am.Count())

	path, err := am.Resolve("shaders/fallback.vert")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shaders", "fallback.vert"), path)

	_, err = am.Resolve("notes.md")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	_, err = am.Resolve("shaders/missing.frag")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	info, ok := am.Info("./textures/checker.png")
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeImage, info.Type)
}

func TestInitializeMissingRoot(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	defer am.Shutdown()
	assert.ErrorIs(t, am.Initialize(filepath.Join(t.TempDir(), "nope"), false), core.ErrAssetNotFound)
}

func TestLoadShaderAndImage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders/diffuse.frag", "out vec4 frag_color;")
	writePNG(t, root, "textures/stripes.png", 3, 2)

	am := newManager(t, root, false)

	res, err := am.LoadAsset("shaders/diffuse.frag", metadata.ResourceTypeShader, nil)
	require.NoError(t, err)
	assert.Equal(t, "out vec4 frag_color;", res.Data)
	assert.Equal(t, "shaders/diffuse.frag", res.Name)

	res, err = am.LoadAsset("textures/stripes.png", metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	img := res.Data.(*image.NRGBA)
	assert.Equal(t, 3, img.Rect.Dx())
	assert.Equal(t, 2, img.Rect.Dy())
	// flipped: blue row first
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 1))

	res, err = am.LoadAsset("textures/stripes.png", metadata.ResourceTypeImage, nil)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, res.Data.(*image.NRGBA).NRGBAAt(2, 0))
	assert.NoError(t, am.UnloadAsset(res))

	_, err = am.LoadAsset("textures/stripes.png", metadata.ResourceTypeNone, nil)
	assert.ErrorIs(t, err, core.ErrUnknownResourceType)
}

func TestLoadCorruptImage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "textures/broken.png", "not a png")
	am := newManager(t, root, false)

	_, err := am.LoadAsset("textures/broken.png", metadata.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, core.ErrTextureDecode)
}

func TestWatchNotifiesSubscribers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders/phong.frag", "void main() {}")
	am := newManager(t, root, true)

	shaders := am.Subscribe(metadata.ResourceTypeShader)
	images := am.Subscribe(metadata.ResourceTypeImage)

	writeFile(t, root, "shaders/phong.frag", "void main() { /* edited */ }")

	select {
	case name := <-shaders:
		assert.Equal(t, "shaders/phong.frag", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case name := <-images:
		t.Fatalf("image subscriber got %s", name)
	default:
	}

	writeFile(t, root, "shaders/new.vert", "void main() {}")
	require.Eventually(t, func() bool {
		_, err := am.Resolve("shaders/new.vert")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, am.Shutdown())
	_, open := <-images
	assert.False(t, open)
	assert.NoError(t, am.Shutdown())
}
