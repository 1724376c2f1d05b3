package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/platform/headless"
	"github.com/spaghettifunk/parallax/engine/renderer"
	hb "github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/spaghettifunk/parallax/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGame struct {
	graph   *scene.Graph
	root    scene.NodeID
	updates int
	resizes [][2]uint32
}

func newTestEngine(t *testing.T, frames uint64) (*Engine, *Game, *testGame, *headless.Window, *hb.Backend) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shaders", "flat.vert"), []byte("void main() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shaders", "flat.frag"), []byte("void main() {}"), 0o644))

	cfg := DefaultApplicationConfig()
	cfg.Renderer.Backend = renderer.Headless.String()
	cfg.Renderer.Frames = frames
	cfg.Assets.Root = root
	cfg.Assets.Watch = false
	cfg.Log.Level = "error"

	state := &testGame{}
	g := &Game{ApplicationConfig: cfg, State: state}
	g.FnInitialize = func() error {
		slot, err := g.SystemManager.ShaderSystem.CreateAndRegisterProgram("flat",
			metadata.ShaderStageSource{Stage: metadata.ShaderStageVertex, Path: "shaders/flat.vert"},
			metadata.ShaderStageSource{Stage: metadata.ShaderStageFragment, Path: "shaders/flat.frag"},
		)
		if err != nil {
			return err
		}
		sphere, err := g.SystemManager.GeometrySystem.CreateSphere(8, 8, 1)
		if err != nil {
			return err
		}
		state.graph = scene.NewGraph()
		state.root = state.graph.NewNode("root")
		planet := state.graph.NewNode("planet")
		if err := state.graph.AddChild(state.root, planet); err != nil {
			return err
		}
		state.graph.Node(planet).SetGeometry(sphere)
		state.graph.Node(planet).SetProgram(slot, nil)
		return nil
	}
	g.FnUpdate = func(deltaTime float64) error {
		state.updates++
		state.graph.Node(state.root).RotateY(float32(deltaTime))
		return nil
	}
	g.FnRender = func(packet *systems.RenderPacket, deltaTime float64) error {
		camera := g.SystemManager.CameraSystem.GetDefault()
		packet.Views = append(packet.Views, systems.RenderView{
			Name:        "world",
			Graph:       state.graph,
			Root:        state.root,
			WorldToClip: camera.WorldToClip(),
		})
		return nil
	}
	g.FnOnResize = func(width, height uint32) error {
		state.resizes = append(state.resizes, [2]uint32{width, height})
		return nil
	}
	g.FnShutdown = func() error { return nil }

	window := headless.New(frames)
	backend := hb.New()
	e, err := New(g, window, backend)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e, g, state, window, backend
}

func TestEngineRunsHeadless(t *testing.T) {
	e, g, state, window, backend := newTestEngine(t, 3)
	assert.Equal(t, EngineStageInitialized, e.Stage())
	require.Len(t, state.resizes, 1)
	assert.Equal(t, [2]uint32{1280, 720}, state.resizes[0])

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(3), window.Frames)
	assert.Equal(t, uint64(3), backend.Frames)
	assert.Equal(t, 3, state.updates)
	require.Len(t, backend.Draws, 1)
	assert.Equal(t, mgl32.Vec4{0.2, 0.2, 0.2, 1}, backend.ClearColour)

	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.Zero(t, g.SystemManager.ShaderSystem.Count())
	// a second shutdown is a no-op
	require.NoError(t, e.Shutdown())
}

func TestEngineResizeSuspends(t *testing.T) {
	e, g, state, window, backend := newTestEngine(t, 1)

	window.Resize(0, 0)
	assert.True(t, e.isSuspended)
	assert.Len(t, state.resizes, 1)

	window.Resize(640, 480)
	assert.False(t, e.isSuspended)
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
	assert.Equal(t, uint32(640), backend.Width)
	assert.Equal(t, [2]uint32{640, 480}, state.resizes[len(state.resizes)-1])
	assert.InDelta(t, 640.0/480.0, g.SystemManager.CameraSystem.GetDefault().Aspect, 1e-5)

	// same size again is ignored
	n := len(state.resizes)
	window.Resize(640, 480)
	assert.Len(t, state.resizes, n)
}

func TestEngineKeys(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t, 0)

	core.EventFire(nil, core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_F2}})
	assert.True(t, e.showHUD)
	core.EventFire(nil, core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_F3}})
	assert.Equal(t, core.DebugLevel, core.GetLogLevel())
	core.EventFire(nil, core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_F3}})
	assert.Equal(t, core.ErrorLevel, core.GetLogLevel())

	core.EventFire(nil, core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE}})
	assert.False(t, e.isRunning)
	// the loop exits without drawing
	require.NoError(t, e.Run())
}

func TestEngineStopsOnGameError(t *testing.T) {
	e, g, _, _, _ := newTestEngine(t, 5)
	g.FnUpdate = func(float64) error { return core.ErrInvalidNode }
	assert.ErrorIs(t, e.Run(), core.ErrInvalidNode)
}
