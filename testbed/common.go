package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/components"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/spaghettifunk/parallax/engine/systems"
	"golang.org/x/exp/rand"
)

const skyboxCubemap = "sky"

// demoSeed keeps the randomized layouts the same from run to run.
const demoSeed = 1337

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(demoSeed))
}

// debugPrograms are the whole-scene override programs, in key order.
var debugPrograms = []string{"fallback", "diffuse", "normal", "texcoord", "tangent", "binormal"}

// loadProgram registers shaders/<vert>.vert + shaders/<frag>.frag under name.
func loadProgram(ss *systems.ShaderSystem, name, vert, frag string) (metadata.ProgramSlot, error) {
	slot, err := ss.CreateAndRegisterProgram(name,
		metadata.ShaderStageSource{Stage: metadata.ShaderStageVertex, Path: "shaders/" + vert + ".vert"},
		metadata.ShaderStageSource{Stage: metadata.ShaderStageFragment, Path: "shaders/" + frag + ".frag"},
	)
	if err != nil {
		core.LogError("failed to build program '%s': %s", name, err.Error())
		return slot, err
	}
	return slot, nil
}

func loadDebugPrograms(ss *systems.ShaderSystem) ([]metadata.ProgramSlot, error) {
	slots := make([]metadata.ProgramSlot, 0, len(debugPrograms))
	for _, name := range debugPrograms {
		slot, err := loadProgram(ss, name, "debug", name)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// digitPressed returns n for the first key in KEY_1..KEY_<max> pressed this
// frame, or 0.
func digitPressed(max int) int {
	for i := 1; i <= max && i <= 9; i++ {
		if core.InputIsKeyJustPressed(core.KEY_0 + core.KeyCode(i)) {
			return i
		}
	}
	return 0
}

// handleRenderKeys applies the keys every demo shares: Z cycles the polygon
// mode and C the face culling.
func handleRenderKeys(rs *systems.RendererSystem) {
	if core.InputIsKeyJustPressed(core.KEY_Z) {
		core.LogInfo("polygon mode: %s", rs.CyclePolygonMode())
	}
	if core.InputIsKeyJustPressed(core.KEY_C) {
		core.LogInfo("cull mode: %s", rs.CycleCullMode())
	}
}

// reloadOnKey rebuilds every program when R is pressed. It returns true while
// the last reload has failed, so callers can hold off rendering.
func reloadOnKey(ss *systems.ShaderSystem) bool {
	if core.InputIsKeyJustPressed(core.KEY_R) {
		if err := ss.ReloadAllPrograms(); err != nil {
			core.LogError("shader reload failed, rendering suspended: %s", err.Error())
		} else {
			core.LogInfo("shaders reloaded")
		}
	}
	return ss.ReloadFailed()
}

// skybox is a unit cube around the camera sampled with a cubemap. It lives in
// its own graph and is drawn first, with culling off.
type skybox struct {
	graph *scene.Graph
	root  scene.NodeID
}

func newSkybox(sm *systems.SystemManager, cubemap string) (*skybox, error) {
	slot, err := loadProgram(sm.ShaderSystem, "skybox", "skybox", "skybox")
	if err != nil {
		return nil, err
	}
	mesh, err := sm.GeometrySystem.CreateCube(2, 2, 2, 1, 1)
	if err != nil {
		return nil, err
	}
	texture, err := sm.TextureSystem.LoadCubemap(cubemap, true)
	if err != nil {
		return nil, err
	}

	sb := &skybox{graph: scene.NewGraph()}
	sb.root = sb.graph.NewNode("skybox")
	node := sb.graph.Node(sb.root)
	node.SetGeometry(mesh.WithTextures(metadata.NamedBinding{
		Name:    metadata.CubemapTexture,
		Binding: metadata.TextureBinding{Handle: texture, Kind: metadata.TextureCubeMap},
	}))
	node.SetProgram(slot, nil)
	node.SetScaling(mgl32.Vec3{50, 50, 50})
	return sb, nil
}

func (sb *skybox) view(camera *components.Camera) systems.RenderView {
	sb.graph.Node(sb.root).SetTranslation(camera.GetPosition())
	return systems.RenderView{
		Name:           "skybox",
		Graph:          sb.graph,
		Root:           sb.root,
		WorldToClip:    camera.WorldToClip(),
		DisableCulling: true,
	}
}

// defaultCamera puts the engine camera at position looking at target.
func defaultCamera(g *engine.Game, position, target mgl32.Vec3) *components.Camera {
	camera := g.SystemManager.CameraSystem.GetDefault()
	camera.SetPosition(position)
	camera.LookAt(target)
	return camera
}
