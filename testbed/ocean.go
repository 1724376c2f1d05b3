package testbed

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/spaghettifunk/parallax/engine/systems"
)

// newWave is what N inserts.
var newWave = Wave{Amplitude: 0.3, Direction: mgl32.Vec2{1, 1}, Frequency: 1, Phase: 1, Spikiness: 1}

type ocean struct {
	*engine.Game

	graph  *scene.Graph
	root   scene.NodeID
	magic  scene.NodeID
	sky    *skybox
	waves  *WaveSet
	water  *Water
	halted bool
}

func newOcean(g *engine.Game) demo {
	waves := NewWaveSet(DefaultWaves()...)
	return &ocean{Game: g, waves: waves, water: NewWater(waves)}
}

func (o *ocean) Initialize() error {
	sm := o.SystemManager
	program, err := loadProgram(sm.ShaderSystem, "water", "water", "water")
	if err != nil {
		return err
	}
	sky, err := newSkybox(sm, skyboxCubemap)
	if err != nil {
		return err
	}
	o.sky = sky
	cubemap, _ := sm.TextureSystem.Get("cubemaps/" + skyboxCubemap)
	bump, err := sm.TextureSystem.Load2D("textures/waves.png", true)
	if err != nil {
		return err
	}

	gs := sm.GeometrySystem
	plate, err := gs.CreateOceanplate(100, 100, 40)
	if err != nil {
		return err
	}
	drop, err := gs.CreateSphere(50, 50, 10)
	if err != nil {
		return err
	}
	ring, err := gs.CreateTorus(50, 50, 12.5, 4)
	if err != nil {
		return err
	}

	g := scene.NewGraph()
	o.graph = g
	o.root = g.NewNode("root")

	water := func(name string, mesh *metadata.Mesh) scene.NodeID {
		id := g.NewNode(name)
		n := g.Node(id)
		n.SetGeometry(mesh)
		n.SetProgram(program, o.water)
		n.AddTexture(metadata.BumpTexture, bump, metadata.Texture2D)
		n.AddTexture(metadata.CubemapTexture, cubemap.Handle, metadata.TextureCubeMap)
		return id
	}

	surface := water("ocean", plate)
	o.magic = g.NewNode("magic")
	mn := g.Node(o.magic)
	mn.SetTranslation(mgl32.Vec3{0, 40, 0})
	mn.SetRotationX(m.Pi / 2)
	dropID := water("drop", drop)
	g.Node(dropID).SetScaling(mgl32.Vec3{0.5, 0.5, 0.5})
	ringID := water("ring", ring)

	for _, edge := range [][2]scene.NodeID{{o.root, surface}, {o.root, o.magic}, {o.magic, dropID}, {o.magic, ringID}} {
		if err := g.AddChild(edge[0], edge[1]); err != nil {
			return err
		}
	}

	camera := defaultCamera(o.Game, mgl32.Vec3{0, 15, 60}, mgl32.Vec3{0, 10, 0})
	camera.MoveSpeed = 15
	o.water.CameraPosition = camera.GetPosition()
	return nil
}

func (o *ocean) Update(deltaTime float64) error {
	dt := float32(deltaTime)
	camera := o.SystemManager.CameraSystem.GetDefault()
	camera.Update(deltaTime)

	if core.InputIsKeyJustPressed(core.KEY_N) {
		if o.waves.Insert(newWave) {
			core.LogInfo("wave added (%d/%d)", o.waves.Len(), MaxWaves)
		} else {
			core.LogWarn("wave set is full (%d)", MaxWaves)
		}
	}
	if core.InputIsKeyJustPressed(core.KEY_X) && o.waves.Delete(o.waves.Len()-1) {
		core.LogInfo("wave removed (%d/%d)", o.waves.Len(), MaxWaves)
	}
	handleRenderKeys(o.SystemManager.RendererSystem)
	o.halted = reloadOnKey(o.SystemManager.ShaderSystem)

	o.water.Time += dt
	o.water.CameraPosition = camera.GetPosition()
	o.graph.Node(o.magic).RotateZ(0.3 * dt)
	return nil
}

func (o *ocean) Render(packet *systems.RenderPacket, deltaTime float64) error {
	if o.halted {
		return nil
	}
	camera := o.SystemManager.CameraSystem.GetDefault()
	packet.Views = append(packet.Views,
		o.sky.view(camera),
		systems.RenderView{
			Name:        "ocean",
			Graph:       o.graph,
			Root:        o.root,
			WorldToClip: camera.WorldToClip(),
		},
	)
	return nil
}

func (o *ocean) OnResize(width uint32, height uint32) error {
	return nil
}

func (o *ocean) Shutdown() error {
	return nil
}
