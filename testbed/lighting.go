package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/spaghettifunk/parallax/engine/systems"
	"golang.org/x/exp/rand"
)

var litPrograms = []string{"phong", "bump", "reflect"}

// per-shape diffuse tints layered over the shared Lighting block
var litTints = []mgl32.Vec3{{0.7, 0.2, 0.4}, {0.2, 0.5, 0.8}, {0.6, 0.6, 0.3}, {0.4, 0.7, 0.4}}

type lighting struct {
	*engine.Game

	graph    *scene.Graph
	root     scene.NodeID
	shapes   []scene.NodeID
	looks    []scene.Material
	light    scene.NodeID
	sky      *skybox
	programs []metadata.ProgramSlot
	params   *Lighting
	rng      *rand.Rand
	angle    float32
	// the last reload failed; nothing is drawn until one succeeds
	halted bool
}

func newLighting(g *engine.Game) demo {
	return &lighting{Game: g, params: NewLighting(), rng: newRand()}
}

func (l *lighting) Initialize() error {
	sm := l.SystemManager
	for _, name := range litPrograms {
		slot, err := loadProgram(sm.ShaderSystem, name, name, name)
		if err != nil {
			return err
		}
		l.programs = append(l.programs, slot)
	}
	marker, err := loadProgram(sm.ShaderSystem, "light", "debug", "fallback")
	if err != nil {
		return err
	}

	sky, err := newSkybox(sm, skyboxCubemap)
	if err != nil {
		return err
	}
	l.sky = sky
	cubemap, _ := sm.TextureSystem.Get("cubemaps/" + skyboxCubemap)

	diffuse, err := sm.TextureSystem.Load2D("textures/stone_diffuse.png", true)
	if err != nil {
		return err
	}
	bump, err := sm.TextureSystem.Load2D("textures/stone_bump.png", true)
	if err != nil {
		return err
	}

	gs := sm.GeometrySystem
	sphere, err := gs.CreateSphere(64, 32, 1)
	if err != nil {
		return err
	}
	torus, err := gs.CreateTorus(64, 32, 1, 0.35)
	if err != nil {
		return err
	}
	cube, err := gs.CreateCube(1.6, 1.6, 1.6, 2, 2)
	if err != nil {
		return err
	}
	quad, err := gs.CreateQuad(2, 2)
	if err != nil {
		return err
	}
	bulb, err := gs.CreateSphere(12, 8, 0.1)
	if err != nil {
		return err
	}

	textures := []metadata.NamedBinding{
		{Name: metadata.DiffuseTexture, Binding: metadata.TextureBinding{Handle: diffuse, Kind: metadata.Texture2D}},
		{Name: metadata.BumpTexture, Binding: metadata.TextureBinding{Handle: bump, Kind: metadata.Texture2D}},
		{Name: metadata.CubemapTexture, Binding: cubemap},
	}

	g := scene.NewGraph()
	l.graph = g
	l.root = g.NewNode("root")
	for i, mesh := range []*metadata.Mesh{sphere, torus, cube, quad} {
		look := scene.Materials{l.params, scene.Params{metadata.UniformVec3("diffuse", litTints[i])}}
		l.looks = append(l.looks, look)

		id := g.NewNode(mesh.Name)
		n := g.Node(id)
		n.SetGeometry(mesh.WithTextures(textures...))
		n.SetProgram(l.programs[0], look)
		n.SetRotationX(-math.K_PI_2 * math.FRandomInRange(l.rng, 0, 1))
		n.SetScaling(mgl32.Vec3{
			math.FRandomInRange(l.rng, 0.5, 1.5),
			math.FRandomInRange(l.rng, 0.5, 1.5),
			math.FRandomInRange(l.rng, 0.5, 1.5),
		})
		n.SetTranslation(mgl32.Vec3{float32(i)*3 - 4.5, 0, 0})
		if err := g.AddChild(l.root, id); err != nil {
			return err
		}
		l.shapes = append(l.shapes, id)
	}

	l.light = g.NewNode("light")
	ln := g.Node(l.light)
	ln.SetGeometry(bulb)
	ln.SetProgram(marker, nil)
	if err := g.AddChild(l.root, l.light); err != nil {
		return err
	}

	camera := defaultCamera(l.Game, mgl32.Vec3{0, 2, 9}, mgl32.Vec3{})
	l.params.CameraPosition = camera.GetPosition()
	return nil
}

// useProgram puts every shape on program i of litPrograms.
func (l *lighting) useProgram(i int) {
	for k, id := range l.shapes {
		l.graph.Node(id).SetProgram(l.programs[i], l.looks[k])
	}
	core.LogInfo("lighting program: %s", litPrograms[i])
}

func (l *lighting) Update(deltaTime float64) error {
	dt := float32(deltaTime)
	camera := l.SystemManager.CameraSystem.GetDefault()
	camera.Update(deltaTime)

	if k := digitPressed(len(l.programs)); k > 0 {
		l.useProgram(k - 1)
	}
	handleRenderKeys(l.SystemManager.RendererSystem)

	halted := reloadOnKey(l.SystemManager.ShaderSystem)
	if halted != l.halted && !halted {
		core.LogInfo("rendering resumed")
	}
	l.halted = halted

	l.angle += 0.5 * dt
	l.params.LightPosition = mgl32.Vec3{6 * math.Cos(l.angle), l.lightHeight(), 6 * math.Sin(l.angle)}
	l.params.CameraPosition = camera.GetPosition()
	l.graph.Node(l.light).SetTranslation(l.params.LightPosition)
	for _, id := range l.shapes {
		l.graph.Node(id).RotateY(0.2 * dt)
	}
	return nil
}

// lightHeight bobs the light between 1 and 5 units, twice per orbit.
func (l *lighting) lightHeight() float32 {
	return math.RangeConvertFloat32(math.Sin(2*l.angle), -1, 1, 1, 5)
}

func (l *lighting) Render(packet *systems.RenderPacket, deltaTime float64) error {
	if l.halted {
		return nil
	}
	camera := l.SystemManager.CameraSystem.GetDefault()
	packet.Views = append(packet.Views,
		l.sky.view(camera),
		systems.RenderView{
			Name:        "world",
			Graph:       l.graph,
			Root:        l.root,
			WorldToClip: camera.WorldToClip(),
		},
	)
	return nil
}

func (l *lighting) OnResize(width uint32, height uint32) error {
	return nil
}

func (l *lighting) Shutdown() error {
	return nil
}
