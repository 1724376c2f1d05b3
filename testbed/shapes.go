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

var runnerTensions = []float32{0, 0.5, 1}

// shapes lays every generated mesh out in a row and renders the whole graph
// with one of the debug programs.
type shapes struct {
	*engine.Game

	graph    *scene.Graph
	root     scene.NodeID
	gallery  []scene.NodeID
	runnerID scene.NodeID
	runner   *PathRunner
	debug    []metadata.ProgramSlot
	selected int
	lighting *Lighting
	tension  int
	rng      *rand.Rand
}

func newShapes(g *engine.Game) demo {
	return &shapes{Game: g, lighting: NewLighting(), tension: 1, rng: newRand()}
}

func (s *shapes) Initialize() error {
	sm := s.SystemManager
	debug, err := loadDebugPrograms(sm.ShaderSystem)
	if err != nil {
		return err
	}
	s.debug = debug
	// diffuse
	s.selected = 1

	gs := sm.GeometrySystem
	quad, err := gs.CreateQuad(2, 2)
	if err != nil {
		return err
	}
	ring, err := gs.CreateCircleRing(4, 60, 0.5, 1)
	if err != nil {
		return err
	}
	sphere, err := gs.CreateSphere(40, 20, math.FRandomInRange(s.rng, 0.5, 1))
	if err != nil {
		return err
	}
	torus, err := gs.CreateTorus(40, 20, 0.8, 0.3)
	if err != nil {
		return err
	}
	zoneplate, err := gs.CreateZoneplate(64, 64, 4, 0.2)
	if err != nil {
		return err
	}
	cube, err := gs.CreateCube(1.5, 1.5, 1.5, 1, 1)
	if err != nil {
		return err
	}
	marker, err := gs.CreateSphere(8, 6, 0.1)
	if err != nil {
		return err
	}
	runnerMesh, err := gs.CreateTorus(16, 8, 0.25, 0.08)
	if err != nil {
		return err
	}

	g := scene.NewGraph()
	s.graph = g
	s.root = g.NewNode("root")

	for i, mesh := range []*metadata.Mesh{quad, ring, sphere, torus, zoneplate, cube} {
		id := g.NewNode(mesh.Name)
		n := g.Node(id)
		n.SetGeometry(mesh)
		n.SetProgram(debug[1], s.lighting)
		n.SetTranslation(mgl32.Vec3{float32(i)*3 - 7.5, 0, 0})
		if err := g.AddChild(s.root, id); err != nil {
			return err
		}
		s.gallery = append(s.gallery, id)
	}

	points := []mgl32.Vec3{
		{-8, 2.5, 0}, {-4, 4, 2}, {0, 2.5, 3}, {4, 4, 2},
		{8, 2.5, 0}, {4, 1, -2}, {0, 2.5, -3}, {-4, 1, -2},
	}
	for _, p := range points {
		id := g.NewNode("marker")
		n := g.Node(id)
		n.SetGeometry(marker)
		n.SetTranslation(p)
		if err := g.AddChild(s.root, id); err != nil {
			return err
		}
	}
	s.runner = NewPathRunner(points)
	s.runner.Tension = runnerTensions[s.tension]
	s.runnerID = g.NewNode("runner")
	g.Node(s.runnerID).SetGeometry(runnerMesh)
	if err := g.AddChild(s.root, s.runnerID); err != nil {
		return err
	}

	defaultCamera(s.Game, mgl32.Vec3{0, 5, 14}, mgl32.Vec3{0, 1, 0})
	return nil
}

func (s *shapes) Update(deltaTime float64) error {
	dt := float32(deltaTime)
	camera := s.SystemManager.CameraSystem.GetDefault()
	camera.Update(deltaTime)
	s.lighting.CameraPosition = camera.GetPosition()

	if k := digitPressed(len(s.debug)); k > 0 {
		s.selected = k - 1
		core.LogInfo("debug program: %s", debugPrograms[s.selected])
	}
	if core.InputIsKeyJustPressed(core.KEY_L) {
		s.runner.Linear = !s.runner.Linear
		core.LogInfo("path interpolation linear=%t", s.runner.Linear)
	}
	if core.InputIsKeyJustPressed(core.KEY_T) {
		s.tension = (s.tension + 1) % len(runnerTensions)
		s.runner.Tension = runnerTensions[s.tension]
		core.LogInfo("path tension: %.1f", s.runner.Tension)
	}
	handleRenderKeys(s.SystemManager.RendererSystem)

	for _, id := range s.gallery {
		s.graph.Node(id).RotateY(0.3 * dt)
	}
	pos, dir := s.runner.Advance(dt)
	s.runner.Place(s.graph.Node(s.runnerID), pos, dir)
	return nil
}

func (s *shapes) Render(packet *systems.RenderPacket, deltaTime float64) error {
	camera := s.SystemManager.CameraSystem.GetDefault()
	packet.Views = append(packet.Views, systems.RenderView{
		Name:        "shapes",
		Graph:       s.graph,
		Root:        s.root,
		WorldToClip: camera.WorldToClip(),
		Override:    &scene.Override{Program: s.debug[s.selected], Material: s.lighting},
		Traversal:   systems.TraversalStack,
	})
	return nil
}

func (s *shapes) OnResize(width uint32, height uint32) error {
	return nil
}

func (s *shapes) Shutdown() error {
	return nil
}
