package testbed

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/spaghettifunk/parallax/engine/systems"
)

const (
	planetDistance   = 6.0
	gateCount        = 7
	firstGateOffset  = 2.5
	gateDistanceStep = 0.6
)

type spinner struct {
	node  scene.NodeID
	axis  int
	speed float32
}

type planets struct {
	*engine.Game

	graph   *scene.Graph
	root    scene.NodeID
	spin    []spinner
	follow  *FollowContext
	targets [7]scene.NodeID
}

func newPlanets(g *engine.Game) demo {
	return &planets{Game: g, follow: NewFollowContext()}
}

func (p *planets) Initialize() error {
	core.LogDebug("planets: building the system")
	sm := p.SystemManager

	program, err := loadProgram(sm.ShaderSystem, "planet", "planet", "planet")
	if err != nil {
		return err
	}
	sphere, err := sm.GeometrySystem.CreateSphere(32, 16, 1)
	if err != nil {
		return err
	}
	box, err := sm.GeometrySystem.CreateCube(1, 1, 1, 1, 1)
	if err != nil {
		return err
	}
	ring, err := sm.GeometrySystem.CreateCircleRing(4, 64, 0.85, 1)
	if err != nil {
		return err
	}
	torus, err := sm.GeometrySystem.CreateTorus(48, 16, 1, 0.25)
	if err != nil {
		return err
	}

	g := scene.NewGraph()
	p.graph = g
	p.root = g.NewNode("root")

	body := func(parent scene.NodeID, name string, material scene.Params, translation, scale mgl32.Vec3) scene.NodeID {
		id := g.NewNode(name)
		n := g.Node(id)
		n.SetGeometry(sphere)
		n.SetProgram(program, material)
		n.SetTranslation(translation)
		n.SetScaling(scale)
		p.attach(parent, id)
		return id
	}
	pivot := func(parent scene.NodeID, name string) scene.NodeID {
		id := g.NewNode(name)
		p.attach(parent, id)
		return id
	}

	sun := body(p.root, "skaia", colour(1, 1, 1), mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})

	orbits := pivot(p.root, "planets")
	lowas := body(orbits, "lowas", colour(0.2, 0.4, 1), mgl32.Vec3{0, 0, planetDistance}, mgl32.Vec3{0.6, 0.6, 0.6})
	lolar := body(orbits, "lolar", colour(1, 0.4, 0.2), mgl32.Vec3{-planetDistance, 0, 0}, mgl32.Vec3{0.6, 0.6, 0.6})
	lohac := body(orbits, "lohac", colour(0.9, 0.7, 0.2), mgl32.Vec3{0, 0, -planetDistance}, mgl32.Vec3{0.6, 0.6, 0.6})

	gates := pivot(p.root, "gates")
	directions := []mgl32.Vec3{{0, 0, 1}, {-1, 0, 0}, {0, 0, -1}}
	for _, dir := range directions {
		for i := 0; i < gateCount; i++ {
			id := g.NewNode("gate")
			n := g.Node(id)
			n.SetGeometry(box)
			n.SetProgram(program, colour(0.8, 0.8, 0.9))
			n.SetScaling(mgl32.Vec3{0.1, 1, 0.1})
			n.SetTranslation(dir.Mul(firstGateOffset + gateDistanceStep*float32(gateCount-i)))
			p.attach(gates, id)
		}
	}

	prospitOrbit := pivot(p.root, "prospit_orbit")
	prospit := body(prospitOrbit, "prospit", colour(1, 0.85, 0.1), mgl32.Vec3{2.3 * planetDistance, 0, 0}, mgl32.Vec3{0.3, 0.3, 0.3})
	barycenter := pivot(prospit, "prospit_barycenter")
	prospitMoon := body(barycenter, "prospit_moon", colour(0.9, 0.9, 0.6), mgl32.Vec3{1.5, 0, 1.5}, mgl32.Vec3{0.33, 0.33, 0.33})

	derse := body(p.root, "derse", colour(0.5, 0.1, 0.6), mgl32.Vec3{-12, 0, -12}, mgl32.Vec3{0.3, 0.3, 0.3})
	derseMoon := body(derse, "derse_moon", colour(0.6, 0.5, 0.7), mgl32.Vec3{1.5, 0, 1.5}, mgl32.Vec3{0.33, 0.33, 0.33})

	farRing := pivot(p.root, "far_ring")
	rocks := g.NewNode("far_ring_rocks")
	rn := g.Node(rocks)
	rn.SetGeometry(ring)
	rn.SetProgram(program, colour(0.5, 0.45, 0.4))
	rn.SetRotationX(-m.Pi / 2)
	rn.SetScaling(mgl32.Vec3{20, 20, 1})
	p.attach(farRing, rocks)

	battlefield := g.NewNode("battlefield")
	bn := g.Node(battlefield)
	bn.SetGeometry(torus)
	bn.SetProgram(program, colour(0.3, 0.8, 0.3))
	bn.SetTranslation(mgl32.Vec3{0, -4, 0})
	bn.SetScaling(mgl32.Vec3{0.8, 0.8, 0.8})
	p.attach(p.root, battlefield)

	if err := g.Validate(p.root); err != nil {
		return err
	}

	p.spin = []spinner{
		{sun, 1, 0.1},
		{lowas, 1, 1.0},
		{lolar, 1, 0.8},
		{lohac, 1, 1.2},
		{orbits, 1, 0.15},
		{gates, 1, 0.15},
		{prospitOrbit, 2, 0.2},
		{prospit, 1, 0.6},
		{barycenter, 1, -0.66},
		{prospitMoon, 1, -0.3},
		{derse, 1, 0.5},
		{farRing, 1, 0.02},
		{rocks, 2, 0.05},
		{battlefield, 0, 0.3},
	}
	p.targets = [7]scene.NodeID{lowas, lolar, lohac, prospit, prospitMoon, derse, derseMoon}

	camera := defaultCamera(p.Game, mgl32.Vec3{0, 8, 25}, mgl32.Vec3{})
	p.follow.LookHome = mgl32.Vec3{}
	camera.MoveSpeed = 6
	return nil
}

func (p *planets) attach(parent, child scene.NodeID) {
	if err := p.graph.AddChild(parent, child); err != nil {
		core.LogError(err.Error())
	}
}

func (p *planets) Update(deltaTime float64) error {
	dt := float32(deltaTime)
	for _, s := range p.spin {
		n := p.graph.Node(s.node)
		switch s.axis {
		case 0:
			n.RotateX(s.speed * dt)
		case 1:
			n.RotateY(s.speed * dt)
		default:
			n.RotateZ(s.speed * dt)
		}
	}

	if k := digitPressed(len(p.targets)); k > 0 {
		p.follow.Follow(p.targets[k-1])
		core.LogInfo("following '%s'", p.graph.Node(p.targets[k-1]).Name)
	}
	if core.InputIsKeyJustPressed(core.KEY_0) && p.follow.Following() {
		p.follow.Release()
		core.LogInfo("camera released")
	}
	handleRenderKeys(p.SystemManager.RendererSystem)

	camera := p.SystemManager.CameraSystem.GetDefault()
	camera.Update(deltaTime)
	p.follow.Update(p.graph, p.root, camera, dt)
	return nil
}

func (p *planets) Render(packet *systems.RenderPacket, deltaTime float64) error {
	camera := p.SystemManager.CameraSystem.GetDefault()
	packet.Views = append(packet.Views, systems.RenderView{
		Name:        "world",
		Graph:       p.graph,
		Root:        p.root,
		WorldToClip: camera.WorldToClip(),
	})
	return nil
}

func (p *planets) OnResize(width uint32, height uint32) error {
	return nil
}

func (p *planets) Shutdown() error {
	p.follow.Release()
	return nil
}
