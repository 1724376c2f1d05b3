package testbed

import (
	m "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/stretchr/testify/assert"
)

func TestPathRunnerLoops(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 0, 4}, {0, 0, 4}}
	r := NewPathRunner(points)
	r.Linear = true
	r.Speed = 1

	pos, dir := r.Advance(0.5)
	assertVec3(t, mgl32.Vec3{2, 0, 0}, pos, 1e-5)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, dir, 1e-5)

	// 0.5 + 4 wraps back onto the first segment
	pos, _ = r.Advance(4)
	assert.InDelta(t, 0.5, r.Parameter(), 1e-5)
	assertVec3(t, mgl32.Vec3{2, 0, 0}, pos, 1e-5)

	r.Speed = -1
	r.Advance(1)
	assert.InDelta(t, 3.5, r.Parameter(), 1e-5)

	// curved segment i starts at points[i+1]
	r.Linear = false
	r.Speed = 1
	r.Advance(0.5)
	pos, _ = r.Advance(0)
	assert.Zero(t, r.Parameter())
	assertVec3(t, points[1], pos, 1e-4)
}

func TestPathRunnerPlace(t *testing.T) {
	g := scene.NewGraph()
	id := g.NewNode("runner")
	n := g.Node(id)
	r := NewPathRunner(nil)

	dir := mgl32.Vec3{1, 1, 0}.Normalize()
	r.Place(n, mgl32.Vec3{1, 2, 3}, dir)
	assertVec3(t, mgl32.Vec3{1, 2, 3}, n.Translation(), 0)
	assert.InDelta(t, m.Pi/2, n.Rotation().Y(), 1e-5)

	// the node's +Z ends up along dir
	forward := n.GetTransform().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	assertVec3(t, dir, forward, 1e-5)

	// no direction keeps the orientation
	r.Place(n, mgl32.Vec3{}, mgl32.Vec3{})
	assert.InDelta(t, m.Pi/2, n.Rotation().Y(), 1e-5)

	pos, dir := r.Advance(1)
	assert.Equal(t, mgl32.Vec3{}, pos)
	assert.Equal(t, mgl32.Vec3{}, dir)
}
