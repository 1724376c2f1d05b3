package testbed

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/scene"
)

// PathRunner moves along a closed loop through Points, one segment per unit
// of its parameter.
type PathRunner struct {
	Points []mgl32.Vec3
	// Speed in segments per second.
	Speed   float32
	Tension float32
	Linear  bool

	u float32
}

func NewPathRunner(points []mgl32.Vec3) *PathRunner {
	return &PathRunner{
		Points:  points,
		Speed:   0.5,
		Tension: 0.5,
	}
}

func (r *PathRunner) Parameter() float32 {
	return r.u
}

// Advance steps the runner by dt seconds and samples the path.
func (r *PathRunner) Advance(dt float32) (pos, dir mgl32.Vec3) {
	if n := float32(len(r.Points)); n > 0 {
		r.u = math.Mod(r.u+r.Speed*dt, n)
		if r.u < 0 {
			r.u += n
		}
	}
	return math.SamplePath(r.Points, r.u, r.Tension, r.Linear)
}

// Place moves node to pos and turns its +Z axis along dir.
func (r *PathRunner) Place(node *scene.Node, pos, dir mgl32.Vec3) {
	node.SetTranslation(pos)
	if dir.Len() == 0 {
		return
	}
	node.SetRotationY(float32(m.Atan2(float64(dir.X()), float64(dir.Z()))))
	node.SetRotationX(-float32(m.Asin(float64(math.Clamp(dir.Y(), -1, 1)))))
}
