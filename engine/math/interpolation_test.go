package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func vecNear(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], float64(eps), "want %v, got %v", want, got)
	}
}

func TestEvalLERPEndpoints(t *testing.T) {
	p0 := mgl32.Vec3{1, 2, 3}
	p1 := mgl32.Vec3{-3, 0, 5}
	vecNear(t, p0, EvalLERP(p0, p1, 0), 1e-6)
	vecNear(t, p1, EvalLERP(p0, p1, 1), 1e-6)
	vecNear(t, mgl32.Vec3{-1, 1, 4}, EvalLERP(p0, p1, 0.5), 1e-6)
}

func TestEvalCatmullRomPassesThroughInnerPoints(t *testing.T) {
	p0 := mgl32.Vec3{0, 0, 0}
	p1 := mgl32.Vec3{1, 1, 0}
	p2 := mgl32.Vec3{2, -1, 1}
	p3 := mgl32.Vec3{4, 0, 2}
	for _, tension := range []float32{0.1, 0.5, 0.9} {
		vecNear(t, p1, EvalCatmullRom(p0, p1, p2, p3, tension, 0), 1e-5)
		vecNear(t, p2, EvalCatmullRom(p0, p1, p2, p3, tension, 1), 1e-5)
	}
}

func TestEvalCatmullRomDerivativeAtEnds(t *testing.T) {
	p0 := mgl32.Vec3{0, 0, 0}
	p1 := mgl32.Vec3{1, 0, 0}
	p2 := mgl32.Vec3{2, 1, 0}
	p3 := mgl32.Vec3{3, 1, 0}
	tension := float32(0.5)
	// tangent at p1 is t*(p2-p0), at p2 is t*(p3-p1)
	vecNear(t, p2.Sub(p0).Mul(tension), EvalCatmullRomDerivative(p0, p1, p2, p3, tension, 0), 1e-5)
	vecNear(t, p3.Sub(p1).Mul(tension), EvalCatmullRomDerivative(p0, p1, p2, p3, tension, 1), 1e-5)
}

func TestSamplePathWrapsAround(t *testing.T) {
	square := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	pos, dir := SamplePath(square, 3.5, 0.5, true)
	vecNear(t, mgl32.Vec3{0, 0.5, 0}, pos, 1e-6)
	vecNear(t, mgl32.Vec3{0, -1, 0}, dir, 1e-6)

	pos, _ = SamplePath(square, 4.0, 0.5, true)
	vecNear(t, square[0], pos, 1e-6)

	// catmull-rom segment i runs from points[i+1] to points[i+2]
	pos, dir = SamplePath(square, 2, 0.5, false)
	vecNear(t, square[3], pos, 1e-5)
	assert.InDelta(t, 1, dir.Len(), 1e-5)

	pos, dir = SamplePath(square[:1], 1.3, 0.5, false)
	vecNear(t, square[0], pos, 0)
	assert.Equal(t, mgl32.Vec3{}, dir)
}
