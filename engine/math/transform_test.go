package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestTransformComposition(t *testing.T) {
	tr := TransformCreate()
	tr.SetTranslation(mgl32.Vec3{1, 2, 3})
	tr.SetRotationX(0.3)
	tr.SetRotationY(-1.1)
	tr.SetRotationZ(0.7)
	tr.SetScaling(mgl32.Vec3{2, 3, 4})

	expected := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DZ(0.7)).
		Mul4(mgl32.HomogRotate3DY(-1.1)).
		Mul4(mgl32.HomogRotate3DX(0.3)).
		Mul4(mgl32.Scale3D(2, 3, 4))
	assert.True(t, expected.ApproxEqualThreshold(tr.GetMatrix(), 1e-5))
}

func TestTransformRotateAccumulates(t *testing.T) {
	a := TransformCreate()
	a.RotateY(0.25)
	a.RotateY(0.5)

	b := TransformCreate()
	b.SetRotationY(0.75)
	assert.True(t, a.GetMatrix().ApproxEqualThreshold(b.GetMatrix(), 1e-6))

	b.SetRotationY(0.1)
	assert.InDelta(t, 0.1, b.Rotation.Y(), 1e-7, "setter overwrites")
}

func TestTransformTranslateOrder(t *testing.T) {
	tr := TransformCreate()
	tr.SetTranslation(mgl32.Vec3{5, 0, 0})
	tr.SetRotationZ(K_HALF_PI)
	p := tr.GetMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// rotate first, then translate
	assert.InDelta(t, 5, p.X(), 1e-5)
	assert.InDelta(t, 1, p.Y(), 1e-5)

	tr.Translate(mgl32.Vec3{0, 0, 2})
	assert.Equal(t, mgl32.Vec3{5, 0, 2}, tr.Translation)
}

func TestClampAndWrap(t *testing.T) {
	assert.Equal(t, 3, Clamp(7, 0, 3))
	assert.Equal(t, float32(-1), Clamp(float32(-4), -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))

	assert.Equal(t, 4, Wrap(-1, 5))
	assert.Equal(t, 2, Wrap(7, 5))
}

func TestFRandomInRangeIsSeeded(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		v := FRandomInRange(a, 0.5, 1)
		assert.Equal(t, v, FRandomInRange(b, 0.5, 1))
		assert.GreaterOrEqual(t, v, float32(0.5))
		assert.Less(t, v, float32(1))
	}
}

func TestRangeConvertFloat32(t *testing.T) {
	assert.InDelta(t, 1, RangeConvertFloat32(-1, -1, 1, 1, 5), 1e-6)
	assert.InDelta(t, 3, RangeConvertFloat32(0, -1, 1, 1, 5), 1e-6)
	assert.InDelta(t, 5, RangeConvertFloat32(1, -1, 1, 1, 5), 1e-6)
	assert.InDelta(t, 50, RangeConvertFloat32(0.5, 0, 1, 0, 100), 1e-4)
}
