package math

import "github.com/go-gl/mathgl/mgl32"

// Transform stores translation, per-axis Euler angles (radians) and scale as
// independent channels. The matrix is rebuilt on every call to GetMatrix.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Vec3
	Scaling     mgl32.Vec3
}

func TransformCreate() Transform {
	return Transform{Scaling: mgl32.Vec3{1, 1, 1}}
}

func (t *Transform) SetTranslation(position mgl32.Vec3) {
	t.Translation = position
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Translation = t.Translation.Add(translation)
}

func (t *Transform) SetRotationX(angle float32) { t.Rotation[0] = angle }
func (t *Transform) SetRotationY(angle float32) { t.Rotation[1] = angle }
func (t *Transform) SetRotationZ(angle float32) { t.Rotation[2] = angle }

func (t *Transform) RotateX(delta float32) { t.Rotation[0] += delta }
func (t *Transform) RotateY(delta float32) { t.Rotation[1] += delta }
func (t *Transform) RotateZ(delta float32) { t.Rotation[2] += delta }

func (t *Transform) SetScaling(scale mgl32.Vec3) {
	t.Scaling = scale
}

// GetMatrix returns T * Rz * Ry * Rx * S for column vectors.
func (t *Transform) GetMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2])).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DX(t.Rotation[0])).
		Mul4(mgl32.Scale3D(t.Scaling[0], t.Scaling[1], t.Scaling[2]))
}
