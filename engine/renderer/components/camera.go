package components

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// 89 degrees, keeps the view away from gimbal lock
const pitchLimit = float32(1.55334306)

/**
 * @brief A first-person camera: a position, a pitch (X) and yaw (Y) rotation
 * and a perspective projection. Ideally these are created and managed by the
 * camera system.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position mgl32.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead.
	 */
	EulerRotation mgl32.Vec3

	FieldOfViewY float32
	Aspect       float32
	Near         float32
	Far          float32

	/** @brief Movement speed in units per second, multiplied while shift is held. */
	MoveSpeed float32
	/** @brief Rotation speed in radians per second. */
	RotateSpeed float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty    bool
	ViewMatrix mgl32.Mat4
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = mgl32.Vec3{}
	c.Position = mgl32.Vec3{}
	c.FieldOfViewY = math.DegToRad(60)
	c.Aspect = 16.0 / 9.0
	c.Near = 0.01
	c.Far = 1000
	c.MoveSpeed = 3
	c.RotateSpeed = 1.5
	c.IsDirty = false
	c.ViewMatrix = mgl32.Ident4()
}

func (c *Camera) GetPosition() mgl32.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) Translate(v mgl32.Vec3) {
	c.Position = c.Position.Add(v)
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() mgl32.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation mgl32.Vec3) {
	c.EulerRotation = rotation
	c.EulerRotation[0] = math.Clamp(c.EulerRotation[0], -pitchLimit, pitchLimit)
	c.IsDirty = true
}

// SetProjection sets the perspective parameters; fovy is in radians.
func (c *Camera) SetProjection(fovy, aspect, near, far float32) {
	c.FieldOfViewY = fovy
	c.Aspect = aspect
	c.Near = near
	c.Far = far
}

func (c *Camera) SetAspect(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.EulerRotation[1]).Mul4(mgl32.HomogRotate3DX(c.EulerRotation[0]))
}

// GetView returns the world-to-view matrix.
func (c *Camera) GetView() mgl32.Mat4 {
	if c.IsDirty {
		translation := mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2])
		c.ViewMatrix = translation.Mul4(c.rotation()).Inv()
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	return mgl32.Perspective(c.FieldOfViewY, c.Aspect, c.Near, c.Far)
}

// WorldToClip is projection * view.
func (c *Camera) WorldToClip() mgl32.Mat4 {
	return c.GetProjection().Mul4(c.GetView())
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.rotation().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func (c *Camera) Backward() mgl32.Vec3 {
	return c.Forward().Mul(-1)
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.rotation().Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
}

func (c *Camera) Left() mgl32.Vec3 {
	return c.Right().Mul(-1)
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.rotation().Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
}

func (c *Camera) MoveForward(amount float32) {
	c.Translate(c.Forward().Mul(amount))
}

func (c *Camera) MoveBackward(amount float32) {
	c.Translate(c.Backward().Mul(amount))
}

func (c *Camera) MoveLeft(amount float32) {
	c.Translate(c.Left().Mul(amount))
}

func (c *Camera) MoveRight(amount float32) {
	c.Translate(c.Right().Mul(amount))
}

func (c *Camera) MoveUp(amount float32) {
	c.Translate(mgl32.Vec3{0, amount, 0})
}

func (c *Camera) MoveDown(amount float32) {
	c.Translate(mgl32.Vec3{0, -amount, 0})
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation[1] += amount
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation[0] += amount
	// Clamp to avoid Gimbal lock.
	c.EulerRotation[0] = math.Clamp(c.EulerRotation[0], -pitchLimit, pitchLimit)
	c.IsDirty = true
}

// LookAt turns the camera towards target without moving it. Targets straight
// above or below end up at the pitch limit.
func (c *Camera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() < math.K_FLOAT_EPSILON {
		return
	}
	dir = dir.Normalize()
	yaw := float32(m.Atan2(float64(-dir[0]), float64(-dir[2])))
	pitch := float32(m.Asin(float64(math.Clamp(dir[1], -1, 1))))
	c.SetEulerRotation(mgl32.Vec3{pitch, yaw, 0})
}

// Update applies the keyboard: WASD moves, Q/E go down and up, the arrows
// rotate and shift speeds everything up.
func (c *Camera) Update(deltaTime float64) {
	dt := float32(deltaTime)
	speed := c.MoveSpeed * dt
	if core.InputIsKeyDown(core.KEY_SHIFT) || core.InputIsKeyDown(core.KEY_LSHIFT) || core.InputIsKeyDown(core.KEY_RSHIFT) {
		speed *= 4
	}
	turn := c.RotateSpeed * dt

	if core.InputIsKeyDown(core.KEY_W) {
		c.MoveForward(speed)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		c.MoveBackward(speed)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		c.MoveLeft(speed)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		c.MoveRight(speed)
	}
	if core.InputIsKeyDown(core.KEY_Q) {
		c.MoveDown(speed)
	}
	if core.InputIsKeyDown(core.KEY_E) {
		c.MoveUp(speed)
	}
	if core.InputIsKeyDown(core.KEY_LEFT) {
		c.Yaw(turn)
	}
	if core.InputIsKeyDown(core.KEY_RIGHT) {
		c.Yaw(-turn)
	}
	if core.InputIsKeyDown(core.KEY_UP) {
		c.Pitch(turn)
	}
	if core.InputIsKeyDown(core.KEY_DOWN) {
		c.Pitch(-turn)
	}
}
