package math

import "github.com/go-gl/mathgl/mgl32"

// EvalLERP blends p0 toward p1; x=0 gives p0 and x=1 gives p1.
func EvalLERP(p0, p1 mgl32.Vec3, x float32) mgl32.Vec3 {
	return p0.Mul(1 - x).Add(p1.Mul(x))
}

// catmullRomBasis is the tension matrix, stored column by column.
func catmullRomBasis(t float32) mgl32.Mat4 {
	return mgl32.Mat4{
		0, -t, 2 * t, -t,
		1, 0, t - 3, 2 - t,
		0, t, 3 - 2*t, t - 2,
		0, 0, -t, t,
	}
}

func evalCubic(p0, p1, p2, p3 mgl32.Vec3, t float32, powers mgl32.Vec4) mgl32.Vec3 {
	g := catmullRomBasis(t)
	var out mgl32.Vec3
	for c := 0; c < 3; c++ {
		out[c] = powers.Dot(g.Mul4x1(mgl32.Vec4{p0[c], p1[c], p2[c], p3[c]}))
	}
	return out
}

// EvalCatmullRom evaluates the segment between p1 (x=0) and p2 (x=1) with
// tension t.
func EvalCatmullRom(p0, p1, p2, p3 mgl32.Vec3, t, x float32) mgl32.Vec3 {
	return evalCubic(p0, p1, p2, p3, t, mgl32.Vec4{1, x, x * x, x * x * x})
}

// EvalCatmullRomDerivative is the tangent of EvalCatmullRom with respect to x.
func EvalCatmullRomDerivative(p0, p1, p2, p3 mgl32.Vec3, t, x float32) mgl32.Vec3 {
	return evalCubic(p0, p1, p2, p3, t, mgl32.Vec4{0, 1, 2 * x, 3 * x * x})
}

// SamplePath samples a closed loop through points at parameter u, where the
// integer part selects the segment. dir is normalized, or zero when the path
// does not move.
func SamplePath(points []mgl32.Vec3, u float32, tension float32, linear bool) (pos, dir mgl32.Vec3) {
	n := len(points)
	switch n {
	case 0:
		return mgl32.Vec3{}, mgl32.Vec3{}
	case 1:
		return points[0], mgl32.Vec3{}
	}

	seg := Floor(u)
	x := u - seg
	i := Wrap(int(seg), n)
	at := func(k int) mgl32.Vec3 { return points[(i+k)%n] }

	if linear {
		pos = EvalLERP(at(0), at(1), x)
		dir = at(1).Sub(at(0))
	} else {
		pos = EvalCatmullRom(at(0), at(1), at(2), at(3), tension, x)
		dir = EvalCatmullRomDerivative(at(0), at(1), at(2), at(3), tension, x)
	}
	if dir.Len() > K_FLOAT_EPSILON {
		dir = dir.Normalize()
	} else {
		dir = mgl32.Vec3{}
	}
	return pos, dir
}
