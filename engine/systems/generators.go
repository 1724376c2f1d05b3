package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// meshBuilder fills a GeometryConfig and keeps count of what was written so
// finish can compare it with what was promised.
type meshBuilder struct {
	config         *metadata.GeometryConfig
	written        int
	indicesWritten int
}

func newMeshBuilder(name string, vertexCount, indexCount int) *meshBuilder {
	config := metadata.NewGeometryConfig(name, vertexCount, indexCount)
	config.Indices = config.Indices[:indexCount]
	return &meshBuilder{config: config}
}

func (b *meshBuilder) vertex(position, normal, texcoord, tangent, binormal mgl32.Vec3) {
	if b.written >= len(b.config.Positions) {
		core.LogError("mesh '%s': vertex %d written past the %d allocated", b.config.Name, b.written, len(b.config.Positions))
		b.written++
		return
	}
	k := b.written
	b.config.Positions[k] = position
	b.config.Normals[k] = normal
	b.config.Texcoords[k] = texcoord
	b.config.Tangents[k] = tangent
	b.config.Binormals[k] = binormal
	b.written++
}

func (b *meshBuilder) triangle(a, c, d uint32) {
	if b.indicesWritten+3 > len(b.config.Indices) {
		core.LogError("mesh '%s': triangle at index %d written past the %d allocated", b.config.Name, b.indicesWritten, len(b.config.Indices))
		return
	}
	k := b.indicesWritten
	b.config.Indices[k], b.config.Indices[k+1], b.config.Indices[k+2] = a, c, d
	b.indicesWritten += 3
}

// grid emits two triangles per cell of a resA x resB vertex grid whose inner
// loop runs over resB.
func (b *meshBuilder) grid(resA, resB int) {
	n := uint32(resB)
	for i := uint32(0); i < uint32(resA-1); i++ {
		for j := uint32(0); j < n-1; j++ {
			b.triangle(n*i+j, n*(i+1)+j, n*(i+1)+j+1)
			b.triangle(n*i+j+1, n*i+j, n*(i+1)+j+1)
		}
	}
}

// finish logs a bookkeeping mismatch and truncates the index buffer to what
// was actually written. Triangles past the allocation were already dropped.
func (b *meshBuilder) finish() *metadata.GeometryConfig {
	if b.written != len(b.config.Positions) {
		core.LogError("mesh '%s': wrote %d vertices, expected %d", b.config.Name, b.written, len(b.config.Positions))
	}
	if expected := len(b.config.Indices); b.indicesWritten != expected {
		core.LogError("mesh '%s': wrote %d indices, expected %d; truncating", b.config.Name, b.indicesWritten, expected)
		b.config.Indices = b.config.Indices[:b.indicesWritten]
	}
	return b.config
}

func checkResolution(name string, res ...int) error {
	for _, r := range res {
		if r < 2 {
			return errors.Wrapf(core.ErrInvalidResolution, "%s: got %v", name, res)
		}
	}
	return nil
}

func positiveOrDefault(name string, v, fallback float32) float32 {
	if v <= 0 {
		core.LogWarn("%s must be positive. Defaulting to %g.", name, fallback)
		return fallback
	}
	return v
}

func gridTexcoord(i, j, resA, resB int) mgl32.Vec3 {
	return mgl32.Vec3{float32(i) / float32(resA-1), float32(j) / float32(resB-1), 0}
}

/**
 * @brief A single quad over [0, width] x [0, height] in the XY plane facing +Z.
 */
func GenerateQuadConfig(width, height float32) (*metadata.GeometryConfig, error) {
	width = positiveOrDefault("Width", width, 1.0)
	height = positiveOrDefault("Height", height, 1.0)

	b := newMeshBuilder("quad", 4, 6)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			b.vertex(
				mgl32.Vec3{float32(i) * width, float32(j) * height, 0},
				mgl32.Vec3{0, 0, 1},
				mgl32.Vec3{float32(i), float32(j), 0},
				mgl32.Vec3{1, 0, 0},
				mgl32.Vec3{0, 1, 0},
			)
		}
	}
	b.grid(2, 2)
	return b.finish(), nil
}

/**
 * @brief A flat annulus in the XY plane. The outer loop runs over the angle,
 * the inner one over the radius from innerRadius to outerRadius.
 */
func GenerateCircleRingConfig(resRadius, resTheta int, innerRadius, outerRadius float32) (*metadata.GeometryConfig, error) {
	if err := checkResolution("circle ring", resRadius, resTheta); err != nil {
		return nil, err
	}
	if innerRadius < 0 {
		core.LogWarn("innerRadius must not be negative. Defaulting to zero.")
		innerRadius = 0
	}
	outerRadius = positiveOrDefault("outerRadius", outerRadius, innerRadius+1)

	R := uint32(resRadius)
	b := newMeshBuilder(fmt.Sprintf("circle_ring_%dx%d", resRadius, resTheta), resRadius*resTheta, 6*(resRadius-1)*(resTheta-1))

	dTheta := math.K_PI_2 / float32(resTheta-1)
	dRadius := (outerRadius - innerRadius) / float32(resRadius-1)
	for i := 0; i < resTheta; i++ {
		theta := float32(i) * dTheta
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		tangent := mgl32.Vec3{cosT, sinT, 0}
		binormal := mgl32.Vec3{-sinT, cosT, 0}
		normal := tangent.Cross(binormal)

		for j := 0; j < resRadius; j++ {
			r := innerRadius + float32(j)*dRadius
			b.vertex(
				mgl32.Vec3{r * cosT, r * sinT, 0},
				normal,
				mgl32.Vec3{float32(j) / float32(resRadius-1), float32(i) / float32(resTheta-1), 0},
				tangent,
				binormal,
			)
		}
	}

	for i := uint32(0); i < uint32(resTheta-1); i++ {
		for j := uint32(0); j < R-1; j++ {
			k := R*i + j
			b.triangle(k, k+1, k+1+R)
			b.triangle(k, k+R+1, k+R)
		}
	}
	return b.finish(), nil
}

/**
 * @brief A UV sphere. theta sweeps the full circle, phi runs pole to pole.
 */
func GenerateSphereConfig(resTheta, resPhi int, radius float32) (*metadata.GeometryConfig, error) {
	if err := checkResolution("sphere", resTheta, resPhi); err != nil {
		return nil, err
	}
	radius = positiveOrDefault("radius", radius, 1.0)

	b := newMeshBuilder(fmt.Sprintf("sphere_%dx%d", resTheta, resPhi), resTheta*resPhi, 6*(resTheta-1)*(resPhi-1))

	dTheta := math.K_PI_2 / float32(resTheta-1)
	dPhi := math.K_PI / float32(resPhi-1)
	for i := 0; i < resTheta; i++ {
		theta := float32(i) * dTheta
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		for j := 0; j < resPhi; j++ {
			phi := float32(j) * dPhi
			cosP, sinP := math.Cos(phi), math.Sin(phi)

			normal := mgl32.Vec3{sinT * sinP, -cosP, cosT * sinP}.Normalize()
			b.vertex(
				normal.Mul(radius),
				normal,
				gridTexcoord(i, j, resTheta, resPhi),
				mgl32.Vec3{cosT, 0, sinT},
				mgl32.Vec3{sinT * cosP, sinP, cosT * cosP},
			)
		}
	}
	b.grid(resTheta, resPhi)
	return b.finish(), nil
}

/**
 * @brief A torus around the Z axis with major radius rA and tube radius rB.
 */
func GenerateTorusConfig(resTheta, resPhi int, rA, rB float32) (*metadata.GeometryConfig, error) {
	if err := checkResolution("torus", resTheta, resPhi); err != nil {
		return nil, err
	}
	rA = positiveOrDefault("rA", rA, 1.0)
	rB = positiveOrDefault("rB", rB, 0.25)

	b := newMeshBuilder(fmt.Sprintf("torus_%dx%d", resTheta, resPhi), resTheta*resPhi, 6*(resTheta-1)*(resPhi-1))

	dTheta := math.K_PI_2 / float32(resTheta-1)
	dPhi := math.K_PI_2 / float32(resPhi-1)
	for i := 0; i < resTheta; i++ {
		theta := float32(i) * dTheta
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		tangent := mgl32.Vec3{-sinT, cosT, 0}
		for j := 0; j < resPhi; j++ {
			phi := float32(j) * dPhi
			cosP, sinP := math.Cos(phi), math.Sin(phi)

			binormal := mgl32.Vec3{-sinP * cosT, -sinP * sinT, cosP}
			ring := rA + rB*cosP
			b.vertex(
				mgl32.Vec3{ring * cosT, ring * sinT, rB * sinP},
				tangent.Cross(binormal),
				gridTexcoord(i, j, resTheta, resPhi),
				tangent,
				binormal,
			)
		}
	}
	b.grid(resTheta, resPhi)
	return b.finish(), nil
}

/**
 * @brief A [-1,1]^2 height field z = depth*sin(2*pi*waveCount*r), a radial
 * ripple around the origin.
 */
func GenerateZoneplateConfig(resX, resY int, waveCount, depth float32) (*metadata.GeometryConfig, error) {
	if err := checkResolution("zoneplate", resX, resY); err != nil {
		return nil, err
	}

	b := newMeshBuilder(fmt.Sprintf("zoneplate_%dx%d", resX, resY), resX*resY, 6*(resX-1)*(resY-1))

	w := math.K_PI_2 * waveCount
	for i := 0; i < resX; i++ {
		x := 2*float32(i)/float32(resX-1) - 1
		for j := 0; j < resY; j++ {
			y := 2*float32(j)/float32(resY-1) - 1
			l := math.Sqrt(x*x + y*y)
			z := depth * math.Sin(w*l)

			tangent := mgl32.Vec3{1, 0, 0}
			binormal := mgl32.Vec3{0, 1, 0}
			normal := mgl32.Vec3{0, 0, 1}
			if l != 0 {
				slope := depth * math.Cos(w*l) * w / l
				tangent = mgl32.Vec3{1, 0, slope * x}.Normalize()
				binormal = mgl32.Vec3{0, 1, slope * y}.Normalize()
				normal = tangent.Cross(binormal).Normalize()
			}
			b.vertex(mgl32.Vec3{x, y, z}, normal, gridTexcoord(i, j, resX, resY), tangent, binormal)
		}
	}
	b.grid(resX, resY)
	return b.finish(), nil
}

/**
 * @brief A flat side x side grid in the XZ plane centred on the origin,
 * facing +Y. Displacement happens in the vertex shader.
 */
func GenerateOceanplateConfig(resX, resZ int, side float32) (*metadata.GeometryConfig, error) {
	if err := checkResolution("oceanplate", resX, resZ); err != nil {
		return nil, err
	}
	side = positiveOrDefault("side", side, 1.0)

	b := newMeshBuilder(fmt.Sprintf("oceanplate_%dx%d", resX, resZ), resX*resZ, 6*(resX-1)*(resZ-1))

	half := side / 2
	for i := 0; i < resX; i++ {
		x := side*float32(i)/float32(resX-1) - half
		for j := 0; j < resZ; j++ {
			z := side*float32(j)/float32(resZ-1) - half
			b.vertex(
				mgl32.Vec3{x, 0, -z},
				mgl32.Vec3{0, 1, 0},
				gridTexcoord(i, j, resX, resZ),
				mgl32.Vec3{1, 0, 0},
				mgl32.Vec3{0, 0, 1},
			)
		}
	}
	b.grid(resX, resZ)
	return b.finish(), nil
}
