package systems

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generator func(a, b int) (*metadata.GeometryConfig, error)

var parametric = map[string]generator{
	"ring": func(a, b int) (*metadata.GeometryConfig, error) {
		return GenerateCircleRingConfig(a, b, 0.5, 2)
	},
	"sphere": func(a, b int) (*metadata.GeometryConfig, error) {
		return GenerateSphereConfig(a, b, 1.5)
	},
	"torus": func(a, b int) (*metadata.GeometryConfig, error) {
		return GenerateTorusConfig(a, b, 2, 0.5)
	},
	"zoneplate": func(a, b int) (*metadata.GeometryConfig, error) {
		return GenerateZoneplateConfig(a, b, 3, 0.1)
	},
	"oceanplate": func(a, b int) (*metadata.GeometryConfig, error) {
		return GenerateOceanplateConfig(a, b, 100)
	},
}

func TestGeneratorCounts(t *testing.T) {
	resolutions := []int{2, 3, 4, 7, 8}
	for name, gen := range parametric {
		for _, a := range resolutions {
			for _, b := range resolutions {
				t.Run(fmt.Sprintf("%s_%dx%d", name, a, b), func(t *testing.T) {
					g, err := gen(a, b)
					require.NoError(t, err)
					require.NoError(t, g.Validate())
					assert.Len(t, g.Positions, a*b)
					assert.Len(t, g.Indices, 6*(a-1)*(b-1))
				})
			}
		}
	}
}

func TestGeneratorRejectsLowResolution(t *testing.T) {
	for name, gen := range parametric {
		_, err := gen(1, 4)
		assert.True(t, errors.Is(err, core.ErrInvalidResolution), name)
		_, err = gen(4, 0)
		assert.True(t, errors.Is(err, core.ErrInvalidResolution), name)
	}
}

// Every non-degenerate triangle must wind so that its face normal agrees
// with the analytic normals of its corners.
func TestGeneratorWindingFollowsNormals(t *testing.T) {
	for name, gen := range parametric {
		g, err := gen(9, 7)
		require.NoError(t, err)
		for i := 0; i < len(g.Indices); i += 3 {
			a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
			face := g.Positions[b].Sub(g.Positions[a]).Cross(g.Positions[c].Sub(g.Positions[a]))
			if face.Len() < 1e-5 {
				continue
			}
			avg := g.Normals[a].Add(g.Normals[b]).Add(g.Normals[c])
			assert.Greater(t, face.Dot(avg), float32(0), "%s triangle %d", name, i/3)
		}
	}
}

func TestGeneratorTexcoordsSpanUnitSquare(t *testing.T) {
	for name, gen := range parametric {
		g, err := gen(5, 6)
		require.NoError(t, err)
		first, last := g.Texcoords[0], g.Texcoords[len(g.Texcoords)-1]
		assert.Equal(t, mgl32.Vec3{0, 0, 0}, first, name)
		assert.InDelta(t, 1, last.X(), 1e-6, name)
		assert.InDelta(t, 1, last.Y(), 1e-6, name)
	}
}

func TestQuad(t *testing.T) {
	g, err := GenerateQuadConfig(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {0, 3, 0}, {2, 0, 0}, {2, 3, 0}}, g.Positions)
	assert.Equal(t, []uint32{0, 2, 3, 1, 0, 3}, g.Indices)
	for i := range g.Normals {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, g.Normals[i])
		assert.Equal(t, mgl32.Vec3{1, 0, 0}, g.Tangents[i])
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Binormals[i])
	}
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, g.Texcoords[3])

	g, err = GenerateQuadConfig(0, -1)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, g.Positions[3], "non-positive sizes default to one")
}

func TestSphereSurface(t *testing.T) {
	for _, radius := range []float32{0.5, 1.0, 10.0} {
		g, err := GenerateSphereConfig(12, 9, radius)
		require.NoError(t, err)
		for i, p := range g.Positions {
			assert.InDelta(t, radius, p.Len(), float64(1e-4*radius))
			assert.InDelta(t, 1, g.Normals[i].Len(), 1e-5)
			assert.True(t, p.Mul(1/radius).ApproxEqualThreshold(g.Normals[i], 1e-4))
		}
		// phi = 0 is the south pole
		assert.True(t, mgl32.Vec3{0, -radius, 0}.ApproxEqualThreshold(g.Positions[0], 1e-5))
	}
}

func TestTorusFrame(t *testing.T) {
	g, err := GenerateTorusConfig(10, 8, 3, 1)
	require.NoError(t, err)
	for i, p := range g.Positions {
		// distance to the tube centre circle equals rB
		centre := mgl32.Vec3{p.X(), p.Y(), 0}.Normalize().Mul(3)
		assert.InDelta(t, 1, p.Sub(centre).Len(), 1e-4)
		assert.InDelta(t, 0, g.Tangents[i].Dot(g.Binormals[i]), 1e-5)
		assert.InDelta(t, 1, g.Normals[i].Len(), 1e-5)
	}
}

func TestRingRadii(t *testing.T) {
	g, err := GenerateCircleRingConfig(4, 16, 1, 4)
	require.NoError(t, err)
	for i, p := range g.Positions {
		r := p.Len()
		assert.GreaterOrEqual(t, r, float32(1)-1e-5)
		assert.LessOrEqual(t, r, float32(4)+1e-5)
		assert.Equal(t, float32(0), p.Z())
		assert.True(t, mgl32.Vec3{0, 0, 1}.ApproxEqualThreshold(g.Normals[i], 1e-6))
	}
	// inner loop runs over the radius
	assert.InDelta(t, 1, g.Positions[0].Len(), 1e-6)
	assert.InDelta(t, 2, g.Positions[1].Len(), 1e-6)
	assert.Equal(t, []uint32{0, 1, 5, 0, 5, 4}, g.Indices[:6])
}

func TestZoneplateCentreFrame(t *testing.T) {
	// odd resolution puts a vertex exactly on the origin
	g, err := GenerateZoneplateConfig(5, 5, 2, 0.3)
	require.NoError(t, err)
	centre := 2*5 + 2
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, g.Positions[centre])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, g.Tangents[centre])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Binormals[centre])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, g.Normals[centre])

	assert.Equal(t, mgl32.Vec3{-1, -1}, mgl32.Vec3{g.Positions[0].X(), g.Positions[0].Y()})
	last := g.Positions[len(g.Positions)-1]
	assert.InDelta(t, 1, last.X(), 1e-6)
	assert.InDelta(t, 1, last.Y(), 1e-6)
	for _, n := range g.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-5)
		assert.Greater(t, n.Z(), float32(0))
	}
}

func TestOceanplateLayout(t *testing.T) {
	g, err := GenerateOceanplateConfig(3, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-5, 0, 5}, g.Positions[0])
	assert.Equal(t, mgl32.Vec3{5, 0, -5}, g.Positions[8])
	for i := range g.Positions {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Normals[i])
		assert.Equal(t, mgl32.Vec3{1, 0, 0}, g.Tangents[i])
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, g.Binormals[i])
	}
}

func TestCube(t *testing.T) {
	g, err := GenerateCubeConfig(2, 4, 6, 1, 1, "")
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Equal(t, "cube", g.Name)
	assert.Len(t, g.Positions, 24)
	assert.Len(t, g.Indices, 36)
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		face := g.Positions[b].Sub(g.Positions[a]).Cross(g.Positions[c].Sub(g.Positions[a])).Normalize()
		assert.True(t, face.ApproxEqualThreshold(g.Normals[a], 1e-5), "face %d", i/6)
	}
	for i := range g.Positions {
		assert.InDelta(t, 0, g.Tangents[i].Dot(g.Normals[i]), 1e-5)
		assert.InDelta(t, 1, g.Binormals[i].Len(), 1e-5)
	}
}

func TestMeshBuilderTruncatesIndices(t *testing.T) {
	b := newMeshBuilder("guard", 3, 3)
	for i := 0; i < 3; i++ {
		b.vertex(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	}
	b.triangle(0, 1, 2)
	b.triangle(2, 1, 0)
	g := b.finish()
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices)

	// too few triangles: the unwritten tail is cut, not left as zeros
	b = newMeshBuilder("underrun", 4, 12)
	for i := 0; i < 4; i++ {
		b.vertex(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	}
	b.triangle(1, 2, 3)
	b.triangle(3, 2, 0)
	g = b.finish()
	assert.Equal(t, []uint32{1, 2, 3, 3, 2, 0}, g.Indices)
	assert.NoError(t, g.Validate())

	b = newMeshBuilder("short", 2, 3)
	b.vertex(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	b.vertex(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	b.vertex(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	assert.Len(t, b.finish().Positions, 2)
}
