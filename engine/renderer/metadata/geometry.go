package metadata

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

// Vertex attribute locations shared by every program.
const (
	AttribPosition uint32 = iota
	AttribNormal
	AttribTexcoord
	AttribTangent
	AttribBinormal
	AttribCount
)

/**
 * @brief CPU-side geometry: five parallel attribute arrays and a flat
 * triangle index list.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string

	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Texcoords []mgl32.Vec3
	Tangents  []mgl32.Vec3
	Binormals []mgl32.Vec3

	/** @brief Triangle triples. */
	Indices []uint32
}

// NewGeometryConfig allocates all attribute arrays for vertexCount vertices
// and reserves room for indexCount indices.
func NewGeometryConfig(name string, vertexCount, indexCount int) *GeometryConfig {
	return &GeometryConfig{
		Name:      name,
		Positions: make([]mgl32.Vec3, vertexCount),
		Normals:   make([]mgl32.Vec3, vertexCount),
		Texcoords: make([]mgl32.Vec3, vertexCount),
		Tangents:  make([]mgl32.Vec3, vertexCount),
		Binormals: make([]mgl32.Vec3, vertexCount),
		Indices:   make([]uint32, 0, indexCount),
	}
}

func (g *GeometryConfig) VertexCount() uint32 {
	return uint32(len(g.Positions))
}

func (g *GeometryConfig) IndexCount() uint32 {
	return uint32(len(g.Indices))
}

// Validate checks that the arrays line up and every index is in range.
func (g *GeometryConfig) Validate() error {
	n := len(g.Positions)
	if len(g.Normals) != n || len(g.Texcoords) != n || len(g.Tangents) != n || len(g.Binormals) != n {
		return errors.Wrapf(core.ErrMismatchedAttributes, "geometry '%s': positions=%d normals=%d texcoords=%d tangents=%d binormals=%d",
			g.Name, n, len(g.Normals), len(g.Texcoords), len(g.Tangents), len(g.Binormals))
	}
	if len(g.Indices)%3 != 0 {
		return errors.Wrapf(core.ErrMismatchedAttributes, "geometry '%s': %d indices is not a multiple of 3", g.Name, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return errors.Wrapf(core.ErrIndexOutOfRange, "geometry '%s': index %d at %d, vertex count %d", g.Name, idx, i, n)
		}
	}
	return nil
}

// Segments returns the byte offset of every attribute segment inside the
// packed buffer, indexed by attribute location.
func (g *GeometryConfig) Segments() [AttribCount]int {
	segment := len(g.Positions) * 3 * 4
	var offsets [AttribCount]int
	for i := range offsets {
		offsets[i] = i * segment
	}
	return offsets
}

// Pack lays the attributes out one after the other:
// positions | normals | texcoords | tangents | binormals.
func (g *GeometryConfig) Pack() []float32 {
	out := make([]float32, 0, len(g.Positions)*3*int(AttribCount))
	for _, attrib := range [][]mgl32.Vec3{g.Positions, g.Normals, g.Texcoords, g.Tangents, g.Binormals} {
		for _, v := range attrib {
			out = append(out, v[0], v[1], v[2])
		}
	}
	return out
}

func (g *GeometryConfig) String() string {
	return fmt.Sprintf("%s (%d vertices, %d indices)", g.Name, len(g.Positions), len(g.Indices))
}
