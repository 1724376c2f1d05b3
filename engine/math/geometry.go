package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GeometryGenerateNormals writes one face normal per triangle into normals.
// Shared vertices take the normal of the last triangle that touches them.
func GeometryGenerateNormals(positions, normals []mgl32.Vec3, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		normal := edge1.Cross(edge2).Normalize()
		normals[i0] = normal
		normals[i1] = normal
		normals[i2] = normal
	}
}

// GeometryGenerateTangents derives per-triangle tangents from the UV
// gradients. The binormal is cross(N, T), flipped to follow the direction of
// increasing v.
func GeometryGenerateTangents(positions, normals, texcoords, tangents, binormals []mgl32.Vec3, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		deltaU1 := texcoords[i1].X() - texcoords[i0].X()
		deltaV1 := texcoords[i1].Y() - texcoords[i0].Y()
		deltaU2 := texcoords[i2].X() - texcoords[i0].X()
		deltaV2 := texcoords[i2].Y() - texcoords[i0].Y()

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if Abs(dividend) < K_FLOAT_EPSILON {
			// degenerate UVs, keep whatever frame is there
			continue
		}
		fc := 1.0 / dividend

		tangent := edge1.Mul(deltaV2).Sub(edge2.Mul(deltaV1)).Mul(fc).Normalize()
		bitangent := edge2.Mul(deltaU1).Sub(edge1.Mul(deltaU2)).Mul(fc)

		for _, idx := range [3]uint32{i0, i1, i2} {
			binormal := normals[idx].Cross(tangent)
			if binormal.Dot(bitangent) < 0.0 {
				binormal = binormal.Mul(-1)
			}
			tangents[idx] = tangent
			binormals[idx] = binormal
		}
	}
}
