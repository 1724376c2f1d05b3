package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGeometryGenerateFrameForQuad(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}}
	texcoords := []mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}}
	indices := []uint32{0, 2, 3, 1, 0, 3}
	normals := make([]mgl32.Vec3, 4)
	tangents := make([]mgl32.Vec3, 4)
	binormals := make([]mgl32.Vec3, 4)

	GeometryGenerateNormals(positions, normals, indices)
	GeometryGenerateTangents(positions, normals, texcoords, tangents, binormals, indices)

	for i := range positions {
		vecNear(t, mgl32.Vec3{0, 0, 1}, normals[i], 1e-6)
		vecNear(t, mgl32.Vec3{1, 0, 0}, tangents[i], 1e-6)
		vecNear(t, mgl32.Vec3{0, 1, 0}, binormals[i], 1e-6)
	}
}
