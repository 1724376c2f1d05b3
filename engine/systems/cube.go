package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// Corners are in units of the half extents. Corner order per face is
// (min uv, max uv, min u max v, max u min v), so the 0,1,2 / 0,3,1 split
// winds counter-clockwise seen from outside and the face normals follow from
// the winding.
var cubeFaces = [6][4]mgl32.Vec3{
	// Front face
	{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {1, -1, 1}},
	// Back face
	{{1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {-1, -1, -1}},
	// Left
	{{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}},
	// Right face
	{{1, -1, 1}, {1, 1, -1}, {1, 1, 1}, {1, -1, -1}},
	// Bottom face
	{{1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {-1, -1, 1}},
	// Top face
	{{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, 1, 1}},
}

/**
 * @brief Generates a box centred on the origin with 4 vertices per side.
 *
 * @param width The overall width of the box. Must be non-zero.
 * @param height The overall height of the box. Must be non-zero.
 * @param depth The overall depth of the box. Must be non-zero.
 * @param tileX The number of times the texture should tile across each face on the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across each face on the y-axis. Must be non-zero.
 * @param name The name of the generated geometry.
 */
func GenerateCubeConfig(width, height, depth, tileX, tileY float32, name string) (*metadata.GeometryConfig, error) {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}
	if len(name) == 0 {
		name = "cube"
	}

	half := mgl32.Vec3{width * 0.5, height * 0.5, depth * 0.5}
	uvs := [4]mgl32.Vec3{{0, 0, 0}, {tileX, tileY, 0}, {0, tileY, 0}, {tileX, 0, 0}}

	config := metadata.NewGeometryConfig(name, 4*6, 6*6)
	for f, corners := range cubeFaces {
		vOffset := f * 4
		for c, corner := range corners {
			config.Positions[vOffset+c] = mgl32.Vec3{corner[0] * half[0], corner[1] * half[1], corner[2] * half[2]}
			config.Texcoords[vOffset+c] = uvs[c]
		}
		v := uint32(vOffset)
		config.Indices = append(config.Indices, v+0, v+1, v+2, v+0, v+3, v+1)
	}

	math.GeometryGenerateNormals(config.Positions, config.Normals, config.Indices)
	math.GeometryGenerateTangents(config.Positions, config.Normals, config.Texcoords, config.Tangents, config.Binormals, config.Indices)

	return config, nil
}
