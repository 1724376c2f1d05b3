package systems

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometrySystemCreates(t *testing.T) {
	b := headless.New()
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 16}, b)
	require.NoError(t, err)

	sphere, err := gs.CreateSphere(8, 6, 1)
	require.NoError(t, err)
	assert.True(t, sphere.Ready())
	assert.Equal(t, uint32(48), sphere.VerticesNB)
	assert.Equal(t, uint32(6*7*5), sphere.IndicesNB)

	// identical arguments still give independent meshes
	again, err := gs.CreateSphere(8, 6, 1)
	require.NoError(t, err)
	assert.NotEqual(t, sphere.VAO, again.VAO)

	_, err = gs.CreateQuad(1, 1)
	require.NoError(t, err)
	_, err = gs.CreateCube(1, 1, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, gs.Count())

	require.NoError(t, gs.Shutdown())
	assert.Zero(t, b.LiveGeometries())
}

func TestGeometrySystemFailureYieldsEmptyMesh(t *testing.T) {
	b := headless.New()
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 1}, b)
	require.NoError(t, err)

	mesh, err := gs.CreateTorus(1, 8, 1, 0.2)
	assert.True(t, errors.Is(err, core.ErrInvalidResolution))
	require.NotNil(t, mesh)
	assert.Zero(t, mesh.VAO)

	b.FailGeometry = true
	mesh, err = gs.CreateZoneplate(4, 4, 1, 0.1)
	assert.True(t, errors.Is(err, core.ErrGeometryUpload))
	assert.False(t, mesh.Ready())
	b.FailGeometry = false

	_, err = gs.CreateOceanplate(4, 4, 10)
	require.NoError(t, err)
	mesh, err = gs.CreateCircleRing(4, 4, 0, 1)
	assert.Error(t, err, "system is full")
	assert.Zero(t, mesh.VAO)

	_, err = NewGeometrySystem(&GeometrySystemConfig{}, b)
	assert.Error(t, err)
}
