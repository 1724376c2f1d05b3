package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ RendererBackend = (*headless.Backend)(nil)

type programTable []metadata.ProgramHandle

func (p programTable) Program(slot metadata.ProgramSlot) metadata.ProgramHandle {
	if slot < 0 || int(slot) >= len(p) {
		return 0
	}
	return p[slot]
}

func uploadTriangle(t *testing.T, b *headless.Backend) *metadata.Mesh {
	t.Helper()
	g := metadata.NewGeometryConfig("tri", 3, 3)
	g.Positions[1] = mgl32.Vec3{1, 0, 0}
	g.Positions[2] = mgl32.Vec3{0, 1, 0}
	g.Indices = append(g.Indices, 0, 1, 2)
	mesh, err := b.CreateGeometry(g)
	require.NoError(t, err)
	return mesh
}

func compile(t *testing.T, b *headless.Backend) metadata.ProgramHandle {
	t.Helper()
	h, err := b.ProgramCreate([]metadata.ShaderStageSource{
		{Stage: metadata.ShaderStageVertex, Path: "v.vert", Source: "void main() {}"},
		{Stage: metadata.ShaderStageFragment, Path: "f.frag", Source: "void main() {}"},
	})
	require.NoError(t, err)
	return h
}

func TestDrawSetsStandardUniforms(t *testing.T) {
	b := headless.New()
	mesh := uploadTriangle(t, b)
	h := compile(t, b)
	r := New(b, programTable{h})

	world := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	vp := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	r.Draw(&metadata.DrawCall{
		Mesh:           mesh,
		Program:        0,
		Material:       metadata.UniformFloat("shininess", 8),
		World:          world,
		ViewProjection: vp,
	})

	require.Len(t, b.Draws, 1)
	d := b.Draws[0]
	assert.Equal(t, h, d.Program)
	assert.Equal(t, world, d.Uniforms["vertex_model_to_world"])
	assert.Equal(t, vp, d.Uniforms["vertex_world_to_clip"])
	normal := d.Uniforms["normal_model_to_world"].(mgl32.Mat4)
	assert.True(t, world.Inv().Transpose().ApproxEqualThreshold(normal, 1e-6))
	assert.Equal(t, float32(8), d.Uniforms["shininess"])
	assert.Equal(t, uint32(0), d.Uniforms["has_diffuse_texture"])
}

func TestDrawSkipsUnresolvedProgramsAndEmptyMeshes(t *testing.T) {
	b := headless.New()
	mesh := uploadTriangle(t, b)
	r := New(b, programTable{0})

	r.Draw(&metadata.DrawCall{Mesh: mesh, Program: 0})
	r.Draw(&metadata.DrawCall{Mesh: mesh, Program: 5})
	r.Draw(&metadata.DrawCall{Mesh: mesh, Program: metadata.NoProgram})
	r.Draw(&metadata.DrawCall{Mesh: &metadata.Mesh{Name: "failed"}, Program: 0})
	r.Draw(&metadata.DrawCall{Mesh: nil, Program: 0})
	assert.Empty(t, b.Draws)
}

func TestDrawNodeTexturesOverrideMesh(t *testing.T) {
	b := headless.New()
	h := compile(t, b)
	mesh := uploadTriangle(t, b).WithTextures(
		metadata.NamedBinding{Name: metadata.DiffuseTexture, Binding: metadata.TextureBinding{Handle: 3, Kind: metadata.Texture2D}},
		metadata.NamedBinding{Name: metadata.BumpTexture, Binding: metadata.TextureBinding{Handle: 4, Kind: metadata.Texture2D}},
	)
	r := New(b, programTable{h})

	r.Draw(&metadata.DrawCall{
		Mesh:    mesh,
		Program: 0,
		Textures: []metadata.NamedBinding{
			{Name: metadata.DiffuseTexture, Binding: metadata.TextureBinding{Handle: 7, Kind: metadata.Texture2D}},
		},
		World:          mgl32.Ident4(),
		ViewProjection: mgl32.Ident4(),
	})

	require.Len(t, b.Draws, 1)
	d := b.Draws[0]
	// names bind in sorted order: bump_texture, diffuse_texture
	assert.Equal(t, int32(0), d.Uniforms[metadata.BumpTexture])
	assert.Equal(t, int32(1), d.Uniforms[metadata.DiffuseTexture])
	assert.Equal(t, metadata.TextureHandle(4), d.Textures[0].Handle)
	assert.Equal(t, metadata.TextureHandle(7), d.Textures[1].Handle)
	assert.Equal(t, uint32(1), d.Uniforms["has_diffuse_texture"])
	assert.Equal(t, uint32(1), d.Uniforms["has_bump_texture"])
	assert.Equal(t, uint32(0), d.Uniforms["has_cubemap_texture"])
}
