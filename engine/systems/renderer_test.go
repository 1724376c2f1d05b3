package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawFrameRendersViews(t *testing.T) {
	b := headless.New()
	ss, err := NewShaderSystem(&ShaderSystemConfig{MaxProgramCount: 4}, b, nil)
	require.NoError(t, err)
	diffuse, err := ss.CreateAndRegisterProgram("diffuse", metadata.ShaderStageSource{Stage: metadata.ShaderStageVertex, Source: "void main() {}"})
	require.NoError(t, err)
	broken, _ := ss.CreateAndRegisterProgram("broken", metadata.ShaderStageSource{Stage: metadata.ShaderStageVertex, Source: "#error"})

	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 8}, b)
	require.NoError(t, err)
	sphere, err := gs.CreateSphere(6, 6, 1)
	require.NoError(t, err)

	g := scene.NewGraph()
	root := g.NewNode("root")
	a, c := g.NewNode("a"), g.NewNode("c")
	require.NoError(t, g.AddChild(root, a))
	require.NoError(t, g.AddChild(root, c))
	g.Node(a).SetGeometry(sphere)
	g.Node(a).SetProgram(diffuse, nil)
	g.Node(c).SetGeometry(sphere)
	g.Node(c).SetProgram(broken, nil)

	rs, err := NewRendererSystem("test", 320, 240, b, ss)
	require.NoError(t, err)
	require.NoError(t, rs.Initialize(true))
	assert.Equal(t, metadata.FaceCullModeBack, b.CullMode)

	vp := mgl32.Perspective(1, 1, 0.1, 10)
	require.NoError(t, rs.DrawFrame(&RenderPacket{Views: []RenderView{
		{Name: "world", Graph: g, Root: root, WorldToClip: vp},
		{Name: "sky", Graph: g, Root: root, WorldToClip: vp, Traversal: TraversalStack, DisableCulling: true},
		{Name: "debug", Graph: g, Root: root, WorldToClip: vp, Override: &scene.Override{Program: diffuse}},
		{Name: "empty"},
	}}))

	// the node on the broken program is skipped, except under the override
	assert.Len(t, b.Draws, 4)
	assert.Equal(t, uint64(1), b.Frames)
	assert.Equal(t, uint64(1), rs.FrameNumber)
	assert.Equal(t, metadata.FaceCullModeBack, b.CullMode)
	for _, d := range b.Draws {
		assert.Equal(t, ss.Program(diffuse), d.Program)
		assert.Equal(t, vp, d.Uniforms["vertex_world_to_clip"])
	}
}

func TestModesAndResize(t *testing.T) {
	b := headless.New()
	rs, err := NewRendererSystem("test", 320, 240, b, nil)
	require.NoError(t, err)
	require.NoError(t, rs.Initialize(false))
	assert.Equal(t, metadata.FaceCullModeNone, rs.CullMode())

	assert.Equal(t, metadata.PolygonModeLine, rs.CyclePolygonMode())
	assert.Equal(t, metadata.PolygonModeLine, b.PolygonMode)
	assert.Equal(t, metadata.PolygonModePoint, rs.CyclePolygonMode())
	assert.Equal(t, metadata.PolygonModeFill, rs.CyclePolygonMode())

	assert.Equal(t, metadata.FaceCullModeFront, rs.CycleCullMode())
	assert.Equal(t, metadata.FaceCullModeFront, b.CullMode)

	require.NoError(t, rs.OnResize(640, 480))
	assert.Equal(t, uint32(640), b.Width)
	require.NoError(t, rs.OnResize(0, 0))
	assert.Equal(t, uint32(480), rs.FramebufferHeight)

	_, err = NewRendererSystem("test", 1, 1, nil, nil)
	assert.Error(t, err)
}

func TestSystemManager(t *testing.T) {
	b := headless.New()
	sm, err := NewSystemManager("test", 64, 64, b, nil)
	require.NoError(t, err)
	require.NoError(t, sm.RendererSystem.Initialize(true))
	_, err = sm.GeometrySystem.CreateCube(1, 1, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, sm.Shutdown())
	assert.Zero(t, b.LiveGeometries())
}
