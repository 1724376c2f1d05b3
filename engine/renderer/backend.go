package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// RendererBackend is the immediate-mode graphics API as the engine sees it.
// All calls happen on the thread that owns the context.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(clearColour mgl32.Vec4) error
	EndFrame() error

	SetPolygonMode(mode metadata.PolygonMode)
	SetCullMode(mode metadata.FaceCullMode)

	// CreateGeometry uploads config; on failure the mesh is non-nil with VAO 0.
	CreateGeometry(config *metadata.GeometryConfig) (*metadata.Mesh, error)
	DestroyGeometry(mesh *metadata.Mesh)
	DrawGeometry(mesh *metadata.Mesh)

	// ProgramCreate compiles and links the stages, returning 0 on failure.
	ProgramCreate(stages []metadata.ShaderStageSource) (metadata.ProgramHandle, error)
	ProgramDestroy(program metadata.ProgramHandle)
	UseProgram(program metadata.ProgramHandle)
	// Uniforms addresses the uniforms of program, which must be in use.
	Uniforms(program metadata.ProgramHandle) metadata.UniformSetter

	TextureCreate2D(img *image.NRGBA, mipmap bool) (metadata.TextureHandle, error)
	TextureCreateCube(faces [6]*image.NRGBA, mipmap bool) (metadata.TextureHandle, error)
	TextureDestroy(texture metadata.TextureHandle)
	BindTexture(unit uint32, binding metadata.TextureBinding)
}

type RendererType uint8

const (
	OpenGL RendererType = iota
	Headless
)

func (t RendererType) String() string {
	switch t {
	case OpenGL:
		return "opengl"
	case Headless:
		return "headless"
	}
	return "unknown"
}
