// Package opengl implements the renderer backend on an OpenGL 4.1 core
// context. Every call must happen on the thread that owns the context.
package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

type OpenGLRenderer struct {
	width  uint32
	height uint32

	// uniform locations per program, looked up lazily
	locations map[metadata.ProgramHandle]map[string]int32
	current   metadata.ProgramHandle

	FrameNumber uint64
}

func New() *OpenGLRenderer {
	return &OpenGLRenderer{
		locations: make(map[metadata.ProgramHandle]map[string]int32),
	}
}

// Initialize loads the GL entry points. The context must already be current.
func (r *OpenGLRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		err = errors.Wrap(err, "failed to initialize OpenGL")
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("%s: OpenGL %s, GLSL %s, %s", appName,
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.ClearDepth(1.0)

	return r.Resized(appWidth, appHeight)
}

func (r *OpenGLRenderer) Shutdown() error {
	for program := range r.locations {
		gl.DeleteProgram(uint32(program))
	}
	r.locations = make(map[metadata.ProgramHandle]map[string]int32)
	core.LogInfo("OpenGL renderer shut down.")
	return nil
}

func (r *OpenGLRenderer) Resized(width, height uint32) error {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (r *OpenGLRenderer) BeginFrame(clearColour mgl32.Vec4) error {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(clearColour[0], clearColour[1], clearColour[2], clearColour[3])
	gl.ClearDepth(1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

// EndFrame checks for errors raised during the frame. Swapping is the
// window's job.
func (r *OpenGLRenderer) EndFrame() error {
	r.FrameNumber++
	if code := gl.GetError(); code != gl.NO_ERROR {
		core.LogWarn("OpenGL error 0x%x during frame %d", code, r.FrameNumber)
	}
	return nil
}

func (r *OpenGLRenderer) SetPolygonMode(mode metadata.PolygonMode) {
	switch mode {
	case metadata.PolygonModeLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case metadata.PolygonModePoint:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *OpenGLRenderer) SetCullMode(mode metadata.FaceCullMode) {
	switch mode {
	case metadata.FaceCullModeFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case metadata.FaceCullModeBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}
