package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
)

type Traversal uint8

const (
	TraversalRecursive Traversal = iota
	TraversalStack
)

/**
 * @brief One pass over a scene graph. Views are rendered in packet order
 * into the same frame.
 */
type RenderView struct {
	Name        string
	Graph       *scene.Graph
	Root        scene.NodeID
	WorldToClip mgl32.Mat4
	// Optional program and material forced on every node of the view.
	Override  *scene.Override
	Traversal Traversal
	// Draw both faces, e.g. for a skybox seen from the inside.
	DisableCulling bool
}

/** @brief Everything the renderer needs to draw one frame. */
type RenderPacket struct {
	DeltaTime float64
	Views     []RenderView
}

type RendererSystem struct {
	backend  renderer.RendererBackend
	frontend *renderer.Renderer

	// application
	AppName string

	ClearColour mgl32.Vec4
	FrameNumber uint64

	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32

	polygonMode metadata.PolygonMode
	cullMode    metadata.FaceCullMode
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, backend renderer.RendererBackend, programs renderer.ProgramTable) (*RendererSystem, error) {
	if backend == nil {
		err := fmt.Errorf("func NewRendererSystem - backend is nil")
		core.LogError(err.Error())
		return nil, err
	}
	return &RendererSystem{
		backend:           backend,
		frontend:          renderer.New(backend, programs),
		AppName:           appName,
		FramebufferWidth:  appWidth,
		FramebufferHeight: appHeight,
		ClearColour:       mgl32.Vec4{0.2, 0.2, 0.2, 1},
		polygonMode:       metadata.PolygonModeFill,
		cullMode:          metadata.FaceCullModeBack,
	}, nil
}

func (r *RendererSystem) Initialize(cullFaces bool) error {
	if err := r.backend.Initialize(r.AppName, r.FramebufferWidth, r.FramebufferHeight); err != nil {
		core.LogError("renderer backend failed to initialize: %s", err.Error())
		return err
	}
	if !cullFaces {
		r.cullMode = metadata.FaceCullModeNone
	}
	r.backend.SetPolygonMode(r.polygonMode)
	r.backend.SetCullMode(r.cullMode)
	return nil
}

func (r *RendererSystem) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *RendererSystem) Backend() renderer.RendererBackend {
	return r.backend
}

// Draw implements scene.Drawer.
func (r *RendererSystem) Draw(call *metadata.DrawCall) {
	r.frontend.Draw(call)
}

func (r *RendererSystem) OnResize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	return r.backend.Resized(width, height)
}

func (r *RendererSystem) BeginFrame() error {
	r.FrameNumber++
	return r.backend.BeginFrame(r.ClearColour)
}

func (r *RendererSystem) EndFrame() error {
	return r.backend.EndFrame()
}

// RenderView draws a single view into the current frame.
func (r *RendererSystem) RenderView(view *RenderView) {
	if view.Graph == nil {
		return
	}
	if view.DisableCulling {
		r.backend.SetCullMode(metadata.FaceCullModeNone)
		defer r.backend.SetCullMode(r.cullMode)
	}
	switch view.Traversal {
	case TraversalStack:
		view.Graph.RenderStack(view.Root, r, view.WorldToClip, view.Override)
	default:
		view.Graph.RenderRecursive(view.Root, r, view.WorldToClip, view.Override)
	}
}

// DrawFrame begins a frame, renders each view of packet and ends the frame.
func (r *RendererSystem) DrawFrame(packet *RenderPacket) error {
	if err := r.BeginFrame(); err != nil {
		return err
	}
	for i := range packet.Views {
		r.RenderView(&packet.Views[i])
	}
	// End the frame. If this fails, it is likely unrecoverable.
	if err := r.EndFrame(); err != nil {
		err := fmt.Errorf("backend func EndFrame failed: %w", err)
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (r *RendererSystem) PolygonMode() metadata.PolygonMode {
	return r.polygonMode
}

func (r *RendererSystem) SetPolygonMode(mode metadata.PolygonMode) {
	r.polygonMode = mode
	r.backend.SetPolygonMode(mode)
}

// CyclePolygonMode switches fill -> line -> point -> fill.
func (r *RendererSystem) CyclePolygonMode() metadata.PolygonMode {
	r.SetPolygonMode(r.polygonMode.Next())
	core.LogInfo("polygon mode: %s", r.polygonMode)
	return r.polygonMode
}

func (r *RendererSystem) CullMode() metadata.FaceCullMode {
	return r.cullMode
}

func (r *RendererSystem) SetCullMode(mode metadata.FaceCullMode) {
	r.cullMode = mode
	r.backend.SetCullMode(mode)
}

func (r *RendererSystem) CycleCullMode() metadata.FaceCullMode {
	r.SetCullMode(r.cullMode.Next())
	core.LogInfo("face culling: %s", r.cullMode)
	return r.cullMode
}
