// Package headless is a renderer backend that keeps everything in memory and
// records what would have been drawn.
package headless

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// Program is a "linked" program: its stages and the last value of every
// uniform written to it.
type Program struct {
	Stages   []metadata.ShaderStageSource
	Uniforms map[string]interface{}
}

// Draw is one recorded DrawGeometry call.
type Draw struct {
	Mesh     *metadata.Mesh
	Program  metadata.ProgramHandle
	Uniforms map[string]interface{}
	Textures map[uint32]metadata.TextureBinding
	Polygon  metadata.PolygonMode
}

type Texture struct {
	Kind   metadata.TextureKind
	Width  int
	Height int
	Mipmap bool
}

type Backend struct {
	AppName string
	Width   uint32
	Height  uint32

	Geometries map[uint32]*metadata.GeometryConfig
	Programs   map[metadata.ProgramHandle]*Program
	Textures   map[metadata.TextureHandle]Texture

	PolygonMode metadata.PolygonMode
	CullMode    metadata.FaceCullMode
	ClearColour mgl32.Vec4

	// Draws holds the calls of the current frame; Frames counts EndFrame calls.
	Draws  []Draw
	Frames uint64

	// FailGeometry makes the next uploads fail.
	FailGeometry bool

	vertexArrays *core.Identifiers
	buffers      *core.Identifiers
	programs     *core.Identifiers
	textures     *core.Identifiers

	current metadata.ProgramHandle
	bound   map[uint32]metadata.TextureBinding
}

func New() *Backend {
	return &Backend{
		Geometries:   make(map[uint32]*metadata.GeometryConfig),
		Programs:     make(map[metadata.ProgramHandle]*Program),
		Textures:     make(map[metadata.TextureHandle]Texture),
		vertexArrays: core.NewIdentifiers(),
		buffers:      core.NewIdentifiers(),
		programs:     core.NewIdentifiers(),
		textures:     core.NewIdentifiers(),
		bound:        make(map[uint32]metadata.TextureBinding),
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.AppName = appName
	b.Width = appWidth
	b.Height = appHeight
	core.LogInfo("Headless renderer initialized (%dx%d).", appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	if n := b.vertexArrays.Live(); n > 0 {
		core.LogDebug("headless shutdown with %d live geometries", n)
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.Width = width
	b.Height = height
	return nil
}

func (b *Backend) BeginFrame(clearColour mgl32.Vec4) error {
	b.ClearColour = clearColour
	b.Draws = b.Draws[:0]
	return nil
}

func (b *Backend) EndFrame() error {
	b.Frames++
	return nil
}

func (b *Backend) SetPolygonMode(mode metadata.PolygonMode) {
	b.PolygonMode = mode
}

func (b *Backend) SetCullMode(mode metadata.FaceCullMode) {
	b.CullMode = mode
}

func (b *Backend) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Mesh, error) {
	mesh := &metadata.Mesh{Name: config.Name}
	if b.FailGeometry {
		err := errors.Wrapf(core.ErrGeometryUpload, "geometry '%s': backend refused the upload", config.Name)
		core.LogError(err.Error())
		return mesh, err
	}
	if err := config.Validate(); err != nil {
		err = errors.Wrap(core.ErrGeometryUpload, err.Error())
		core.LogError(err.Error())
		return mesh, err
	}
	mesh.VAO = b.vertexArrays.Acquire(config)
	mesh.VBO = b.buffers.Acquire(config)
	mesh.IBO = b.buffers.Acquire(config)
	mesh.VerticesNB = config.VertexCount()
	mesh.IndicesNB = config.IndexCount()
	b.Geometries[mesh.VAO] = config
	return mesh, nil
}

func (b *Backend) DestroyGeometry(mesh *metadata.Mesh) {
	if mesh == nil || mesh.VAO == 0 {
		return
	}
	delete(b.Geometries, mesh.VAO)
	_ = b.vertexArrays.Release(mesh.VAO)
	_ = b.buffers.Release(mesh.VBO)
	_ = b.buffers.Release(mesh.IBO)
}

func (b *Backend) DrawGeometry(mesh *metadata.Mesh) {
	draw := Draw{
		Mesh:     mesh,
		Program:  b.current,
		Uniforms: make(map[string]interface{}),
		Textures: make(map[uint32]metadata.TextureBinding, len(b.bound)),
		Polygon:  b.PolygonMode,
	}
	if p, ok := b.Programs[b.current]; ok {
		for k, v := range p.Uniforms {
			draw.Uniforms[k] = v
		}
	}
	for unit, t := range b.bound {
		draw.Textures[unit] = t
	}
	b.Draws = append(b.Draws, draw)
}

// ProgramCreate "compiles" the stages. A stage fails when its source is
// empty or carries an #error directive, which is what a GLSL compiler would do.
func (b *Backend) ProgramCreate(stages []metadata.ShaderStageSource) (metadata.ProgramHandle, error) {
	if len(stages) == 0 {
		return 0, errors.Wrap(core.ErrShaderLink, "no stages")
	}
	for _, s := range stages {
		if strings.TrimSpace(s.Source) == "" {
			return 0, errors.Wrapf(core.ErrShaderCompile, "%s stage '%s' is empty", s.Stage, s.Path)
		}
		if strings.Contains(s.Source, "#error") {
			return 0, errors.Wrapf(core.ErrShaderCompile, "%s stage '%s': #error directive", s.Stage, s.Path)
		}
	}
	p := &Program{
		Stages:   append([]metadata.ShaderStageSource(nil), stages...),
		Uniforms: make(map[string]interface{}),
	}
	h := metadata.ProgramHandle(b.programs.Acquire(p))
	b.Programs[h] = p
	return h, nil
}

func (b *Backend) ProgramDestroy(program metadata.ProgramHandle) {
	if program == 0 {
		return
	}
	delete(b.Programs, program)
	_ = b.programs.Release(uint32(program))
}

func (b *Backend) UseProgram(program metadata.ProgramHandle) {
	b.current = program
}

func (b *Backend) Uniforms(program metadata.ProgramHandle) metadata.UniformSetter {
	if p, ok := b.Programs[program]; ok {
		return uniformRecorder(p.Uniforms)
	}
	return uniformRecorder(make(map[string]interface{}))
}

func (b *Backend) TextureCreate2D(img *image.NRGBA, mipmap bool) (metadata.TextureHandle, error) {
	if img == nil || img.Rect.Empty() {
		return 0, errors.Wrap(core.ErrTextureDecode, "empty image")
	}
	t := Texture{Kind: metadata.Texture2D, Width: img.Rect.Dx(), Height: img.Rect.Dy(), Mipmap: mipmap}
	h := metadata.TextureHandle(b.textures.Acquire(t))
	b.Textures[h] = t
	return h, nil
}

func (b *Backend) TextureCreateCube(faces [6]*image.NRGBA, mipmap bool) (metadata.TextureHandle, error) {
	for i, f := range faces {
		if f == nil || f.Rect.Empty() {
			return 0, errors.Wrapf(core.ErrCubemapFace, "face %s is empty", metadata.CubemapFaces[i])
		}
		if f.Rect.Size() != faces[0].Rect.Size() {
			return 0, errors.Wrapf(core.ErrCubemapFace, "face %s is %v, expected %v", metadata.CubemapFaces[i], f.Rect.Size(), faces[0].Rect.Size())
		}
	}
	t := Texture{Kind: metadata.TextureCubeMap, Width: faces[0].Rect.Dx(), Height: faces[0].Rect.Dy(), Mipmap: mipmap}
	h := metadata.TextureHandle(b.textures.Acquire(t))
	b.Textures[h] = t
	return h, nil
}

func (b *Backend) TextureDestroy(texture metadata.TextureHandle) {
	if texture == 0 {
		return
	}
	delete(b.Textures, texture)
	_ = b.textures.Release(uint32(texture))
}

func (b *Backend) BindTexture(unit uint32, binding metadata.TextureBinding) {
	b.bound[unit] = binding
}

// LiveGeometries counts uploaded meshes not yet destroyed.
func (b *Backend) LiveGeometries() int {
	return b.vertexArrays.Live()
}

func (b *Backend) String() string {
	return fmt.Sprintf("headless %dx%d (%d geometries, %d programs, %d textures)",
		b.Width, b.Height, len(b.Geometries), b.programs.Live(), len(b.Textures))
}

type uniformRecorder map[string]interface{}

func (u uniformRecorder) SetFloat(name string, v float32)      { u[name] = v }
func (u uniformRecorder) SetVec2(name string, v mgl32.Vec2)    { u[name] = v }
func (u uniformRecorder) SetVec3(name string, v mgl32.Vec3)    { u[name] = v }
func (u uniformRecorder) SetMat4(name string, v mgl32.Mat4)    { u[name] = v }
func (u uniformRecorder) SetUint(name string, v uint32)        { u[name] = v }
func (u uniformRecorder) SetInt(name string, v int32)          { u[name] = v }
func (u uniformRecorder) SetFloats(name string, v []float32)   { u[name] = append([]float32(nil), v...) }
func (u uniformRecorder) SetVec2s(name string, v []mgl32.Vec2) { u[name] = append([]mgl32.Vec2(nil), v...) }
