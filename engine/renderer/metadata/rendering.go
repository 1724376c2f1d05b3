package metadata

import "github.com/go-gl/mathgl/mgl32"

type PolygonMode int

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

// Next cycles fill, line, point.
func (p PolygonMode) Next() PolygonMode {
	return (p + 1) % 3
}

func (p PolygonMode) String() string {
	switch p {
	case PolygonModeFill:
		return "fill"
	case PolygonModeLine:
		return "line"
	case PolygonModePoint:
		return "point"
	}
	return "unknown"
}

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = iota
	/** @brief Only front faces are culled. */
	FaceCullModeFront
	/** @brief Only back faces are culled. */
	FaceCullModeBack
)

// Next cycles off, front, back.
func (c FaceCullMode) Next() FaceCullMode {
	return (c + 1) % 3
}

func (c FaceCullMode) String() string {
	switch c {
	case FaceCullModeNone:
		return "none"
	case FaceCullModeFront:
		return "front"
	case FaceCullModeBack:
		return "back"
	}
	return "unknown"
}

// UniformApplier is anything that can push its values into a program.
type UniformApplier interface {
	Apply(s UniformSetter)
}

/**
 * @brief Everything needed to issue one draw: what to draw, with which
 * program and uniforms, and where.
 */
type DrawCall struct {
	Mesh     *Mesh
	Program  ProgramSlot
	Material UniformApplier
	// Textures override mesh bindings of the same name.
	Textures       []NamedBinding
	World          mgl32.Mat4
	ViewProjection mgl32.Mat4
}
