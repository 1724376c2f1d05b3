package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

/** @brief A linked backend program. 0 is never a valid program. */
type ProgramHandle uint32

/** @brief A stable index into the program table. */
type ProgramSlot int32

const NoProgram ProgramSlot = -1

/**
 * @brief Shader stages available in the system.
 */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageGeometry
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageGeometry:
		return "geometry"
	case ShaderStageFragment:
		return "fragment"
	}
	return "unknown"
}

/**
 * @brief One stage of a program. Path is relative to the asset root and
 * Source is filled in when the file is read.
 */
type ShaderStageSource struct {
	Stage  ShaderStage
	Path   string
	Source string
}

// UniformSetter writes uniforms of the bound program, addressed by name.
// Names the program does not use are ignored.
type UniformSetter interface {
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, v mgl32.Mat4)
	SetUint(name string, v uint32)
	SetInt(name string, v int32)
	SetFloats(name string, v []float32)
	SetVec2s(name string, v []mgl32.Vec2)
}

type UniformKind int

const (
	UniformKindFloat UniformKind = iota
	UniformKindVec2
	UniformKindVec3
	UniformKindMat4
	UniformKindUint
	UniformKindInt
	UniformKindFloats
	UniformKindVec2s
)

/**
 * @brief A single named uniform value. Only the field matching Kind is read.
 */
type Uniform struct {
	Name string
	Kind UniformKind

	F   float32
	V2  mgl32.Vec2
	V3  mgl32.Vec3
	M4  mgl32.Mat4
	U   uint32
	I   int32
	Fs  []float32
	V2s []mgl32.Vec2
}

func UniformFloat(name string, v float32) Uniform {
	return Uniform{Name: name, Kind: UniformKindFloat, F: v}
}

func UniformVec2(name string, v mgl32.Vec2) Uniform {
	return Uniform{Name: name, Kind: UniformKindVec2, V2: v}
}

func UniformVec3(name string, v mgl32.Vec3) Uniform {
	return Uniform{Name: name, Kind: UniformKindVec3, V3: v}
}

func UniformMat4(name string, v mgl32.Mat4) Uniform {
	return Uniform{Name: name, Kind: UniformKindMat4, M4: v}
}

func UniformUint(name string, v uint32) Uniform {
	return Uniform{Name: name, Kind: UniformKindUint, U: v}
}

func UniformInt(name string, v int32) Uniform {
	return Uniform{Name: name, Kind: UniformKindInt, I: v}
}

func UniformFloats(name string, v []float32) Uniform {
	return Uniform{Name: name, Kind: UniformKindFloats, Fs: v}
}

func UniformVec2s(name string, v []mgl32.Vec2) Uniform {
	return Uniform{Name: name, Kind: UniformKindVec2s, V2s: v}
}

// Apply writes u through s.
func (u Uniform) Apply(s UniformSetter) {
	switch u.Kind {
	case UniformKindFloat:
		s.SetFloat(u.Name, u.F)
	case UniformKindVec2:
		s.SetVec2(u.Name, u.V2)
	case UniformKindVec3:
		s.SetVec3(u.Name, u.V3)
	case UniformKindMat4:
		s.SetMat4(u.Name, u.M4)
	case UniformKindUint:
		s.SetUint(u.Name, u.U)
	case UniformKindInt:
		s.SetInt(u.Name, u.I)
	case UniformKindFloats:
		s.SetFloats(u.Name, u.Fs)
	case UniformKindVec2s:
		s.SetVec2s(u.Name, u.V2s)
	}
}
