package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// uniformSetter writes to the program in use. Unknown names resolve to
// location -1, which GL ignores.
type uniformSetter struct {
	program  metadata.ProgramHandle
	renderer *OpenGLRenderer
}

func (u *uniformSetter) loc(name string) int32 {
	return u.renderer.location(u.program, name)
}

func (u *uniformSetter) SetFloat(name string, v float32) {
	gl.Uniform1f(u.loc(name), v)
}

func (u *uniformSetter) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(u.loc(name), v[0], v[1])
}

func (u *uniformSetter) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(u.loc(name), 1, &v[0])
}

func (u *uniformSetter) SetMat4(name string, v mgl32.Mat4) {
	gl.UniformMatrix4fv(u.loc(name), 1, false, &v[0])
}

func (u *uniformSetter) SetUint(name string, v uint32) {
	gl.Uniform1ui(u.loc(name), v)
}

func (u *uniformSetter) SetInt(name string, v int32) {
	gl.Uniform1i(u.loc(name), v)
}

func (u *uniformSetter) SetFloats(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(u.loc(name), int32(len(v)), &v[0])
}

func (u *uniformSetter) SetVec2s(name string, v []mgl32.Vec2) {
	if len(v) == 0 {
		return
	}
	gl.Uniform2fv(u.loc(name), int32(len(v)), &v[0][0])
}
