package metadata

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type recordingSetter map[string]interface{}

func (r recordingSetter) SetFloat(name string, v float32)      { r[name] = v }
func (r recordingSetter) SetVec2(name string, v mgl32.Vec2)    { r[name] = v }
func (r recordingSetter) SetVec3(name string, v mgl32.Vec3)    { r[name] = v }
func (r recordingSetter) SetMat4(name string, v mgl32.Mat4)    { r[name] = v }
func (r recordingSetter) SetUint(name string, v uint32)        { r[name] = v }
func (r recordingSetter) SetInt(name string, v int32)          { r[name] = v }
func (r recordingSetter) SetFloats(name string, v []float32)   { r[name] = v }
func (r recordingSetter) SetVec2s(name string, v []mgl32.Vec2) { r[name] = v }

func TestUniformApplyDispatchesOnKind(t *testing.T) {
	uniforms := []Uniform{
		UniformFloat("shininess", 10),
		UniformVec2("offset", mgl32.Vec2{1, 2}),
		UniformVec3("ambient", mgl32.Vec3{0.1, 0.2, 0.3}),
		UniformMat4("m", mgl32.Ident4()),
		UniformUint("num_waves", 2),
		UniformInt("unit", -1),
		UniformFloats("waveAmplitudes", []float32{1, 0.5}),
		UniformVec2s("waveDirections", []mgl32.Vec2{{-1, 0}}),
	}
	rec := recordingSetter{}
	for _, u := range uniforms {
		u.Apply(rec)
	}
	assert.Equal(t, float32(10), rec["shininess"])
	assert.Equal(t, mgl32.Vec2{1, 2}, rec["offset"])
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, rec["ambient"])
	assert.Equal(t, mgl32.Ident4(), rec["m"])
	assert.Equal(t, uint32(2), rec["num_waves"])
	assert.Equal(t, int32(-1), rec["unit"])
	assert.Equal(t, []float32{1, 0.5}, rec["waveAmplitudes"])
	assert.Equal(t, []mgl32.Vec2{{-1, 0}}, rec["waveDirections"])
}
