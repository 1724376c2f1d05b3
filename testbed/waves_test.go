package testbed

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformMap map[string]interface{}

func (u uniformMap) SetFloat(name string, v float32)      { u[name] = v }
func (u uniformMap) SetVec2(name string, v mgl32.Vec2)    { u[name] = v }
func (u uniformMap) SetVec3(name string, v mgl32.Vec3)    { u[name] = v }
func (u uniformMap) SetMat4(name string, v mgl32.Mat4)    { u[name] = v }
func (u uniformMap) SetUint(name string, v uint32)        { u[name] = v }
func (u uniformMap) SetInt(name string, v int32)          { u[name] = v }
func (u uniformMap) SetFloats(name string, v []float32)   { u[name] = v }
func (u uniformMap) SetVec2s(name string, v []mgl32.Vec2) { u[name] = v }

func TestWaveSetBounds(t *testing.T) {
	ws := NewWaveSet(DefaultWaves()...)
	require.Equal(t, 2, ws.Len())

	for ws.Len() < MaxWaves {
		require.True(t, ws.Insert(newWave))
	}
	assert.False(t, ws.Insert(newWave))
	assert.Equal(t, MaxWaves, ws.Len())

	assert.False(t, ws.Delete(-1))
	assert.False(t, ws.Delete(MaxWaves))
	assert.Equal(t, MaxWaves, ws.Len())

	require.True(t, ws.Delete(0))
	first, ok := ws.At(0)
	require.True(t, ok)
	assert.Equal(t, DefaultWaves()[1], first)
	_, ok = ws.At(ws.Len())
	assert.False(t, ok)

	many := make([]Wave, MaxWaves+3)
	assert.Equal(t, MaxWaves, NewWaveSet(many...).Len())
}

func TestWaveSetUniforms(t *testing.T) {
	ws := NewWaveSet(DefaultWaves()...)
	u := uniformMap{}
	ws.Apply(u)
	assert.Equal(t, uint32(2), u["num_waves"])
	assert.Equal(t, []float32{1.0, 0.5}, u["wave_amplitudes"])
	assert.Equal(t, []mgl32.Vec2{{-1, 0}, {-0.7, 0.7}}, u["wave_directions"])
	assert.Equal(t, []float32{0.2, 0.4}, u["wave_frequencies"])
	assert.Equal(t, []float32{0.5, 1.3}, u["wave_phases"])
	assert.Equal(t, []float32{2, 2}, u["wave_spikies"])

	empty := NewWaveSet()
	u = uniformMap{}
	empty.Apply(u)
	assert.Equal(t, uint32(0), u["num_waves"])
	assert.NotContains(t, u, "wave_amplitudes")
}

func TestWaterMaterial(t *testing.T) {
	w := NewWater(NewWaveSet(DefaultWaves()...))
	w.Time = 12.5
	w.CameraPosition = mgl32.Vec3{1, 2, 3}
	u := uniformMap{}
	w.Apply(u)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u["camera_position"])
	assert.InDelta(t, 12.5, u["now_time"], 1e-4)
	assert.Equal(t, uint32(2), u["num_waves"])
	assert.Equal(t, mgl32.Vec2{8, 4}, u["tex_scale"])
}
