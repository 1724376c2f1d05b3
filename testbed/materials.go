package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	"github.com/spaghettifunk/parallax/engine/scene"
)

// Lighting is the Blinn-Phong parameter block shared by the lit programs.
// Demos mutate it in place; nodes hold a pointer.
type Lighting struct {
	LightPosition  mgl32.Vec3
	CameraPosition mgl32.Vec3
	Ambient        mgl32.Vec3
	Diffuse        mgl32.Vec3
	Specular       mgl32.Vec3
	Shininess      float32
}

func NewLighting() *Lighting {
	return &Lighting{
		LightPosition: mgl32.Vec3{-2, 4, 2},
		Ambient:       mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:       mgl32.Vec3{0.7, 0.2, 0.4},
		Specular:      mgl32.Vec3{1, 1, 1},
		Shininess:     10,
	}
}

func (l *Lighting) Apply(s metadata.UniformSetter) {
	s.SetVec3("light_position", l.LightPosition)
	s.SetVec3("camera_position", l.CameraPosition)
	s.SetVec3("ambient", l.Ambient)
	s.SetVec3("diffuse", l.Diffuse)
	s.SetVec3("specular", l.Specular)
	s.SetFloat("shininess", l.Shininess)
}

// Water drives the ocean shader: colours, bump scrolling and the wave set.
type Water struct {
	Waves          *WaveSet
	Time           float32
	CameraPosition mgl32.Vec3
	DeepColour     mgl32.Vec3
	ShallowColour  mgl32.Vec3
	SpaceScale     float32
	BumpScale      float32
	TexScale       mgl32.Vec2
	BumpSpeed      mgl32.Vec2
}

func NewWater(waves *WaveSet) *Water {
	return &Water{
		Waves:         waves,
		DeepColour:    mgl32.Vec3{0.1, 0.15, 0.2},
		ShallowColour: mgl32.Vec3{0.07, 0.3, 0.5},
		SpaceScale:    50,
		BumpScale:     1,
		TexScale:      mgl32.Vec2{8, 4},
		BumpSpeed:     mgl32.Vec2{-0.05, 0},
	}
}

func (w *Water) Apply(s metadata.UniformSetter) {
	s.SetVec3("camera_position", w.CameraPosition)
	s.SetVec3("water_deep_colour", w.DeepColour)
	s.SetVec3("water_shallow_colour", w.ShallowColour)
	s.SetFloat("wave_space_scale", w.SpaceScale)
	s.SetFloat("wave_bump_scale", w.BumpScale)
	s.SetVec2("tex_scale", w.TexScale)
	s.SetVec2("bump_speed", w.BumpSpeed)
	// keep the time small so float precision holds in the shader
	s.SetFloat("now_time", float32(int(w.Time*1000)%100000)/1000)
	if w.Waves != nil {
		w.Waves.Apply(s)
	}
}

// colour is the flat tint used by the planets and markers.
func colour(r, g, b float32) scene.Params {
	return scene.Params{metadata.UniformVec3("colour", mgl32.Vec3{r, g, b})}
}
