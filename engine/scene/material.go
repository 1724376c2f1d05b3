package scene

import "github.com/spaghettifunk/parallax/engine/renderer/metadata"

// Material writes the per-node uniforms a program needs beyond the standard
// transforms and texture samplers.
type Material interface {
	Apply(s metadata.UniformSetter)
}

// MaterialFunc adapts a function to Material.
type MaterialFunc func(s metadata.UniformSetter)

func (f MaterialFunc) Apply(s metadata.UniformSetter) {
	f(s)
}

// Params is a fixed list of uniform values.
type Params []metadata.Uniform

func (p Params) Apply(s metadata.UniformSetter) {
	for _, u := range p {
		u.Apply(s)
	}
}

// Materials applies several materials in order; later ones win on name clashes.
type Materials []Material

func (m Materials) Apply(s metadata.UniformSetter) {
	for _, mat := range m {
		if mat != nil {
			mat.Apply(s)
		}
	}
}

type noUniforms struct{}

func (noUniforms) Apply(metadata.UniformSetter) {}

// NoUniforms is the material of programs that need nothing extra.
var NoUniforms Material = noUniforms{}
