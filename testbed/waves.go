package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// MaxWaves matches the uniform array size of the water shader.
const MaxWaves = 6

// Wave is one Gerstner wave.
type Wave struct {
	Amplitude float32
	Direction mgl32.Vec2
	Frequency float32
	Phase     float32
	Spikiness float32
}

func DefaultWaves() []Wave {
	return []Wave{
		{Amplitude: 1.0, Direction: mgl32.Vec2{-1, 0}, Frequency: 0.2, Phase: 0.5, Spikiness: 2},
		{Amplitude: 0.5, Direction: mgl32.Vec2{-0.7, 0.7}, Frequency: 0.4, Phase: 1.3, Spikiness: 2},
	}
}

// WaveSet is the bounded list of waves fed to the water shader. It applies
// itself as a material.
type WaveSet struct {
	waves []Wave
}

// NewWaveSet keeps at most MaxWaves of waves.
func NewWaveSet(waves ...Wave) *WaveSet {
	if len(waves) > MaxWaves {
		waves = waves[:MaxWaves]
	}
	return &WaveSet{waves: append(make([]Wave, 0, MaxWaves), waves...)}
}

func (ws *WaveSet) Len() int {
	return len(ws.waves)
}

func (ws *WaveSet) At(i int) (Wave, bool) {
	if i < 0 || i >= len(ws.waves) {
		return Wave{}, false
	}
	return ws.waves[i], true
}

// Insert appends w. It returns false when the set is full.
func (ws *WaveSet) Insert(w Wave) bool {
	if len(ws.waves) >= MaxWaves {
		return false
	}
	ws.waves = append(ws.waves, w)
	return true
}

// Delete removes wave i. Out of range indices are ignored.
func (ws *WaveSet) Delete(i int) bool {
	if i < 0 || i >= len(ws.waves) {
		return false
	}
	ws.waves = append(ws.waves[:i], ws.waves[i+1:]...)
	return true
}

func (ws *WaveSet) Apply(s metadata.UniformSetter) {
	n := len(ws.waves)
	amplitudes := make([]float32, n)
	directions := make([]mgl32.Vec2, n)
	frequencies := make([]float32, n)
	phases := make([]float32, n)
	spikies := make([]float32, n)
	for i, w := range ws.waves {
		amplitudes[i] = w.Amplitude
		directions[i] = w.Direction
		frequencies[i] = w.Frequency
		phases[i] = w.Phase
		spikies[i] = w.Spikiness
	}
	s.SetUint("num_waves", uint32(n))
	if n == 0 {
		return
	}
	s.SetFloats("wave_amplitudes", amplitudes)
	s.SetVec2s("wave_directions", directions)
	s.SetFloats("wave_frequencies", frequencies)
	s.SetFloats("wave_phases", phases)
	s.SetFloats("wave_spikies", spikies)
}
