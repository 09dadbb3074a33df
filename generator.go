// Package enginesound implements a procedural engine-sound synthesis core:
// a digital waveguide network driven by a crankshaft position, producing one
// monaural float32 sample per call to Frame.
package enginesound

import (
	"github.com/nullwave/enginesound/internal/dsp"
	"github.com/nullwave/enginesound/internal/engine"
)

// Generator is the top-level synthesis entity: it owns an Engine, a
// DC-removal filter, and a master volume, and produces one output sample
// per Frame call.
type Generator struct {
	Engine *engine.Engine
	dcLP   dsp.LowPassFilter

	// Volume is the master gain applied after the sub-mix. Exported for
	// live tuning by the host; the Generator performs no synchronization
	// of its own, the same way Engine's fields are synchronized externally.
	Volume float32

	samplesPerSecond uint32
}

// NewGenerator wraps an already-constructed Engine and DC-removal filter.
// The caller owns sizing the filter's cutoff to samplesPerSecond.
func NewGenerator(samplesPerSecond uint32, eng *engine.Engine, dcLP dsp.LowPassFilter) *Generator {
	return &Generator{
		Engine:           eng,
		dcLP:             dcLP,
		Volume:           1.0,
		samplesPerSecond: samplesPerSecond,
	}
}

// Frame advances the crankshaft by one sample, steps the engine, mixes its
// three sub-signals, and returns the DC-blocked, volume-scaled result.
func (g *Generator) Frame() float32 {
	revsPerSample := g.Engine.RPM / (float32(g.samplesPerSecond) * 120.0)
	g.Engine.CrankshaftPos = fract(g.Engine.CrankshaftPos + revsPerSample)

	intake, vibration, exhaust := g.Engine.Step()

	mixed := (exhaust*g.Engine.ExhaustVolume + intake*g.Engine.IntakeVolume + vibration*g.Engine.EngineVibrationsVolume) * g.Volume

	return mixed - g.dcLP.Filter(mixed)
}

// Reset zeroes the engine's delay lines and running state. The DC filter's
// last output and the crankshaft position are left untouched.
func (g *Generator) Reset() {
	g.Engine.Reset()
}

func fract(x float32) float32 {
	f := x - float32(int(x))
	if f < 0 {
		f += 1
	}
	return f
}
