// Package engine implements the per-sample combustion-engine model: a
// fixed set of Cylinders feeding a shared Muffler, driven by a crankshaft
// position that the owning Generator advances once per output sample.
package engine

import "github.com/nullwave/enginesound/internal/dsp"

// Engine is the container of cylinders, muffler, noise sources, filters and
// running state that together produce one engine-sound sample per Step.
type Engine struct {
	RPM                    float32
	IntakeVolume           float32
	ExhaustVolume          float32
	EngineVibrationsVolume float32

	Cylinders []Cylinder
	Muffler   Muffler

	IntakeNoise       dsp.Noise
	IntakeNoiseFactor float32
	IntakeNoiseLP     dsp.LowPassFilter

	EngineVibrationFilter dsp.LowPassFilter

	// IntakeValveShift and ExhaustValveShift are dimensionless valve timing
	// offsets in (-0.5, 0.5), applied modulo 1 to crank phase.
	IntakeValveShift  float32
	ExhaustValveShift float32

	CrankshaftFluctuation   float32
	CrankshaftFluctuationLP dsp.LowPassFilter
	CrankshaftNoise         dsp.Noise

	// CrankshaftPos is running state in [0, 1), advanced by the Generator.
	CrankshaftPos    float32
	ExhaustCollector float32
	IntakeCollector  float32
}

// Step advances every cylinder and the muffler by one sample and returns
// the three sub-mix signals (intake, engine vibration, exhaust) that the
// Generator combines into one output sample. Every cylinder and the muffler
// must finish popping the shared collectors from the previous sample before
// any of them push this sample's contribution back in, or the waveguide
// network sees its own future state.
func (e *Engine) Step() (intake, vibration, exhaust float32) {
	intakeNoise := e.IntakeNoiseLP.Filter(e.IntakeNoise.Step()) * e.IntakeNoiseFactor

	numCyl := float32(len(e.Cylinders))
	lastExhaustCollector := e.ExhaustCollector / numCyl
	e.ExhaustCollector = 0
	e.IntakeCollector = 0

	crankshaftFluctuationOffset := e.CrankshaftFluctuationLP.Filter(e.CrankshaftNoise.Step())
	effectiveCrankPos := dsp.Madd(e.CrankshaftFluctuation, crankshaftFluctuationOffset, e.CrankshaftPos)

	var engineVibration float32
	for i := range e.Cylinders {
		cylIntake, cylExhaust, cylVib := e.Cylinders[i].pop(effectiveCrankPos, lastExhaustCollector, e.IntakeValveShift, e.ExhaustValveShift)
		e.IntakeCollector += cylIntake
		e.ExhaustCollector += cylExhaust
		engineVibration += cylVib
	}

	straightPipe, elementSum := e.Muffler.pop()

	for i := range e.Cylinders {
		cyl := &e.Cylinders[i]
		intakeInjection := dsp.Madd(intakeNoise, intakeValve(fract(e.CrankshaftPos+cyl.CrankOffset)), e.IntakeCollector/numCyl)
		cyl.push(intakeInjection)
	}

	e.Muffler.push(e.ExhaustCollector, elementSum[0], straightPipe[1])
	e.ExhaustCollector += straightPipe[0]

	engineVibration = e.EngineVibrationFilter.Filter(engineVibration)

	return e.IntakeCollector, engineVibration, elementSum[1]
}

// Reset zeroes every delay line, both collectors, and all cylinder running
// state. Filter `Last` states and CrankshaftPos are left untouched — they
// converge or remain valid quickly either way.
func (e *Engine) Reset() {
	for i := range e.Cylinders {
		e.Cylinders[i].reset()
	}
	e.Muffler.reset()
	e.ExhaustCollector = 0
	e.IntakeCollector = 0
}
