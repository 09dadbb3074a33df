package engine

import (
	"math"

	"github.com/nullwave/enginesound/internal/dsp"
)

// Cylinder is one audio cylinder: a piston/ignition oscillator feeding two
// waveguides (to the intake and exhaust collectors) plus a short third
// waveguide, the extractor, between the exhaust waveguide and the exhaust
// collector.
//
//	Labels:                                                     \/ Extractor
//	                   b      a            a      b           a    b
//	(Intake Collector) <==|IV|> (Cylinder) <|EV|==> (Exhaust) <====> (Exhaust collector)
//
//	a   b
//	<===>   - WaveGuide with alpha / beta sides => alpha controls the reflectiveness of that side
//	|IV|    - Intake valve modulation function for this side of the WaveGuide (alpha)
//	|EV|    - Exhaust valve modulation function for this side of the WaveGuide (alpha)
type Cylinder struct {
	// CrankOffset is this cylinder's piston crank offset in [0, 1).
	CrankOffset float32

	ExhaustWaveguide   dsp.WaveGuide
	IntakeWaveguide    dsp.WaveGuide
	ExtractorWaveguide dsp.WaveGuide

	IntakeOpenRefl    float32
	IntakeClosedRefl  float32
	ExhaustOpenRefl   float32
	ExhaustClosedRefl float32

	PistonMotionFactor float32
	IgnitionFactor     float32
	// IgnitionTime is the fraction of a crank cycle the fuel burn takes, in (0, 1].
	IgnitionTime float32

	// CylSound and ExtractorExhaust are running state, zeroed by Reset.
	CylSound         float32
	ExtractorExhaust float32
}

// pop computes this cylinder's excitation for the current crank position and
// returns (intake leak, extractor leak, cylinder excitation) for the
// engine-level mix. crankPos, exhaustCollector, intakeValveShift and
// exhaustValveShift all come from the owning Engine.
func (c *Cylinder) pop(crankPos, exhaustCollector, intakeValveShift, exhaustValveShift float32) (intake, extractor, cylSound float32) {
	crank := fract(crankPos + c.CrankOffset)

	c.CylSound = dsp.Madd(pistonMotion(crank), c.PistonMotionFactor, fuelIgnition(crank, c.IgnitionTime)*c.IgnitionFactor)

	exValve := exhaustValve(fract(crank + exhaustValveShift))
	inValve := intakeValve(fract(crank + intakeValveShift))

	c.ExhaustWaveguide.Alpha = dsp.Madd(c.ExhaustOpenRefl-c.ExhaustClosedRefl, exValve, c.ExhaustClosedRefl)
	c.IntakeWaveguide.Alpha = dsp.Madd(c.IntakeOpenRefl-c.IntakeClosedRefl, inValve, c.IntakeClosedRefl)

	_, exBeta := c.ExhaustWaveguide.Pop()
	_, inBeta := c.IntakeWaveguide.Pop()

	extractorAlpha, extractorBeta := c.ExtractorWaveguide.Pop()
	c.ExtractorExhaust = extractorAlpha
	c.ExtractorWaveguide.Push(exBeta, exhaustCollector)

	return inBeta, extractorBeta, c.CylSound
}

// push injects this sample's intake mix into the intake waveguide and the
// cylinder's own excitation into the exhaust waveguide. Must be called
// after pop, once all cylinders have contributed to the engine's intake
// collector.
func (c *Cylinder) push(intake float32) {
	exIn := (1.0 - dsp.Absf(c.ExhaustWaveguide.Alpha)) * c.CylSound * 0.5
	c.ExhaustWaveguide.Push(exIn, c.ExtractorExhaust)

	inIn := (1.0 - dsp.Absf(c.IntakeWaveguide.Alpha)) * c.CylSound * 0.5
	c.IntakeWaveguide.Push(inIn, intake)
}

// reset zeroes every waveguide chamber and this cylinder's running state.
func (c *Cylinder) reset() {
	c.ExhaustWaveguide.Reset()
	c.IntakeWaveguide.Reset()
	c.ExtractorWaveguide.Reset()
	c.CylSound = 0
	c.ExtractorExhaust = 0
}

func pistonMotion(crank float32) float32 {
	return dsp.Cosf(crank * dsp.FourPi)
}

// fuelIgnition is nonzero only for crank in (0.5, 0.5+ignitionTime/2).
func fuelIgnition(crank, ignitionTime float32) float32 {
	if crank > 0.5 && crank < 0.5+ignitionTime/2.0 {
		return dsp.Sinf(dsp.TwoPi * ((crank - 0.5) / ignitionTime))
	}
	return 0
}

// intakeValve is nonzero only for crank in (0, 0.25).
func intakeValve(crank float32) float32 {
	if crank > 0 && crank < 0.25 {
		return dsp.Sinf(crank * dsp.FourPi)
	}
	return 0
}

// exhaustValve is nonzero only for crank in (0.75, 1).
func exhaustValve(crank float32) float32 {
	if crank > 0.75 && crank < 1.0 {
		return dsp.Sinf(-(crank * dsp.FourPi))
	}
	return 0
}

func fract(x float32) float32 {
	_, f := math.Modf(float64(x))
	if f < 0 {
		f += 1
	}
	return float32(f)
}
