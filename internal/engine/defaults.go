package engine

import "github.com/nullwave/enginesound/internal/dsp"

// cylinderSpec bundles the literal numbers for one cylinder of the default
// V8 configuration, keeping NewV8 itself readable.
type cylinderSpec struct {
	crankOffset                                      float32
	exhaustDelay, exhaustAlpha, exhaustBeta          float32
	intakeDelay, intakeAlpha, intakeBeta             float32
	extractorDelay, extractorAlpha, extractorBeta    float32
	intakeOpenRefl, intakeClosedRefl                 float32
	exhaustOpenRefl, exhaustClosedRefl               float32
	pistonMotionFactor, ignitionFactor, ignitionTime float32
}

func newCylinder(spec cylinderSpec, sampleRate uint32) Cylinder {
	return Cylinder{
		CrankOffset:        spec.crankOffset,
		ExhaustWaveguide:   dsp.NewWaveGuide(spec.exhaustDelay, spec.exhaustAlpha, spec.exhaustBeta, sampleRate),
		IntakeWaveguide:    dsp.NewWaveGuide(spec.intakeDelay, spec.intakeAlpha, spec.intakeBeta, sampleRate),
		ExtractorWaveguide: dsp.NewWaveGuide(spec.extractorDelay, spec.extractorAlpha, spec.extractorBeta, sampleRate),
		IntakeOpenRefl:     spec.intakeOpenRefl,
		IntakeClosedRefl:   spec.intakeClosedRefl,
		ExhaustOpenRefl:    spec.exhaustOpenRefl,
		ExhaustClosedRefl:  spec.exhaustClosedRefl,
		PistonMotionFactor: spec.pistonMotionFactor,
		IgnitionFactor:     spec.ignitionFactor,
		IgnitionTime:       spec.ignitionTime,
	}
}

// NewV8 returns a preset V8-like 8-cylinder engine configuration, carried
// over unchanged from the original engine-sound project's default V8
// preset. The two noise sources are seeded from the OS's entropy source so
// that repeated runs of the CLI don't produce bit-identical engine noise;
// callers that need reproducible output (tests, golden-file comparisons)
// should overwrite Engine.IntakeNoise/CrankshaftNoise with dsp.NewNoise and
// a fixed seed after construction.
func NewV8(sampleRate uint32) *Engine {
	const (
		exhaustDelay   = 0.0009583333
		intakeDelay    = 0.00014583333
		extractorDelay = 0.0005833333
		exhaustBeta    = 0.06
		intakeBeta     = -0.7575827
		extractorAlpha = 0.0

		intakeOpenRefl    = 0.00607419
		intakeClosedRefl  = 1.0
		exhaustOpenRefl   = -0.00070154667
		exhaustClosedRefl = 0.7145016

		pistonMotionFactor = 2.5594783
		ignitionFactor     = 2.5645223
		ignitionTime       = 0.102849334

		extractorBeta = -0.00081294775
	)

	specs := []cylinderSpec{
		{crankOffset: 0.0, exhaustAlpha: 0.7145016},
		{crankOffset: 0.5, exhaustAlpha: 0.7145016, intakeAlpha: 1.0},
		{crankOffset: 0.6666667, exhaustAlpha: 0.47295976, intakeAlpha: 1.0},
		{crankOffset: 0.75, exhaustAlpha: 0.010738671, intakeAlpha: 1.0},
		{crankOffset: 0.8, exhaustAlpha: 0.070256054, intakeAlpha: 1.0},
		{crankOffset: 0.8333333, exhaustAlpha: 0.2522802, intakeAlpha: 1.0},
		{crankOffset: 0.85714287, exhaustAlpha: 0.43368497, intakeAlpha: 1.0},
		{crankOffset: 0.875, exhaustAlpha: 0.587092, intakeAlpha: 1.0},
	}
	// cylinder 0 has a distinct intake alpha in the original source.
	specs[0].intakeAlpha = 0.2054379

	cylinders := make([]Cylinder, len(specs))
	for i, s := range specs {
		s.exhaustDelay = exhaustDelay
		s.exhaustBeta = exhaustBeta
		s.intakeDelay = intakeDelay
		s.intakeBeta = intakeBeta
		s.extractorDelay = extractorDelay
		s.extractorAlpha = extractorAlpha
		s.extractorBeta = extractorBeta
		s.intakeOpenRefl = intakeOpenRefl
		s.intakeClosedRefl = intakeClosedRefl
		s.exhaustOpenRefl = exhaustOpenRefl
		s.exhaustClosedRefl = exhaustClosedRefl
		s.pistonMotionFactor = pistonMotionFactor
		s.ignitionFactor = ignitionFactor
		s.ignitionTime = ignitionTime
		cylinders[i] = newCylinder(s, sampleRate)
	}

	mufflerElementDelays := []float32{0.00014583333, 0.0001875, 0.00020833334, 0.00025}
	mufflerElements := make([]dsp.WaveGuide, len(mufflerElementDelays))
	for i, d := range mufflerElementDelays {
		mufflerElements[i] = dsp.NewWaveGuide(d, 0.0, -0.14208126, sampleRate)
	}

	return &Engine{
		RPM:                    883.1155,
		IntakeVolume:           0.32493597,
		ExhaustVolume:          0.63871837,
		EngineVibrationsVolume: 0.036345694,
		Cylinders:              cylinders,
		IntakeNoise:            dsp.NewEntropySeededNoise(),
		IntakeNoiseFactor:      1.3716942,
		IntakeNoiseLP:          dsp.NewLowPassFilter(1.0/0.0005277371, sampleRate),
		EngineVibrationFilter:  dsp.NewLowPassFilter(1.0/0.010829452, sampleRate),
		Muffler: Muffler{
			StraightPipe:    dsp.NewWaveGuide(0.0064375, 0.0063244104, 0.0016502142, sampleRate),
			MufflerElements: mufflerElements,
		},
		IntakeValveShift:        -0.041683555,
		ExhaustValveShift:       -0.0046506226,
		CrankshaftFluctuation:   0.4000154,
		CrankshaftFluctuationLP: dsp.NewLowPassFilter(1.0/0.086017124, sampleRate),
		CrankshaftNoise:         dsp.NewEntropySeededNoise(),
	}
}
