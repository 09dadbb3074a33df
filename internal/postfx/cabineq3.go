package postfx

import "math"

// CabinEQ3 is a 3-band equalizer modeling cabin resonance shaping of the
// intake/exhaust mix. The mid band carries most of an engine's audible
// "snarl", so its gain tracks RPM rather than staying fixed like the low
// and high bands.
type CabinEQ3 struct {
	lowGain     float32
	baseMidGain float32
	midGain     float32
	highGain    float32
	lpAlpha     float32
	hpAlpha     float32
	lpL, lpR    float32
	hpL, hpR    float32
}

// NewCabinEQ3 creates a 3-band EQ.
// lowGain, midGain, highGain: gain for each band at idle (1.0 = unity)
// lowFreq: crossover frequency between low and mid bands
// highFreq: crossover frequency between mid and high bands
// Call SetRPM once per frame to let the mid band track engine RPM.
func NewCabinEQ3(sampleRate int, lowGain, midGain, highGain, lowFreq, highFreq float32) *CabinEQ3 {
	lpRC := 1.0 / (2.0 * math.Pi * float64(lowFreq))
	hpRC := 1.0 / (2.0 * math.Pi * float64(highFreq))
	dt := 1.0 / float64(sampleRate)
	return &CabinEQ3{
		lowGain:     lowGain,
		baseMidGain: midGain,
		midGain:     midGain,
		highGain:    highGain,
		lpAlpha:     float32(dt / (lpRC + dt)),
		hpAlpha:     float32(dt / (hpRC + dt)),
	}
}

// SetRPM boosts the mid band proportionally to RPM, capped at double the
// base gain so the snarl doesn't run away at the top of the rev range.
func (eq *CabinEQ3) SetRPM(rpm float32) {
	boost := float32(1.0) + rpm/12000
	if boost > 2.0 {
		boost = 2.0
	}
	eq.midGain = eq.baseMidGain * boost
}

func (eq *CabinEQ3) Process(l, r float32) (float32, float32) {
	eq.lpL += eq.lpAlpha * (l - eq.lpL)
	eq.lpR += eq.lpAlpha * (r - eq.lpR)
	lowL, lowR := eq.lpL, eq.lpR

	eq.hpL += eq.hpAlpha * (l - eq.hpL)
	eq.hpR += eq.hpAlpha * (r - eq.hpR)
	highL := l - eq.hpL
	highR := r - eq.hpR

	midL := l - lowL - highL
	midR := r - lowR - highR

	return lowL*eq.lowGain + midL*eq.midGain + highL*eq.highGain,
		lowR*eq.lowGain + midR*eq.midGain + highR*eq.highGain
}

func (eq *CabinEQ3) Reset() {
	eq.lpL, eq.lpR = 0, 0
	eq.hpL, eq.hpR = 0, 0
	eq.midGain = eq.baseMidGain
}
