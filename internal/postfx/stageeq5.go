package postfx

import (
	"math"
	"sync/atomic"
)

// StageEQ5 is a 5-band equalizer with runtime-adjustable gains. Unlike a
// generic audio EQ with crossovers fixed at construction, its band edges
// track harmonics of the engine's firing frequency: SetRPM recomputes them
// every frame so the bands keep chasing the same combustion-order content
// as RPM moves, instead of sitting on a fixed Hz grid that drifts out of
// register with the engine note. Gains are stored as bit-cast float32
// atomics so a UI or host goroutine can ride levels without a mutex shared
// with the audio-render goroutine, the one exception to the core's
// no-internal-locking stance.
type StageEQ5 struct {
	gains      [5]atomic.Uint32
	alphas     [4]float32
	lpL        [4]float32
	lpR        [4]float32
	sampleRate float64
	cylinders  float64
}

// NewStageEQ5 creates a 5-band EQ with all gains at unity, for an engine
// with the given number of cylinders. Crossovers start pinned to an idle
// firing frequency; call SetRPM to track the engine from then on.
func NewStageEQ5(sampleRate, cylinders int) *StageEQ5 {
	eq := &StageEQ5{
		sampleRate: float64(sampleRate),
		cylinders:  float64(cylinders),
	}
	for i := range eq.gains {
		eq.gains[i].Store(math.Float32bits(1.0))
	}
	eq.SetRPM(900)
	return eq
}

// SetGain sets the gain for band (0-4). 1.0 = unity, 0.0 = silence, 2.0 = +6dB.
func (eq *StageEQ5) SetGain(band int, gain float32) {
	if band >= 0 && band < 5 {
		eq.gains[band].Store(math.Float32bits(gain))
	}
}

// Gain returns the current gain for band (0-4).
func (eq *StageEQ5) Gain(band int) float32 {
	if band >= 0 && band < 5 {
		return math.Float32frombits(eq.gains[band].Load())
	}
	return 1.0
}

// SetRPM recomputes the four band crossovers as harmonics of the engine's
// firing frequency (firing events per second summed across cylinders), so
// band 0 tracks the fundamental firing pulse and bands 1-3 track its first
// three overtones.
func (eq *StageEQ5) SetRPM(rpm float32) {
	firing := float64(rpm) / 120.0 * eq.cylinders
	if firing < 20 {
		firing = 20
	}
	nyquist := eq.sampleRate / 2
	dt := 1.0 / eq.sampleRate
	for i := range eq.alphas {
		freq := firing * float64(i+1)
		if freq > nyquist*0.95 {
			freq = nyquist * 0.95
		}
		rc := 1.0 / (2.0 * math.Pi * freq)
		eq.alphas[i] = float32(dt / (rc + dt))
	}
}

func (eq *StageEQ5) Process(l, r float32) (float32, float32) {
	var bandL, bandR [5]float32
	remL, remR := l, r
	for i := 0; i < 4; i++ {
		eq.lpL[i] += eq.alphas[i] * (remL - eq.lpL[i])
		eq.lpR[i] += eq.alphas[i] * (remR - eq.lpR[i])
		bandL[i] = eq.lpL[i]
		bandR[i] = eq.lpR[i]
		remL -= bandL[i]
		remR -= bandR[i]
	}
	bandL[4] = remL
	bandR[4] = remR

	var outL, outR float32
	for i := 0; i < 5; i++ {
		g := math.Float32frombits(eq.gains[i].Load())
		outL += bandL[i] * g
		outR += bandR[i] * g
	}
	return outL, outR
}

func (eq *StageEQ5) Reset() {
	for i := range eq.lpL {
		eq.lpL[i] = 0
		eq.lpR[i] = 0
	}
}
