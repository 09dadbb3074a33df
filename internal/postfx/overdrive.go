package postfx

import "math"

// Overdrive waveshapes a stereo signal with pre/post gain and an optional
// low-pass, modeling an exhaust note driven into speaker or cabin
// saturation at high RPM. Unlike a static guitar-pedal drive stage, its
// pre-gain grows with engine RPM above idle: a V8 idling in a garage stays
// clean, the same engine at redline breaks up.
type Overdrive struct {
	idleGain   float32
	idleRPM    float32
	driveSlope float32 // additional pre-gain per RPM above idleRPM
	preGain    float32
	postGain   float32
	lpfAlpha   float32
	lpfL       float32
	lpfR       float32
}

// NewOverdrive creates an overdrive stage.
// idleGain: pre-gain applied at or below idle (higher = more saturation)
// postGain: output gain
// lpfCutoff: post low-pass cutoff in Hz (0 = no filter)
// Call SetRPM once per frame to drive the saturation amount from the engine.
func NewOverdrive(sampleRate int, idleGain, postGain, lpfCutoff float32) *Overdrive {
	o := &Overdrive{
		idleGain: idleGain,
		idleRPM:  900,
		// roughly triples the drive by 6000 RPM over idle.
		driveSlope: idleGain * 2 / 6000,
		preGain:    idleGain,
		postGain:   postGain,
	}
	if lpfCutoff > 0 && lpfCutoff < float32(sampleRate)/2 {
		rc := 1.0 / (2.0 * math.Pi * float64(lpfCutoff))
		dt := 1.0 / float64(sampleRate)
		o.lpfAlpha = float32(dt / (rc + dt))
	}
	return o
}

// SetRPM updates the pre-gain from the engine's current RPM. Safe to call
// every frame; it allocates nothing and touches no shared state.
func (o *Overdrive) SetRPM(rpm float32) {
	above := rpm - o.idleRPM
	if above < 0 {
		above = 0
	}
	o.preGain = o.idleGain + o.driveSlope*above
}

func (o *Overdrive) Process(l, r float32) (float32, float32) {
	l *= o.preGain
	r *= o.preGain
	l = float32(math.Tanh(float64(l)))
	r = float32(math.Tanh(float64(r)))
	l *= o.postGain
	r *= o.postGain
	if o.lpfAlpha > 0 {
		o.lpfL += o.lpfAlpha * (l - o.lpfL)
		o.lpfR += o.lpfAlpha * (r - o.lpfR)
		l = o.lpfL
		r = o.lpfR
	}
	return l, r
}

func (o *Overdrive) Reset() {
	o.lpfL = 0
	o.lpfR = 0
	o.preGain = o.idleGain
}
