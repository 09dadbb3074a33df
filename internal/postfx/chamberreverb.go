package postfx

// ChamberReverb is a Schroeder-style reverb with four parallel comb filters
// summed into two cascaded allpasses, modeling reflections off a garage or
// underpass. Like EchoDelay's slap-back, the reverb tail is audible at idle
// and gets masked as the direct engine note gets louder with RPM, so
// SetRPM trims the wet mix down at high RPM.
type ChamberReverb struct {
	combs   [4]combFilter
	allpass [2]allpassFilter
	baseWet float32
	wet     float32
}

type combFilter struct {
	buf []float32
	pos int
	fb  float32
}

type allpassFilter struct {
	buf []float32
	pos int
	fb  float32
}

// NewChamberReverb creates a reverb effect.
// roomSize: 0..1 controls delay lengths
// feedback: 0..1 controls decay time
// wet: wet/dry mix 0..1
func NewChamberReverb(sampleRate int, roomSize, feedback, wet float32) *ChamberReverb {
	base := int(float32(sampleRate) * roomSize * 0.05)
	if base < 10 {
		base = 10
	}
	fb := clamp(feedback, 0, 0.95)
	clampedWet := clamp(wet, 0, 1)
	r := &ChamberReverb{baseWet: clampedWet, wet: clampedWet}
	combLens := [4]int{base, base * 1117 / 1000, base * 1271 / 1000, base * 1437 / 1000}
	for i := range r.combs {
		r.combs[i] = combFilter{
			buf: make([]float32, combLens[i]),
			fb:  fb,
		}
	}
	apLens := [2]int{base * 347 / 1000, base * 213 / 1000}
	for i := range r.allpass {
		r.allpass[i] = allpassFilter{
			buf: make([]float32, maxInt(apLens[i], 1)),
			fb:  0.5,
		}
	}
	return r
}

// SetRPM masks the reverb tail as the engine gets louder, fading the wet
// mix to a quarter of its idle value by 6000 RPM.
func (r *ChamberReverb) SetRPM(rpm float32) {
	attenuation := float32(1.0) - (rpm/6000)*0.75
	if attenuation < 0.25 {
		attenuation = 0.25
	}
	r.wet = r.baseWet * attenuation
}

func (r *ChamberReverb) Process(l, r2 float32) (float32, float32) {
	mono := (l + r2) * 0.5
	var out float32
	for i := range r.combs {
		out += r.combs[i].process(mono)
	}
	out *= 0.25
	for i := range r.allpass {
		out = r.allpass[i].process(out)
	}
	return l*(1-r.wet) + out*r.wet, r2*(1-r.wet) + out*r.wet
}

func (r *ChamberReverb) Reset() {
	for i := range r.combs {
		for j := range r.combs[i].buf {
			r.combs[i].buf[j] = 0
		}
		r.combs[i].pos = 0
	}
	for i := range r.allpass {
		for j := range r.allpass[i].buf {
			r.allpass[i].buf[j] = 0
		}
		r.allpass[i].pos = 0
	}
	r.wet = r.baseWet
}

func (c *combFilter) process(in float32) float32 {
	out := c.buf[c.pos]
	c.buf[c.pos] = in + out*c.fb
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

func (a *allpassFilter) process(in float32) float32 {
	bufOut := a.buf[a.pos]
	out := -in + bufOut
	a.buf[a.pos] = in + bufOut*a.fb
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
