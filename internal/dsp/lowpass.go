package dsp

// LowPassFilter is a one-pole IIR low-pass: y[n] = y[n-1] + alpha*(x[n]-y[n-1]).
type LowPassFilter struct {
	// Delay is 1/cutoff frequency, informational only.
	Delay float32
	Alpha float32
	Last  float32
}

// NewLowPassFilter derives alpha from a cutoff frequency in Hz and the
// sample rate, using alpha = (2*pi*dt*f) / (2*pi*dt*f + 1) with dt = 1/sampleRate.
func NewLowPassFilter(cutoffHz float32, sampleRate uint32) LowPassFilter {
	dt := 1.0 / float32(sampleRate)
	twoPiDtF := TwoPi * dt * cutoffHz
	return LowPassFilter{
		Delay: 1.0 / cutoffHz,
		Alpha: twoPiDtF / (twoPiDtF + 1.0),
	}
}

// Filter advances the filter by one sample and returns the new output.
func (f *LowPassFilter) Filter(sample float32) float32 {
	f.Last = madd(sample-f.Last, f.Alpha, f.Last)
	return f.Last
}

// Reset zeroes the filter's internal state. Cutoff/alpha are left untouched.
func (f *LowPassFilter) Reset() {
	f.Last = 0
}
