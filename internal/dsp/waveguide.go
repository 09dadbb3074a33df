package dsp

// WaveguideMaxAmp is the chamber amplitude at which Dampen starts
// squashing a waveguide's output to fight feedback-loop divergence.
const WaveguideMaxAmp = 20.0

// WaveGuide models a one-dimensional acoustic waveguide as two
// counter-propagating delay lines with a reflection coefficient at each
// end. Chamber0 carries signal from the alpha end to the beta end; Chamber1
// carries it back. Alpha may be mutated per-sample by an owner (e.g. a
// valve-modulated Cylinder); Beta is typically fixed at construction.
type WaveGuide struct {
	Chamber0 DelayLine
	Chamber1 DelayLine
	Alpha    float32
	Beta     float32

	c0Out float32
	c1Out float32
}

// NewWaveGuide creates a waveguide with two chambers of the given delay
// (in seconds) and the given reflection coefficients.
func NewWaveGuide(delaySeconds, alpha, beta float32, sampleRate uint32) WaveGuide {
	return WaveGuide{
		Chamber0: NewDelayLine(delaySeconds, sampleRate),
		Chamber1: NewDelayLine(delaySeconds, sampleRate),
		Alpha:    alpha,
		Beta:     beta,
	}
}

// Dampen passes s through unchanged while |s| <= WaveguideMaxAmp, and
// otherwise applies a monotone, C0-continuous squash that asymptotes to
// WaveguideMaxAmp+1, preventing unbounded growth in feedback loops.
func Dampen(s float32) float32 {
	abs := absf(s)
	if abs > WaveguideMaxAmp {
		return signf(s) * (WaveguideMaxAmp + 1.0 - 1.0/(abs-WaveguideMaxAmp+1.0))
	}
	return s
}

// Pop reads the next sample from each chamber, dampens it, and returns the
// alpha-side and beta-side leakage: (c1Out*(1-|alpha|), c0Out*(1-|beta|)).
func (w *WaveGuide) Pop() (outAlpha, outBeta float32) {
	w.c1Out = Dampen(w.Chamber1.Pop())
	w.c0Out = Dampen(w.Chamber0.Pop())
	return w.c1Out * (1.0 - absf(w.Alpha)), w.c0Out * (1.0 - absf(w.Beta))
}

// Push injects x0In at the alpha end and x1In at the beta end, combines
// each with the reflected portion of the other chamber's last output, and
// advances both chambers. Must be called exactly once after each Pop.
func (w *WaveGuide) Push(x0In, x1In float32) {
	c0In := madd(w.c1Out, w.Alpha, x0In)
	c1In := madd(w.c0Out, w.Beta, x1In)
	w.Chamber0.Push(c0In)
	w.Chamber1.Push(c1In)
	w.Chamber0.Advance()
	w.Chamber1.Advance()
}

// Reset zeroes both chambers and the scratch outputs.
func (w *WaveGuide) Reset() {
	w.Chamber0.Reset()
	w.Chamber1.Reset()
	w.c0Out = 0
	w.c1Out = 0
}
