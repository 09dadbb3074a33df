// Package dsp provides the stateful, allocation-free signal primitives the
// engine-sound synthesis core is built from: circular buffers, delay lines,
// a one-pole low-pass filter, a seeded noise source, and a bidirectional
// digital waveguide. Every type here is total and single-threaded; none of
// them allocate once constructed, and none import anything outside the
// standard library (see DESIGN.md for why).
package dsp

// LoopBuffer is a fixed-length circular buffer with read-one-ahead
// semantics: Pop reads the slot one past the write position. With one
// Pop, Push, Advance per step, the value popped at step t is the value
// pushed at step t-(len-1), or at step t-1 for a one-sample buffer.
type LoopBuffer struct {
	// Delay is the buffer length expressed in seconds, informational only.
	Delay float32
	data  []float32
	pos   int
}

// NewLoopBuffer allocates a buffer of the given length in samples. Length is
// clamped to at least 1 so Pop/Push never index out of range.
func NewLoopBuffer(lengthInSamples int, sampleRate uint32) LoopBuffer {
	if lengthInSamples < 1 {
		lengthInSamples = 1
	}
	return LoopBuffer{
		Delay: float32(lengthInSamples) / float32(sampleRate),
		data:  make([]float32, lengthInSamples),
	}
}

// Push sets the value at the current position. Must be followed by Advance
// before the next Pop.
func (b *LoopBuffer) Push(value float32) {
	b.data[b.pos%len(b.data)] = value
}

// Pop returns the value stored one slot past the current write position,
// i.e. the value pushed len(b.data)-1 Advances ago (one Advance ago when
// the length is 1).
func (b *LoopBuffer) Pop() float32 {
	return b.data[(b.pos+1)%len(b.data)]
}

// Advance moves the write position forward by one sample.
func (b *LoopBuffer) Advance() {
	b.pos++
}

// Reset zeroes every stored sample without changing length or position.
func (b *LoopBuffer) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Len returns the buffer length in samples.
func (b *LoopBuffer) Len() int {
	return len(b.data)
}
