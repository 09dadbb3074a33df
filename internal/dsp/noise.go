package dsp

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"
)

// Noise is a pseudo-random float source producing values in [-1, 1]. It
// wraps math/rand/v2's PCG generator: seeded-by-construction, with no
// hidden global state, so two Noise values built from the same seed pair
// always produce the same sequence.
type Noise struct {
	src *rand.PCG
}

// NewNoise seeds a Noise source from two uint64 halves. Use this directly
// in tests and golden-file comparisons, where a fixed seed is required;
// production callers that want nondeterministic noise should call
// NewEntropySeededNoise instead.
func NewNoise(seed1, seed2 uint64) Noise {
	return Noise{src: rand.NewPCG(seed1, seed2)}
}

// NewEntropySeededNoise seeds a Noise source from the OS's entropy source,
// for production callers that don't need reproducible output. If
// crypto/rand is unavailable it falls back to a wall-clock-derived seed
// rather than a fixed one.
func NewEntropySeededNoise() Noise {
	var buf [16]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		now := uint64(time.Now().UnixNano())
		return NewNoise(now, now^0x9e3779b97f4a7c15)
	}
	return NewNoise(binary.LittleEndian.Uint64(buf[0:8]), binary.LittleEndian.Uint64(buf[8:16]))
}

// Step advances the generator and returns the next sample in [-1, 1].
func (n *Noise) Step() float32 {
	u := uint32(n.src.Uint64())
	return float32(u)/(float32(math.MaxUint32)/2.0) - 1.0
}
