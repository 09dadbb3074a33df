package audio

import "github.com/nullwave/enginesound/internal/postfx"

// FrameGenerator is the minimal surface GeneratorSource needs from a
// synthesis core: one mono float32 sample per call.
type FrameGenerator interface {
	Frame() float32
}

// RPMReporter is implemented by a FrameGenerator that can report the
// engine's current RPM, letting GeneratorSource drive an RPM-modulated
// post-effect chain without the generator and the chain knowing about each
// other directly.
type RPMReporter interface {
	RPM() float32
}

// GeneratorSource adapts a mono FrameGenerator to the SampleSource
// interface expected by Player/StreamReader, duplicating each mono frame
// to both channels and optionally running it through a post-effect chain.
type GeneratorSource struct {
	gen   FrameGenerator
	chain *postfx.Chain
}

// NewGeneratorSource wraps gen. chain may be nil, in which case frames pass
// through unmodified.
func NewGeneratorSource(gen FrameGenerator, chain *postfx.Chain) *GeneratorSource {
	return &GeneratorSource{gen: gen, chain: chain}
}

// Process fills dst (stereo-interleaved, even length) with duplicated mono
// frames pulled one at a time from the wrapped generator. If gen reports
// RPM and a chain is present, the chain is kept in sync every frame.
func (s *GeneratorSource) Process(dst []float32) {
	reporter, tracksRPM := s.gen.(RPMReporter)
	for i := 0; i+1 < len(dst); i += 2 {
		sample := s.gen.Frame()
		l, r := sample, sample
		if s.chain != nil {
			if tracksRPM {
				s.chain.SetRPM(reporter.RPM())
			}
			l, r = s.chain.Process(l, r)
		}
		dst[i] = l
		dst[i+1] = r
	}
}

// RPM reports the wrapped generator's current RPM if it implements
// RPMReporter, and zero otherwise. Satisfies audio.RPMReporter so a Player
// can surface it to a host without depending on enginesound directly.
func (s *GeneratorSource) RPM() float32 {
	if reporter, ok := s.gen.(RPMReporter); ok {
		return reporter.RPM()
	}
	return 0
}
