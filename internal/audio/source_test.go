package audio

import (
	"testing"

	"github.com/nullwave/enginesound/internal/postfx"
)

type counterGenerator struct {
	next float32
}

func (c *counterGenerator) Frame() float32 {
	c.next += 1
	return c.next
}

// rpmGenerator emits a constant sample and reports a fixed RPM, so
// GeneratorSource's RPM-forwarding can be exercised without a real engine.
type rpmGenerator struct {
	sample float32
	rpm    float32
}

func (g *rpmGenerator) Frame() float32 { return g.sample }
func (g *rpmGenerator) RPM() float32   { return g.rpm }

// S9 — audio sink adapter duplicates mono to stereo.
func TestGeneratorSourceDuplicatesMonoToStereo(t *testing.T) {
	src := NewGeneratorSource(&counterGenerator{}, nil)
	dst := make([]float32, 2*16)
	src.Process(dst)

	for i := 0; i < len(dst); i += 2 {
		if dst[i] != dst[i+1] {
			t.Fatalf("frame %d: l=%v r=%v, want equal with no post-chain", i/2, dst[i], dst[i+1])
		}
	}
}

func TestGeneratorSourceAdvancesOncePerFramePair(t *testing.T) {
	gen := &counterGenerator{}
	src := NewGeneratorSource(gen, nil)
	dst := make([]float32, 2*4)
	src.Process(dst)

	want := []float32{1, 1, 2, 2, 3, 3, 4, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestGeneratorSourceForwardsRPMToChain(t *testing.T) {
	runAt := func(rpm float32) float32 {
		chain := postfx.NewChain(postfx.NewOverdrive(44100, 0.3, 1.0, 0))
		gen := &rpmGenerator{sample: 0.3, rpm: rpm}
		src := NewGeneratorSource(gen, chain)
		dst := make([]float32, 2)
		src.Process(dst)
		return dst[0]
	}

	idle := runAt(900)
	redline := runAt(6900)
	if redline <= idle {
		t.Fatalf("expected higher-RPM overdrive output (%v) to exceed idle output (%v)", redline, idle)
	}
}

func TestGeneratorSourceReportsGeneratorRPM(t *testing.T) {
	gen := &rpmGenerator{rpm: 6900}
	src := NewGeneratorSource(gen, nil)
	if src.RPM() != 6900 {
		t.Fatalf("RPM() = %v, want 6900", src.RPM())
	}
}

func TestGeneratorSourceRPMIsZeroWithoutReporter(t *testing.T) {
	src := NewGeneratorSource(&counterGenerator{}, nil)
	if got := src.RPM(); got != 0 {
		t.Fatalf("RPM() = %v, want 0 for a generator that doesn't report RPM", got)
	}
}
