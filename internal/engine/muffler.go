package engine

import "github.com/nullwave/enginesound/internal/dsp"

// Muffler aggregates one "straight pipe" waveguide carrying the bulk of the
// exhaust collector's energy and a fixed number of parallel muffler-element
// waveguides that shape the timbre of what leaks past it.
type Muffler struct {
	StraightPipe    dsp.WaveGuide
	MufflerElements []dsp.WaveGuide
}

// pop reads one sample from the straight pipe and sums the leakage across
// every muffler element, returning (straightPipeLeak, elementLeakSum).
func (m *Muffler) pop() (straightPipe, elementSum [2]float32) {
	straightPipe[0], straightPipe[1] = m.StraightPipe.Pop()
	for i := range m.MufflerElements {
		a, b := m.MufflerElements[i].Pop()
		elementSum[0] += a
		elementSum[1] += b
	}
	return straightPipe, elementSum
}

// push feeds the engine's exhaust collector and the summed alpha leakage of
// the muffler elements into the straight pipe, then splits the straight
// pipe's beta leakage evenly across every muffler element.
func (m *Muffler) push(exhaustCollector, elementAlphaSum float32, straightPipeBeta float32) {
	m.StraightPipe.Push(exhaustCollector, elementAlphaSum)
	n := float32(len(m.MufflerElements))
	for i := range m.MufflerElements {
		m.MufflerElements[i].Push(straightPipeBeta/n, 0)
	}
}

func (m *Muffler) reset() {
	m.StraightPipe.Reset()
	for i := range m.MufflerElements {
		m.MufflerElements[i].Reset()
	}
}
