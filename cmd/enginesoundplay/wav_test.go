package main

import (
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nullwave/enginesound"
	"github.com/nullwave/enginesound/internal/dsp"
	"github.com/nullwave/enginesound/internal/engine"
	"github.com/nullwave/enginesound/internal/throttle"
)

func TestEncodeWAVFloat32LEHeader(t *testing.T) {
	samples := []float32{0.5, -0.5, 1.0, -1.0}
	data := encodeWAVFloat32LE(samples, 42000, 2)

	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "fmt ", string(data[12:16]))
	require.Equal(t, "data", string(data[36:40]))

	channels := binary.LittleEndian.Uint16(data[22:24])
	require.Equal(t, uint16(2), channels)

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	require.Equal(t, uint32(42000), sampleRate)

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	require.Equal(t, uint32(len(samples)*4), dataSize)
	require.Len(t, data, 44+len(samples)*4)
}

func TestDrivenGeneratorAppliesThrottleEachFrame(t *testing.T) {
	const sampleRate = 42000
	eng := engine.NewV8(sampleRate)
	eng.RPM = 0
	dcLP := dsp.NewLowPassFilter(dcFilterCutoffHz, sampleRate)
	gen := enginesound.NewGenerator(sampleRate, eng, dcLP)

	prog, err := throttle.Parse(strings.NewReader("hold 5000 1s\n"))
	require.NoError(t, err)

	d := &drivenGenerator{gen: gen, player: prog.NewPlayer(), tick: time.Second / sampleRate}
	d.Frame()

	require.Equal(t, float32(5000), gen.Engine.RPM)
}
