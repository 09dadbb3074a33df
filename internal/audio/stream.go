package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal when playback has ended.
// When Finished returns true, the stream will return io.EOF on the next Read.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

type StreamReader struct {
	mu        sync.Mutex
	source    SampleSource
	buf       []float32
	clipCount uint64
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		v := r.buf[i]
		if v > 1.0 || v < -1.0 {
			r.clipCount++
		}
		u := math.Float32bits(v)
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	n := frames * 8
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}
	return n, nil
}

// ClipCount returns how many output samples have exceeded the [-1, 1]
// range since the reader was created, a sign that an overdriven
// post-effect chain needs taming.
func (r *StreamReader) ClipCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clipCount
}

// RPM reports the wrapped source's current engine RPM if it implements
// RPMReporter, and zero otherwise.
func (r *StreamReader) RPM() float32 {
	if rp, ok := r.source.(RPMReporter); ok {
		return rp.RPM()
	}
	return 0
}

func (r *StreamReader) Close() error { return nil }

type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
	stream *StreamReader
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioContextErr  error
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioContextErr != nil {
		return nil, audioContextErr
	}
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{
		player: pl,
		reader: reader,
		stream: reader,
	}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }
func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position returns the current playback position (what the listener actually hears).
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

// ClipCount returns how many output samples have exceeded the [-1, 1]
// range since playback started, forwarded from the underlying
// StreamReader so a host can warn about an overdriven post-effect chain.
func (p *Player) ClipCount() uint64 {
	return p.stream.ClipCount()
}

// RPM reports the underlying source's current engine RPM, if it implements
// RPMReporter, and zero otherwise. Lets a host surface a live status line
// without depending on the enginesound package directly.
func (p *Player) RPM() float32 {
	return p.stream.RPM()
}

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
