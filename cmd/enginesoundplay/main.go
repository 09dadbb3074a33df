// Command enginesoundplay drives a procedural V8 engine-sound Generator,
// optionally under a throttle program and a post-effect chain, either to
// live playback or to a WAV file.
package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/nullwave/enginesound"
	"github.com/nullwave/enginesound/internal/audio"
	"github.com/nullwave/enginesound/internal/dsp"
	"github.com/nullwave/enginesound/internal/engine"
	"github.com/nullwave/enginesound/internal/postfx"
	"github.com/nullwave/enginesound/internal/throttle"
)

// dcFilterCutoffHz matches the original V8 preset's DC-blocking cutoff.
const dcFilterCutoffHz = 10.0

// CLI describes the command's flags.
type CLI struct {
	SampleRate int           `help:"output sample rate in Hz" default:"42000"`
	RPM        float64       `help:"initial engine RPM" default:"883.1155"`
	Volume     float64       `help:"master volume scalar" default:"1.0"`
	Throttle   string        `help:"path to a throttle program file" optional:""`
	Output     string        `help:"write WAV output to this path instead of playing live" optional:""`
	Duration   time.Duration `help:"render/playback duration" default:"10s"`
	PostChain  bool          `help:"apply the default post-effect chain (overdrive, cabin EQ, echo, reverb, leveler)" default:"false"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("enginesoundplay"),
		kong.Description("Play or render a procedural V8 engine sound"),
		kong.UsageOnError(),
	)

	logger := charmlog.New(os.Stderr)
	logger.Info("starting", "sampleRate", cli.SampleRate, "rpm", cli.RPM, "duration", cli.Duration)

	eng := engine.NewV8(uint32(cli.SampleRate))
	eng.RPM = float32(cli.RPM)
	dcLP := dsp.NewLowPassFilter(dcFilterCutoffHz, uint32(cli.SampleRate))
	gen := enginesound.NewGenerator(uint32(cli.SampleRate), eng, dcLP)
	gen.Volume = float32(cli.Volume)

	var player *throttle.Player
	if cli.Throttle != "" {
		f, err := os.Open(cli.Throttle)
		if err != nil {
			logger.Fatal("opening throttle program", "err", err)
		}
		prog, err := throttle.Parse(f)
		f.Close()
		if err != nil {
			logger.Fatal("parsing throttle program", "err", err)
		}
		player = prog.NewPlayer()
		logger.Info("loaded throttle program", "segments", len(prog.Segments), "loop", prog.Loop)
	}

	var chain *postfx.Chain
	if cli.PostChain {
		chain = defaultPostChain(cli.SampleRate, len(eng.Cylinders))
		logger.Info("post-effect chain enabled")
	}

	frameTick := time.Second / time.Duration(cli.SampleRate)
	driven := drivenGenerator{gen: gen, player: player, tick: frameTick}

	if cli.Output != "" {
		renderToFile(&driven, chain, cli.SampleRate, cli.Duration, cli.Output, logger)
		return
	}

	playLive(&driven, chain, cli.SampleRate, cli.Duration, logger)
}

// drivenGenerator wraps a Generator and, if present, a throttle Player that
// overwrites Engine.RPM once per frame before the frame is rendered.
type drivenGenerator struct {
	gen    *enginesound.Generator
	player *throttle.Player
	tick   time.Duration
}

func (d *drivenGenerator) Frame() float32 {
	if d.player != nil {
		d.gen.Engine.RPM = float32(d.player.Advance(d.tick))
	}
	return d.gen.Frame()
}

// RPM reports the engine's current RPM, after any throttle-player override
// for this frame, so a post-effect chain or a host status line can read it
// without reaching into the wrapped Generator directly.
func (d *drivenGenerator) RPM() float32 {
	return d.gen.Engine.RPM
}

func renderToFile(gen *drivenGenerator, chain *postfx.Chain, sampleRate int, duration time.Duration, path string, logger *charmlog.Logger) {
	frames := int(duration.Seconds() * float64(sampleRate))
	samples := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		mono := gen.Frame()
		l, r := mono, mono
		if chain != nil {
			chain.SetRPM(gen.RPM())
			l, r = chain.Process(l, r)
		}
		samples[i*2] = l
		samples[i*2+1] = r
	}
	data := encodeWAVFloat32LE(samples, sampleRate, 2)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Fatal("writing WAV output", "err", err)
	}
	logger.Info("wrote WAV file", "path", path, "frames", frames)
}

func playLive(gen *drivenGenerator, chain *postfx.Chain, sampleRate int, duration time.Duration, logger *charmlog.Logger) {
	source := audio.NewGeneratorSource(gen, chain)
	pl, err := audio.NewPlayer(sampleRate, source)
	if err != nil {
		logger.Fatal("opening audio player", "err", err)
	}
	pl.Play()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	<-ctx.Done()

	if clips := pl.ClipCount(); clips > 0 {
		logger.Error("post-effect chain clipped", "samples", clips)
	}

	if err := pl.Stop(); err != nil {
		logger.Error("stopping audio player", "err", err)
	}
}

func defaultPostChain(sampleRate, cylinders int) *postfx.Chain {
	return postfx.NewChain(
		postfx.NewOverdrive(sampleRate, 2.0, 0.8, 10000),
		postfx.NewCabinEQ3(sampleRate, 1.1, 1.0, 0.9, 300, 3000),
		postfx.NewStageEQ5(sampleRate, cylinders),
		postfx.NewEchoDelay(sampleRate, 25, 0.3, 0.15, 0.2),
		postfx.NewChamberReverb(sampleRate, 0.3, 0.5, 0.15),
		postfx.NewLeveler(sampleRate, -12, 3, 5, 80, 2),
	)
}
