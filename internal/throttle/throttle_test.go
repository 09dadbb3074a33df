package throttle

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRejectsUnknownVerb(t *testing.T) {
	_, err := Parse(strings.NewReader("spin 1000 1s\n"))
	require.Error(t, err)
}

func TestParseRejectsBadDuration(t *testing.T) {
	_, err := Parse(strings.NewReader("hold 1000 banana\n"))
	require.Error(t, err)
}

func TestParseRejectsEmptyProgram(t *testing.T) {
	_, err := Parse(strings.NewReader("# just a comment\n\n"))
	require.Error(t, err)
}

func TestParseIgnoresCommentsAndBlankLines(t *testing.T) {
	prog, err := Parse(strings.NewReader("# idle\nhold 800 1s\n\n# rev\nramp 4000 2s\n"))
	require.NoError(t, err)
	require.Len(t, prog.Segments, 2)
}

func TestParseLoopFlag(t *testing.T) {
	prog, err := Parse(strings.NewReader("loop\nhold 800 1s\n"))
	require.NoError(t, err)
	require.True(t, prog.Loop)
}

// S7 — throttle program compiles and drives RPM.
func TestThrottleProgramDrivesRPM(t *testing.T) {
	prog, err := Parse(strings.NewReader("hold 800 1s\nramp 4000 2s\nhold 4000 1s\n"))
	require.NoError(t, err)
	require.Len(t, prog.Segments, 3)

	player := prog.NewPlayer()
	const tick = 10 * time.Millisecond

	// During the first hold (ends at 1s), RPM stays at 800.
	for i := 0; i < 99; i++ {
		got := player.Advance(tick)
		require.Equalf(t, 800.0, got, "tick %d during first hold", i)
	}

	// Cross the remainder of the hold and the whole 2s ramp (and some
	// margin into the following hold); RPM must never decrease and must
	// rise above 800 somewhere in here.
	var prev float64 = 800
	sawAbove800 := false
	for i := 0; i < 250; i++ {
		got := player.Advance(tick)
		require.GreaterOrEqualf(t, got, prev-1e-9, "tick %d during ramp", i)
		if got > prev {
			sawAbove800 = true
		}
		prev = got
	}
	require.True(t, sawAbove800, "expected RPM to increase during the ramp segment")

	// Well into the second hold, RPM must be exactly 4000.
	for i := 0; i < 50; i++ {
		got := player.Advance(tick)
		require.Equalf(t, 4000.0, got, "tick %d during second hold", i)
	}

	// Past the end of a non-looping program, RPM holds at the final target.
	for i := 0; i < 10; i++ {
		require.Equal(t, 4000.0, player.Advance(time.Second))
	}
}

func TestThrottlePlayerLoops(t *testing.T) {
	prog, err := Parse(strings.NewReader("loop\nhold 1000 100ms\nhold 2000 100ms\n"))
	require.NoError(t, err)

	player := prog.NewPlayer()
	for lap := 0; lap < 3; lap++ {
		require.Equalf(t, 1000.0, player.Advance(50*time.Millisecond), "lap %d", lap)
		require.Equalf(t, 2000.0, player.Advance(100*time.Millisecond), "lap %d", lap)
		player.Advance(50 * time.Millisecond) // cross back into the loop start
	}
}
