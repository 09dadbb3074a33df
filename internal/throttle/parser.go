// Package throttle implements a tiny textual DSL describing an RPM-vs-time
// automation curve, compiled to a sequence of timed hold/ramp segments and
// driven sample-accurately against an engine.
package throttle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Shape identifies how a Segment's RPM varies across its Duration.
type Shape int

const (
	// Hold keeps the RPM fixed at TargetRPM for the whole segment.
	Hold Shape = iota
	// Linear interpolates from the previous segment's TargetRPM (or 0 for
	// the first segment) to this segment's TargetRPM over its Duration.
	Linear
)

// Segment is one compiled step of a throttle program.
type Segment struct {
	TargetRPM float64
	Duration  time.Duration
	Shape     Shape
}

// Program is a parsed, ordered throttle script.
type Program struct {
	Segments []Segment
	Loop     bool
}

// Parse reads a throttle script: line-oriented, `#` starts a comment, blank
// lines are ignored. An optional `loop` line (anywhere before the first
// segment) marks the program as repeating. Each remaining line is either
// `hold <rpm> <duration>` or `ramp <rpm> <duration>`, where <duration>
// accepts the same suffixes as time.ParseDuration.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		verb := strings.ToLower(fields[0])

		if verb == "loop" {
			if len(fields) != 1 {
				return nil, fmt.Errorf("throttle: line %d: loop takes no arguments", lineNo)
			}
			if len(prog.Segments) > 0 {
				return nil, fmt.Errorf("throttle: line %d: loop must come before the first segment", lineNo)
			}
			prog.Loop = true
			continue
		}

		var shape Shape
		switch verb {
		case "hold":
			shape = Hold
		case "ramp":
			shape = Linear
		default:
			return nil, fmt.Errorf("throttle: line %d: unknown verb %q", lineNo, fields[0])
		}

		if len(fields) != 3 {
			return nil, fmt.Errorf("throttle: line %d: %s requires <rpm> <duration>", lineNo, verb)
		}
		rpm, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || rpm < 0 {
			return nil, fmt.Errorf("throttle: line %d: invalid rpm %q", lineNo, fields[1])
		}
		dur, err := time.ParseDuration(fields[2])
		if err != nil {
			return nil, fmt.Errorf("throttle: line %d: invalid duration %q: %w", lineNo, fields[2], err)
		}

		prog.Segments = append(prog.Segments, Segment{
			TargetRPM: rpm,
			Duration:  dur,
			Shape:     shape,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("throttle: reading program: %w", err)
	}
	if len(prog.Segments) == 0 {
		return nil, fmt.Errorf("throttle: program has no hold/ramp segments")
	}
	return prog, nil
}
