package postfx

import "math"

// Leveler is an envelope-follower compressor with a static power-law gain
// curve, keeping mixed engine+effects output from clipping. The exhaust and
// vibration sub-mixes both grow louder with RPM (see Engine.Step), so the
// threshold is pulled down as RPM rises to give the louder high-RPM signal
// the same headroom the quieter idle signal gets at the base threshold.
type Leveler struct {
	baseThresholdDB float32
	threshold       float32
	ratio           float32
	attack          float32
	release         float32
	makeupDB        float32
	makeup          float32
	envL            float32
	envR            float32
}

// NewLeveler creates a leveler.
// thresholdDB: threshold in dB at idle (e.g., -20)
// ratio: compression ratio (e.g., 4 for 4:1)
// attackMs: attack time in ms
// releaseMs: release time in ms
// makeupDB: makeup gain in dB
func NewLeveler(sampleRate int, thresholdDB, ratio, attackMs, releaseMs, makeupDB float32) *Leveler {
	sr := float64(sampleRate)
	return &Leveler{
		baseThresholdDB: thresholdDB,
		threshold:       float32(math.Pow(10, float64(thresholdDB)/20)),
		ratio:           ratio,
		attack:          float32(1.0 - math.Exp(-1.0/(float64(attackMs)*sr/1000.0))),
		release:         float32(1.0 - math.Exp(-1.0/(float64(releaseMs)*sr/1000.0))),
		makeupDB:        makeupDB,
		makeup:          float32(math.Pow(10, float64(makeupDB)/20)),
	}
}

// SetRPM lowers the threshold by up to 8dB as RPM climbs toward 7000,
// clamping the louder high-RPM exhaust/vibration mix the same way the base
// threshold clamps it at idle.
func (c *Leveler) SetRPM(rpm float32) {
	drop := rpm / 7000 * 8
	if drop > 8 {
		drop = 8
	}
	c.threshold = float32(math.Pow(10, float64(c.baseThresholdDB-drop)/20))
}

func (c *Leveler) Process(l, r float32) (float32, float32) {
	absL := float32(math.Abs(float64(l)))
	absR := float32(math.Abs(float64(r)))
	if absL > c.envL {
		c.envL += c.attack * (absL - c.envL)
	} else {
		c.envL += c.release * (absL - c.envL)
	}
	if absR > c.envR {
		c.envR += c.attack * (absR - c.envR)
	} else {
		c.envR += c.release * (absR - c.envR)
	}
	gainL := c.computeGain(c.envL)
	gainR := c.computeGain(c.envR)
	return l * gainL * c.makeup, r * gainR * c.makeup
}

func (c *Leveler) computeGain(env float32) float32 {
	if env <= c.threshold || c.threshold <= 0 {
		return 1.0
	}
	over := env / c.threshold
	compressed := float32(math.Pow(float64(over), float64(1.0/c.ratio-1)))
	return compressed
}

func (c *Leveler) Reset() {
	c.envL = 0
	c.envR = 0
	c.threshold = float32(math.Pow(10, float64(c.baseThresholdDB)/20))
}
