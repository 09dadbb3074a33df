package engine

import (
	"math"
	"testing"
)

func TestValveFunctionsAtPhaseZero(t *testing.T) {
	if got := intakeValve(0); got != 0 {
		t.Errorf("intakeValve(0) = %v, want 0", got)
	}
	if got := exhaustValve(0); got != 0 {
		t.Errorf("exhaustValve(0) = %v, want 0", got)
	}
}

func TestIntakeValveNearQuarterPhase(t *testing.T) {
	got := intakeValve(0.125)
	want := math.Sin(math.Pi / 2)
	if math.Abs(float64(got)-want) > 0.06 {
		t.Errorf("intakeValve(0.125) = %v, want ~%v within tolerance", got, want)
	}
}

func TestExhaustValveNearEndOfCycle(t *testing.T) {
	got := exhaustValve(0.875)
	want := -math.Sin(3.5 * math.Pi)
	if math.Abs(float64(got)-want) > 0.06 {
		t.Errorf("exhaustValve(0.875) = %v, want ~%v within tolerance", got, want)
	}
}

func TestValveFunctionsZeroOutsideWindow(t *testing.T) {
	if got := intakeValve(0.5); got != 0 {
		t.Errorf("intakeValve(0.5) = %v, want 0", got)
	}
	if got := exhaustValve(0.1); got != 0 {
		t.Errorf("exhaustValve(0.1) = %v, want 0", got)
	}
}

func TestFuelIgnitionWindow(t *testing.T) {
	if got := fuelIgnition(0.4, 0.2); got != 0 {
		t.Errorf("fuelIgnition(0.4, 0.2) = %v, want 0 before ignition window", got)
	}
	if got := fuelIgnition(0.9, 0.2); got != 0 {
		t.Errorf("fuelIgnition(0.9, 0.2) = %v, want 0 after ignition window", got)
	}
	if got := fuelIgnition(0.55, 0.2); got == 0 {
		t.Errorf("fuelIgnition(0.55, 0.2) = %v, want nonzero inside ignition window", got)
	}
}

func TestFractWrapsNegatives(t *testing.T) {
	got := fract(-0.25)
	if got < 0 || got >= 1 {
		t.Fatalf("fract(-0.25) = %v, want in [0, 1)", got)
	}
	if math.Abs(float64(got)-0.75) > 1e-6 {
		t.Errorf("fract(-0.25) = %v, want 0.75", got)
	}
}

func TestCylinderResetZeroesRunningState(t *testing.T) {
	cyl := newCylinder(cylinderSpec{
		crankOffset: 0, exhaustDelay: 0.001, intakeDelay: 0.001, extractorDelay: 0.001,
		exhaustAlpha: 0.5, intakeAlpha: 0.5, exhaustBeta: 0.1, intakeBeta: 0.1,
		intakeOpenRefl: 0.5, intakeClosedRefl: 1, exhaustOpenRefl: 0.5, exhaustClosedRefl: 1,
		pistonMotionFactor: 1, ignitionFactor: 1, ignitionTime: 0.2,
	}, 48000)

	for i := 0; i < 100; i++ {
		_, _, _ = cyl.pop(float32(i)*0.01, 0, 0, 0)
		cyl.push(0)
	}

	cyl.reset()
	if cyl.CylSound != 0 || cyl.ExtractorExhaust != 0 {
		t.Fatalf("reset left running state nonzero: cylSound=%v extractorExhaust=%v", cyl.CylSound, cyl.ExtractorExhaust)
	}
}
