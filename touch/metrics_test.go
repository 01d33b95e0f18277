package touch

import (
	"math"
	"testing"

	"kite/hal"
)

func TestCalculateMetricsCenterPoint(t *testing.T) {
	f := hal.SyntheticFrame(0.5, 0.5, 50, true)
	m := CalculateMetrics(f)
	if m.X != 0.5 {
		t.Fatalf("expected X 0.5, got %v", m.X)
	}
	if m.Y != 0.5 {
		t.Fatalf("expected Y 0.5, got %v", m.Y)
	}
	// The z2 rail is quantized to an integer reading, so the recovered
	// resistance is close, not exact.
	if m.R < 49 || m.R > 51 {
		t.Fatalf("expected R near 50 ohm, got %v", m.R)
	}
}

func TestCalculateMetricsPositionSweep(t *testing.T) {
	for _, tc := range []struct{ x, y float32 }{
		{0, 0}, {1, 1}, {0.25, 0.75}, {1, 0},
	} {
		m := CalculateMetrics(hal.SyntheticFrame(tc.x, tc.y, 20, true))
		if d := m.X - tc.x; d > 0.001 || d < -0.001 {
			t.Fatalf("x=%v: expected X %v, got %v", tc.x, tc.x, m.X)
		}
		if d := m.Y - tc.y; d > 0.001 || d < -0.001 {
			t.Fatalf("y=%v: expected Y %v, got %v", tc.y, tc.y, m.Y)
		}
	}
}

func TestCalculateMetricsDegenerateRanges(t *testing.T) {
	base := hal.SyntheticFrame(0.5, 0.5, 50, true)

	// Collapse each driven-plate range in turn. Every degenerate frame
	// must condition to infinite resistance, never NaN.
	cases := map[string]func(*hal.TouchFrame){
		"x range zero":     func(f *hal.TouchFrame) { f.X.XN = f.X.XP },
		"x range negative": func(f *hal.TouchFrame) { f.X.XN = f.X.XP + 100 },
		"y range zero":     func(f *hal.TouchFrame) { f.Y.YP = f.Y.YN },
		"z range zero":     func(f *hal.TouchFrame) { f.Pressure.XN = f.Pressure.YP },
	}
	for name, mutate := range cases {
		f := base
		mutate(&f)
		m := CalculateMetrics(f)
		if !math.IsInf(float64(m.R), 1) {
			t.Fatalf("%s: expected R = +Inf, got %v", name, m.R)
		}
		if m.R != m.R || m.X != m.X || m.Y != m.Y {
			t.Fatalf("%s: NaN leaked: %+v", name, m)
		}
	}
}

func TestCalculateMetricsZeroZ1(t *testing.T) {
	f := hal.SyntheticFrame(0.5, 0.5, 50, true)
	f.Pressure.XP = f.Pressure.XN // z1 term collapses to zero
	m := CalculateMetrics(f)
	if !math.IsInf(float64(m.R), 1) {
		t.Fatalf("expected R = +Inf on zero z1, got %v", m.R)
	}
	// Position information is still valid and preserved.
	if m.X != 0.5 || m.Y != 0.5 {
		t.Fatalf("expected position to survive, got (%v, %v)", m.X, m.Y)
	}
}

func TestInfiniteResistanceNeverQualifies(t *testing.T) {
	m := Metrics{R: infResistance}
	if m.R < DefaultRTouchThreshold {
		t.Fatal("expected +Inf to fail every pressure gate")
	}
}
