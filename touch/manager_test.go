package touch

import (
	"testing"

	"kite/hal"
)

type recordingSink struct {
	events []Event
}

func (r *recordingSink) OnTouchEvent(e Event) { r.events = append(r.events, e) }

func newTestManager(sink Sink) *Manager {
	return NewManager(DefaultCalibration(), 240, 320, DefaultRTouchThreshold, sink)
}

func TestManagerStartAfterStableWindow(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	frame := hal.SyntheticFrame(0.5, 0.5, 50, true)
	for i := 0; i < filterWindow-1; i++ {
		m.Feed(frame)
		if len(sink.events) != 0 {
			t.Fatalf("expected no events with %d samples, got %v", i+1, sink.events)
		}
	}
	m.Feed(frame)
	if len(sink.events) != 1 || sink.events[0].Type != EventStart {
		t.Fatalf("expected exactly one start event, got %v", sink.events)
	}
	if m.State() != StateTouchDetected {
		t.Fatalf("expected StateTouchDetected, got %v", m.State())
	}

	// Screen center with the vertical axis flipped on the glass.
	e := sink.events[0]
	if e.X != 120 || e.Y != 160 {
		t.Fatalf("expected start at (120, 160), got (%d, %d)", e.X, e.Y)
	}
}

func TestManagerMoveThenEnd(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	frame := hal.SyntheticFrame(0.5, 0.5, 50, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(frame)
	}
	m.Feed(frame)
	m.Feed(frame)
	if len(sink.events) != 3 {
		t.Fatalf("expected start plus two moves, got %v", sink.events)
	}
	if sink.events[1].Type != EventMove || sink.events[2].Type != EventMove {
		t.Fatalf("expected move events while contact holds, got %v", sink.events)
	}

	m.Feed(hal.SyntheticFrame(0, 0, 0, false))
	last := sink.events[len(sink.events)-1]
	if last.Type != EventEnd {
		t.Fatalf("expected end on contact loss, got %v", last.Type)
	}
	// The filters reset on contact loss, but the end event still
	// reports the last qualified point.
	if last.X != 120 || last.Y != 160 {
		t.Fatalf("expected end at (120, 160), got (%d, %d)", last.X, last.Y)
	}
	if m.State() != StateNoTouch {
		t.Fatalf("expected StateNoTouch after end, got %v", m.State())
	}
}

func TestManagerExactlyOneEndPerGesture(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	frame := hal.SyntheticFrame(0.3, 0.7, 40, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(frame)
	}
	release := hal.SyntheticFrame(0, 0, 0, false)
	m.Feed(release)
	m.Feed(release)
	m.Feed(release)

	ends := 0
	for _, e := range sink.events {
		if e.Type == EventEnd {
			ends++
		}
	}
	if ends != 1 {
		t.Fatalf("expected exactly one end event, got %d in %v", ends, sink.events)
	}
}

func TestManagerHighResistanceNeverQualifies(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	// Contact is reported but the estimated resistance sits above the
	// gate: light, glancing contact must produce nothing.
	frame := hal.SyntheticFrame(0.5, 0.5, DefaultRTouchThreshold+50, true)
	for i := 0; i < filterWindow*2; i++ {
		m.Feed(frame)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events for light contact, got %v", sink.events)
	}
	if m.State() != StateNoTouch {
		t.Fatalf("expected StateNoTouch, got %v", m.State())
	}
}

func TestManagerPressureLossEndsGesture(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	firm := hal.SyntheticFrame(0.5, 0.5, 50, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(firm)
	}
	// Contact is still reported, but pressure fades below the gate.
	light := hal.SyntheticFrame(0.5, 0.5, DefaultRTouchThreshold+100, true)
	m.Feed(light)
	last := sink.events[len(sink.events)-1]
	if last.Type != EventEnd {
		t.Fatalf("expected end when pressure fades, got %v", sink.events)
	}
}

func TestManagerNewGestureNeedsFreshWindow(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink)

	frame := hal.SyntheticFrame(0.5, 0.5, 50, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(frame)
	}
	m.Feed(hal.SyntheticFrame(0, 0, 0, false))
	n := len(sink.events)

	// A second touch must settle a whole new window before starting.
	for i := 0; i < filterWindow-1; i++ {
		m.Feed(frame)
	}
	if len(sink.events) != n {
		t.Fatalf("expected no events before the window refills, got %v", sink.events[n:])
	}
	m.Feed(frame)
	if len(sink.events) != n+1 || sink.events[n].Type != EventStart {
		t.Fatalf("expected a fresh start event, got %v", sink.events[n:])
	}
}

func TestManagerCalibrationMapsToPixels(t *testing.T) {
	sink := &recordingSink{}
	cal := Calibration{XLow: 0.1, XHigh: 0.9, YLow: 0.1, YHigh: 0.9}
	m := NewManager(cal, 240, 320, DefaultRTouchThreshold, sink)

	// A reading at the calibrated low-x/high-y corner maps to pixel
	// (0, 0) after the vertical flip.
	frame := hal.SyntheticFrame(0.1, 0.9, 30, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(frame)
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected one start event, got %v", sink.events)
	}
	if e := sink.events[0]; e.X != 0 || e.Y != 0 {
		t.Fatalf("expected (0, 0), got (%d, %d)", e.X, e.Y)
	}
}

func TestNewManagerFallbacks(t *testing.T) {
	m := NewManager(Calibration{}, 240, 320, 0, nil)
	if !m.cal.Valid() {
		t.Fatal("expected invalid calibration to fall back to identity")
	}
	if m.rThreshold != DefaultRTouchThreshold {
		t.Fatalf("expected default threshold, got %v", m.rThreshold)
	}
	// A nil sink is tolerated: events are simply discarded.
	frame := hal.SyntheticFrame(0.5, 0.5, 50, true)
	for i := 0; i < filterWindow; i++ {
		m.Feed(frame)
	}
	if m.State() != StateTouchDetected {
		t.Fatalf("expected gesture to progress without a sink, got %v", m.State())
	}
}
