package touch

import "kite/hal"

// Calibration maps normalized panel coordinates onto screen pixels.
// Values are the normalized readings observed at the screen edges.
type Calibration struct {
	XLow  float32
	XHigh float32
	YLow  float32
	YHigh float32
}

// XRange returns the normalized horizontal span.
func (c Calibration) XRange() float32 { return c.XHigh - c.XLow }

// YRange returns the normalized vertical span.
func (c Calibration) YRange() float32 { return c.YHigh - c.YLow }

// Valid reports whether both spans are positive.
func (c Calibration) Valid() bool { return c.XRange() > 0 && c.YRange() > 0 }

// DefaultCalibration returns the identity mapping used by panels whose
// readings already span the full normalized range (and by the host
// simulator).
func DefaultCalibration() Calibration {
	return Calibration{XLow: 0, XHigh: 1, YLow: 0, YHigh: 1}
}

// DefaultRTouchThreshold gates contact quality: estimated resistances
// at or above this never count as a touch.
const DefaultRTouchThreshold = 100

// stableTolerancePx is the positional debounce tolerance.
const stableTolerancePx = 4

// State is the gesture recognizer state.
type State uint8

const (
	StateNoTouch State = iota
	StateTouchDetected
)

// Manager is the touch state machine: it conditions frames, gates them
// on contact pressure, debounces position, and emits Start/Move/End to
// its sink. It cycles between its two states for the device's lifetime;
// any unrecognized state value is treated as corruption and force-reset
// to StateNoTouch.
type Manager struct {
	state      State
	filterX    Filter
	filterY    Filter
	cal        Calibration
	width      int
	height     int
	rThreshold float32
	sink       Sink

	// Last qualified filtered point, so End can report where the
	// gesture was even after the filters reset on contact loss.
	lastX int
	lastY int
}

// NewManager builds a Manager delivering events to sink. A zero
// rThreshold selects DefaultRTouchThreshold; an invalid calibration
// falls back to DefaultCalibration.
func NewManager(cal Calibration, width, height int, rThreshold float32, sink Sink) *Manager {
	if !cal.Valid() {
		cal = DefaultCalibration()
	}
	if rThreshold <= 0 {
		rThreshold = DefaultRTouchThreshold
	}
	return &Manager{
		cal:        cal,
		width:      width,
		height:     height,
		rThreshold: rThreshold,
		sink:       sink,
	}
}

// State returns the current recognizer state.
func (m *Manager) State() State { return m.state }

// Feed consumes one raw frame. Malformed or light-contact samples
// simply fail to qualify; there are no fatal failures.
func (m *Manager) Feed(frame hal.TouchFrame) {
	touchRaw := frame.Touch
	touchStable := touchRaw
	touchPressure := false

	// Only feed coordinate averaging while there is contact.
	if touchRaw {
		metrics := CalculateMetrics(frame)
		touchPressure = metrics.R < m.rThreshold
		if touchPressure {
			x := float32(m.width) * (metrics.X - m.cal.XLow) / m.cal.XRange()
			m.filterX.Feed(x)
			// The vertical axis is flipped on the glass.
			y := float32(m.height) * (m.cal.YHigh - metrics.Y) / m.cal.YRange()
			m.filterY.Feed(y)
			m.lastX = int(m.filterX.Value() + 0.5)
			m.lastY = int(m.filterY.Value() + 0.5)
		}
	} else {
		m.filterX.Reset()
		m.filterY.Reset()
	}

	switch m.state {
	case StateNoTouch:
		if touchStable && touchPressure && m.pointStable() {
			m.state = StateTouchDetected
			m.emit(EventStart)
		}

	case StateTouchDetected:
		if touchStable && touchPressure {
			m.emit(EventMove)
		} else {
			m.state = StateNoTouch
			m.emit(EventEnd)
		}

	default:
		m.state = StateNoTouch
	}
}

func (m *Manager) pointStable() bool {
	return m.filterX.Stable(stableTolerancePx) && m.filterY.Stable(stableTolerancePx)
}

func (m *Manager) emit(t EventType) {
	if m.sink == nil {
		return
	}
	m.sink.OnTouchEvent(Event{Type: t, X: m.lastX, Y: m.lastY})
}
