package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display owns the LCD panel and its backlight.
//
// Sleep and Wake control panel power only; the event loop decides what
// is serviced while the display sleeps.
type Display interface {
	Framebuffer() Framebuffer
	Sleep()
	Wake()
	Backlight(on bool)
}

// AxisSample holds the four raw ADC readings taken for one drive
// configuration of the resistive panel (XP/XN/YP/YN sense lines).
type AxisSample struct {
	XP uint16
	XN uint16
	YP uint16
	YN uint16
}

// TouchFrame is one sampling tick of the 4-wire touch sense circuit:
// one AxisSample per drive configuration plus the digital contact flag.
type TouchFrame struct {
	X        AxisSample
	Y        AxisSample
	Pressure AxisSample
	Touch    bool
}

// TouchADC exposes the most recent conversion of the touch panel.
type TouchADC interface {
	Frame() TouchFrame
}

// NumSwitches is the number of front-panel switches.
const NumSwitches = 6

// Front-panel switch indices. The order doubles as the key-event code
// space seen by the widget tree.
const (
	SwitchRight = iota
	SwitchLeft
	SwitchDown
	SwitchUp
	SwitchSelect
	SwitchBack
)

// SwitchesState is a bitset of currently pressed switches.
type SwitchesState uint8

// Any reports whether at least one switch is pressed.
func (s SwitchesState) Any() bool { return s != 0 }

// Pressed reports whether switch i is pressed.
func (s SwitchesState) Pressed(i int) bool {
	if i < 0 || i >= NumSwitches {
		return false
	}
	return s&(1<<uint(i)) != 0
}

// Controls exposes the front-panel switches and the rotary encoder.
//
// EncoderPosition is a free-running wrapping counter; consumers track
// the delta between reads.
type Controls interface {
	Switches() SwitchesState
	EncoderPosition() uint32
}

// SDCard reports media presence. Filesystem access is out of scope here.
type SDCard interface {
	Present() bool
}

// RTC delivers one tick per second.
type RTC interface {
	Ticks() <-chan uint64
}

// InputEvents signals raw input-source activity. Each channel carries
// edge notifications only; level state is read back through Controls or
// TouchADC when the event loop services the source.
type InputEvents interface {
	SwitchActivity() <-chan struct{}
	EncoderActivity() <-chan struct{}
	TouchSample() <-chan struct{}
	FrameSync() <-chan struct{}
}

// CoreLink is the notification line from the companion (baseband) core.
// Enable binds a callback invoked whenever the other core raises the
// line; the callback runs in notification context and must only touch
// ISR-safe state.
type CoreLink interface {
	Enable(notify func())
	Disable()
}

// HAL provides the only contact point between the event core and the
// hardware.
type HAL interface {
	Logger() Logger
	Display() Display
	Touch() TouchADC
	Controls() Controls
	SDCard() SDCard
	RTC() RTC
	Input() InputEvents
	CoreLink() CoreLink
}
