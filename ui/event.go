package ui

// TouchEventType tags a touch gesture event.
type TouchEventType uint8

const (
	TouchStart TouchEventType = iota
	TouchMove
	TouchEnd
)

// TouchEvent is one gesture event routed through the widget tree.
type TouchEvent struct {
	Type  TouchEventType
	Point Point
}

// KeyEvent identifies a pressed front-panel switch. The code space
// matches the hal switch indices.
type KeyEvent uint8

const (
	KeyRight KeyEvent = iota
	KeyLeft
	KeyDown
	KeyUp
	KeySelect
	KeyBack

	NumKeys
)

// EncoderEvent is a rotary-encoder step delta: positive clockwise.
type EncoderEvent int32
