package touch

// EventType tags a gesture event.
type EventType uint8

const (
	EventStart EventType = iota
	EventMove
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one gesture event in calibrated screen-pixel coordinates.
// It exists only for the duration of one dispatch.
type Event struct {
	Type EventType
	X    int
	Y    int
}

// Sink receives gesture events from a Manager. The owner of the event
// loop implements this; events are delivered synchronously from Feed.
type Sink interface {
	OnTouchEvent(Event)
}
