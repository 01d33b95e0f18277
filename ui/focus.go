package ui

// FocusManager tracks which widget holds key focus. It stores only a
// node index; lifetime is tied to the screen whose tree it serves.
type FocusManager struct {
	focused NodeID
}

// NewFocusManager returns a manager with nothing focused.
func NewFocusManager() *FocusManager {
	return &FocusManager{focused: NoNode}
}

// Focus returns the focused node, or NoNode.
func (f *FocusManager) Focus() NodeID { return f.focused }

// SetFocus moves focus directly, for screen-construction time.
func (f *FocusManager) SetFocus(id NodeID) { f.focused = id }

// Update handles a key event no widget consumed by moving focus among
// the visible focusable widgets, in draw order. Up/Left step backward,
// Down/Right step forward; other keys leave focus alone.
func (f *FocusManager) Update(t *Tree, root NodeID, key KeyEvent) {
	var step int
	switch key {
	case KeyUp, KeyLeft:
		step = -1
	case KeyDown, KeyRight:
		step = 1
	default:
		return
	}

	order := focusOrder(t, root)
	if len(order) == 0 {
		f.focused = NoNode
		return
	}

	at := -1
	for i, id := range order {
		if id == f.focused {
			at = i
			break
		}
	}
	if at < 0 {
		// Nothing (or a now-hidden widget) focused: take the first.
		f.focused = order[0]
		return
	}
	at = (at + step + len(order)) % len(order)
	f.focused = order[at]
}

func focusOrder(t *Tree, id NodeID) []NodeID {
	if t.Hidden(id) {
		return nil
	}
	var order []NodeID
	if t.AcceptsFocus(id) {
		order = append(order, id)
	}
	for _, child := range t.Children(id) {
		order = append(order, focusOrder(t, child)...)
	}
	return order
}
