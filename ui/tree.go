package ui

// NodeID addresses a widget in a Tree. IDs are stable for the tree's
// lifetime.
type NodeID int16

// NoNode is the null widget reference.
const NoNode NodeID = -1

// Behavior is the capability interface a widget kind implements. Each
// callback returns true when the event was consumed.
type Behavior interface {
	OnTouch(TouchEvent) bool
	OnKey(KeyEvent) bool
	OnEncoder(EncoderEvent) bool
}

// Focuser is optionally implemented by behaviors that can hold key
// focus.
type Focuser interface {
	AcceptsFocus() bool
}

// Drawer is optionally implemented by behaviors that paint themselves.
type Drawer interface {
	Draw(p *Painter, r Rect, focused bool)
}

// NopBehavior consumes nothing. Embed it to implement Behavior with
// only the callbacks a widget cares about.
type NopBehavior struct{}

func (NopBehavior) OnTouch(TouchEvent) bool     { return false }
func (NopBehavior) OnKey(KeyEvent) bool         { return false }
func (NopBehavior) OnEncoder(EncoderEvent) bool { return false }

type node struct {
	parent   NodeID
	children []NodeID
	rect     Rect
	hidden   bool
	behavior Behavior
}

// Tree is an arena of widget nodes. The parent exclusively owns its
// child subtree; parent references are plain indices, so bubbling needs
// no back-pointers. Topology is fixed at UI-build time; traversal never
// mutates it.
type Tree struct {
	nodes []node
}

// NewTree returns a tree pre-sized for n nodes.
func NewTree(n int) *Tree {
	return &Tree{nodes: make([]node, 0, n)}
}

// AddRoot adds a parentless node and returns its ID.
func (t *Tree) AddRoot(rect Rect, b Behavior) NodeID {
	return t.add(NoNode, rect, b)
}

// AddChild adds a node under parent in draw order: later children draw
// on top of earlier ones.
func (t *Tree) AddChild(parent NodeID, rect Rect, b Behavior) NodeID {
	id := t.add(parent, rect, b)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

func (t *Tree) add(parent NodeID, rect Rect, b Behavior) NodeID {
	if b == nil {
		b = NopBehavior{}
	}
	t.nodes = append(t.nodes, node{parent: parent, rect: rect, behavior: b})
	return NodeID(len(t.nodes) - 1)
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Parent returns the parent ID, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// Children returns the child list in draw order. Callers must not
// mutate it.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Rect returns the node's screen rectangle.
func (t *Tree) Rect(id NodeID) Rect {
	if !t.valid(id) {
		return Rect{}
	}
	return t.nodes[id].rect
}

// Hidden reports whether the node is hidden. Invalid IDs are hidden.
func (t *Tree) Hidden(id NodeID) bool {
	if !t.valid(id) {
		return true
	}
	return t.nodes[id].hidden
}

// SetHidden toggles the node's hidden flag. A hidden node hides its
// whole subtree.
func (t *Tree) SetHidden(id NodeID, hidden bool) {
	if t.valid(id) {
		t.nodes[id].hidden = hidden
	}
}

// Behavior returns the node's behavior, or nil for invalid IDs.
func (t *Tree) Behavior(id NodeID) Behavior {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].behavior
}

// HitTest resolves a touch event to the widget that consumes it.
// Children are visited before their parent, in reverse draw order, so
// the last-drawn (visually topmost) widget is tested first. Hidden
// subtrees are skipped entirely. Returns NoNode when nothing consumes
// the event.
func (t *Tree) HitTest(id NodeID, ev TouchEvent) NodeID {
	if t.Hidden(id) {
		return NoNode
	}
	children := t.nodes[id].children
	for i := len(children) - 1; i >= 0; i-- {
		if hit := t.HitTest(children[i], ev); hit != NoNode {
			return hit
		}
	}
	if t.nodes[id].rect.Contains(ev.Point) && t.nodes[id].behavior.OnTouch(ev) {
		return id
	}
	return NoNode
}

// AcceptsFocus reports whether the node's behavior can hold key focus.
func (t *Tree) AcceptsFocus(id NodeID) bool {
	b := t.Behavior(id)
	if b == nil {
		return false
	}
	f, ok := b.(Focuser)
	return ok && f.AcceptsFocus()
}
