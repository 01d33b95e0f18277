// Package event routes queue, timer, switch, encoder, and touch events
// through a single-threaded dispatch loop.
package event

import (
	"fmt"

	"kite/ipc"
)

// Handler consumes one message. Handlers always run on the event loop,
// never in producer or interrupt context.
type Handler func(*ipc.Message)

// HandlerMap maps the bounded message-ID space to at most one handler
// per ID. It is owned by the process context and touched only from the
// event loop and from setup code before the loop starts.
type HandlerMap struct {
	handlers [ipc.NumIDs]Handler
}

// NewHandlerMap returns an empty map.
func NewHandlerMap() *HandlerMap {
	return &HandlerMap{}
}

// Register binds a handler and returns its scoped registration.
// Registering an ID that already has a handler is a configuration bug,
// not a runtime condition: it panics immediately.
func (m *HandlerMap) Register(id ipc.ID, fn Handler) Registration {
	if !id.Valid() {
		panic(fmt.Sprintf("event: register out-of-range message id %d", id))
	}
	if m.handlers[id] != nil {
		panic(fmt.Sprintf("event: handler already registered for %s", id))
	}
	m.handlers[id] = fn
	return Registration{m: m, id: id}
}

// Unregister clears the slot. Idempotent.
func (m *HandlerMap) Unregister(id ipc.ID) {
	if id.Valid() {
		m.handlers[id] = nil
	}
}

// Send invokes the handler registered for the message's ID. An ID that
// is out of range or has no handler is silently dropped: unhandled
// messages are normal, e.g. during partial initialization.
func (m *HandlerMap) Send(msg *ipc.Message) {
	if !msg.ID.Valid() {
		return
	}
	if fn := m.handlers[msg.ID]; fn != nil {
		fn(msg)
	}
}

// Registration is a scoped handler binding. Close releases it; pair
// every Register with a deferred Close so no exit path leaves a stale
// handler behind.
type Registration struct {
	m  *HandlerMap
	id ipc.ID
}

// Close unbinds the handler. Safe to call more than once.
func (r Registration) Close() {
	if r.m != nil {
		r.m.Unregister(r.id)
	}
}
