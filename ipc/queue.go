package ipc

import "sync/atomic"

// recordHeaderBytes is the per-record overhead: message ID plus payload
// length, little-endian.
const recordHeaderBytes = 3

// Queue is a single-producer/single-consumer ring over a fixed byte
// region. The producer may run in interrupt/notification context; the
// consumer is the event loop. Neither side ever blocks: publication is
// a single atomic index store per operation, and there are no locks and
// no allocation after construction.
//
// Overflow policy is drop-newest: Push refuses a record that does not
// fit and bumps the drop counter. Blocking is not an option in the
// producer context, and drop-oldest would require the producer to move
// the consumer index, breaking the single-owner split.
type Queue struct {
	_      [0]func() // prevent accidental copying.
	region []byte
	mask   uint32

	head    atomic.Uint32 // producer-owned write offset
	tail    atomic.Uint32 // consumer-owned read offset
	dropped atomic.Uint32
}

// NewQueue wraps a fixed region. The region length must be a power of
// two and large enough for one maximum-size record; anything else is a
// build-time defect.
func NewQueue(region []byte) *Queue {
	n := uint32(len(region))
	if n == 0 || n&(n-1) != 0 {
		panic("ipc: queue region length must be a power of two")
	}
	if int(n) < recordHeaderBytes+MaxPayloadBytes {
		panic("ipc: queue region too small for one record")
	}
	return &Queue{region: region, mask: n - 1}
}

// Push enqueues one message. Safe to call from the producer context
// only. Returns false when the record does not fit.
func (q *Queue) Push(m *Message) bool {
	record := uint32(recordHeaderBytes) + uint32(m.Len)
	head := q.head.Load()
	tail := q.tail.Load()
	free := uint32(len(q.region)) - (head - tail)
	if record > free {
		q.dropped.Add(1)
		return false
	}

	q.put(head, byte(m.ID))
	q.put(head+1, byte(m.Len))
	q.put(head+2, byte(m.Len>>8))
	for i := uint32(0); i < uint32(m.Len); i++ {
		q.put(head+recordHeaderBytes+i, m.Data[i])
	}

	// Publish after the record bytes are in place.
	q.head.Store(head + record)
	return true
}

// Pop dequeues one message into m. Safe to call from the consumer
// context only. Returns false when the queue is empty.
func (q *Queue) Pop(m *Message) bool {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail == head {
		return false
	}

	m.ID = ID(q.at(tail))
	m.Len = uint16(q.at(tail+1)) | uint16(q.at(tail+2))<<8
	if int(m.Len) > MaxPayloadBytes {
		// Region corrupted; discard everything published so far.
		q.tail.Store(head)
		return false
	}
	for i := uint32(0); i < uint32(m.Len); i++ {
		m.Data[i] = q.at(tail + recordHeaderBytes + i)
	}

	q.tail.Store(tail + recordHeaderBytes + uint32(m.Len))
	return true
}

// Handle drains all currently queued messages in FIFO order, invoking
// fn once per message. Consumer context only; safe to run concurrently
// with Push.
func (q *Queue) Handle(fn func(*Message)) {
	var m Message
	for q.Pop(&m) {
		fn(&m)
	}
}

// Empty reports whether the queue has no published records. Safe from
// any context; it only loads the indices.
func (q *Queue) Empty() bool {
	return q.head.Load() == q.tail.Load()
}

// Dropped returns the number of messages refused by Push.
func (q *Queue) Dropped() uint32 { return q.dropped.Load() }

func (q *Queue) put(off uint32, b byte) { q.region[off&q.mask] = b }
func (q *Queue) at(off uint32) byte     { return q.region[off&q.mask] }
