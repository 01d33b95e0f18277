package ipc

// Queue region sizes, bytes. Power of two, fixed at build time.
const (
	BasebandQueueBytes = 1024
	AppQueueBytes      = 512
	LocalQueueBytes    = 256
)

// SharedMemory is the region both cores agree on: one queue per logical
// channel, each with a statically sized backing region. Baseband is
// written by this core for the companion; App and Local are consumed by
// the event loop (App fed from the companion core, Local from this one).
type SharedMemory struct {
	basebandRegion [BasebandQueueBytes]byte
	appRegion      [AppQueueBytes]byte
	localRegion    [LocalQueueBytes]byte

	Baseband *Queue
	App      *Queue
	Local    *Queue
}

// NewSharedMemory lays the queues over their regions. All capacity is
// fixed here; nothing allocates afterward.
func NewSharedMemory() *SharedMemory {
	s := &SharedMemory{}
	s.Baseband = NewQueue(s.basebandRegion[:])
	s.App = NewQueue(s.appRegion[:])
	s.Local = NewQueue(s.localRegion[:])
	return s
}
