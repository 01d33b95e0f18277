package event

import (
	"fmt"
	"sync/atomic"

	"kite/hal"
	"kite/ipc"
	"kite/touch"
	"kite/ui"
)

// Mask is the event-source bitmask the dispatch loop wakes on.
type Mask uint32

const (
	EvtAppQueue Mask = 1 << iota
	EvtLocalQueue
	EvtRTCTick
	EvtSwitches
	EvtLCDFrameSync
	EvtEncoder
	EvtTouch
)

// Config assembles a Dispatcher. The context object replaces the
// original's process-wide singletons: the entry point owns one of each
// and passes them down.
type Config struct {
	HAL      hal.HAL
	Shared   *ipc.SharedMemory
	Handlers *HandlerMap
	Tree     *ui.Tree
	Root     ui.NodeID
	Focus    *ui.FocusManager

	Calibration     touch.Calibration
	RTouchThreshold float32
}

// Dispatcher is the single-threaded cooperative run loop. Producers on
// any context call Signal; everything else happens on the loop.
type Dispatcher struct {
	shared   *ipc.SharedMemory
	handlers *HandlerMap
	log      hal.Logger
	display  hal.Display
	controls hal.Controls
	adc      hal.TouchADC
	sd       hal.SDCard
	link     hal.CoreLink

	tree    *ui.Tree
	root    ui.NodeID
	focus   *ui.FocusManager
	painter *ui.Painter
	touch   *touch.Manager

	captured     ui.NodeID
	displaySleep bool
	encoderLast  uint32
	sdPresent    bool
	uptime       uint32
	lastDrops    uint32

	running atomic.Bool
	pending atomic.Uint32
	wake    chan struct{}
}

// New builds a dispatcher. The display framebuffer fixes the touch
// calibration target size.
func New(cfg Config) *Dispatcher {
	fb := cfg.HAL.Display().Framebuffer()
	d := &Dispatcher{
		shared:   cfg.Shared,
		handlers: cfg.Handlers,
		log:      cfg.HAL.Logger(),
		display:  cfg.HAL.Display(),
		controls: cfg.HAL.Controls(),
		adc:      cfg.HAL.Touch(),
		sd:       cfg.HAL.SDCard(),
		link:     cfg.HAL.CoreLink(),
		tree:     cfg.Tree,
		root:     cfg.Root,
		focus:    cfg.Focus,
		painter:  ui.NewPainter(fb),
		captured: ui.NoNode,
		wake:     make(chan struct{}, 1),
	}
	d.touch = touch.NewManager(cfg.Calibration, fb.Width(), fb.Height(), cfg.RTouchThreshold, d)
	d.encoderLast = d.controls.EncoderPosition()
	d.sdPresent = d.sd.Present()
	return d
}

// Run enables the cross-core notification path and dispatches pending
// event sources until RequestStop. It blocks; call it from exactly one
// goroutine.
func (d *Dispatcher) Run() {
	d.running.Store(true)
	d.link.Enable(d.checkQueues)

	for d.running.Load() {
		events := d.wait()
		d.dispatch(events)
	}

	d.link.Disable()
}

// RequestStop asks the loop to exit. Cooperative: it takes effect after
// the current wake/dispatch cycle completes.
func (d *Dispatcher) RequestStop() {
	d.running.Store(false)
	d.Signal(0)
}

// Signal marks event sources pending and wakes the loop. Wait-free and
// safe from any context, including the core-link notification path.
func (d *Dispatcher) Signal(m Mask) {
	for {
		old := d.pending.Load()
		if d.pending.CompareAndSwap(old, old|uint32(m)) {
			break
		}
	}
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) wait() Mask {
	for {
		if m := Mask(d.pending.Swap(0)); m != 0 {
			return m
		}
		if !d.running.Load() {
			return 0
		}
		<-d.wake
	}
}

// checkQueues runs in the core-link notification context. It only
// inspects queue indices and signals the loop; no handler runs here.
func (d *Dispatcher) checkQueues() {
	var m Mask
	if !d.shared.App.Empty() {
		m |= EvtAppQueue
	}
	if !d.shared.Local.Empty() {
		m |= EvtLocalQueue
	}
	if m != 0 {
		d.Signal(m)
	}
}

// dispatch fans one wake out to every pending source, in fixed order.
// Queue drains, the timer tick, and switches are serviced even while
// the display sleeps; frame sync, encoder, and touch are gated off
// entirely to save power.
func (d *Dispatcher) dispatch(events Mask) {
	if events&EvtAppQueue != 0 {
		d.shared.App.Handle(d.handlers.Send)
	}

	if events&EvtLocalQueue != 0 {
		d.shared.Local.Handle(d.handlers.Send)
	}

	if events&EvtRTCTick != 0 {
		d.handleRTCTick()
	}

	if events&EvtSwitches != 0 {
		d.handleSwitches()
	}

	if !d.displaySleep {
		if events&EvtLCDFrameSync != 0 {
			d.handleFrameSync()
		}

		if events&EvtEncoder != 0 {
			d.handleEncoder()
		}

		if events&EvtTouch != 0 {
			d.touch.Feed(d.adc.Frame())
		}
	}
}

// SetDisplaySleep is the single authority for the display power gate.
func (d *Dispatcher) SetDisplaySleep(sleep bool) {
	if sleep {
		d.display.Backlight(false)
		d.display.Sleep()
	} else {
		d.display.Wake()
		d.display.Backlight(true)
	}
	d.displaySleep = sleep
}

// DisplaySleep reports the current gate state.
func (d *Dispatcher) DisplaySleep() bool { return d.displaySleep }

// PostLocal publishes a message on the app-local channel and marks it
// pending. Event-loop context only; the loop picks it up on its next
// cycle.
func (d *Dispatcher) PostLocal(msg *ipc.Message) {
	if d.shared.Local.Push(msg) {
		d.Signal(EvtLocalQueue)
	}
}

func (d *Dispatcher) handleRTCTick() {
	d.uptime++

	if present := d.sd.Present(); present != d.sdPresent {
		d.sdPresent = present
		msg := ipc.New(ipc.IDSDCardStatus, ipc.SDCardStatusPayload(present))
		d.PostLocal(&msg)
	}

	drops := d.shared.App.Dropped() + d.shared.Local.Dropped() + d.shared.Baseband.Dropped()
	if drops != d.lastDrops {
		d.lastDrops = drops
		d.log.WriteLineString(fmt.Sprintf("ipc: %d dropped @ %ds", drops, d.uptime))
	}
}

func (d *Dispatcher) handleSwitches() {
	state := d.controls.Switches()

	if d.displaySleep {
		// Swallow the event; any switch wakes the display.
		if state.Any() {
			d.SetDisplaySleep(false)
		}
		return
	}

	for i := 0; i < hal.NumSwitches; i++ {
		if state.Pressed(i) {
			key := ui.KeyEvent(i)
			if !d.bubbleKey(key) {
				d.focus.Update(d.tree, d.root, key)
			}
		}
	}
}

func (d *Dispatcher) handleEncoder() {
	encoderNow := d.controls.EncoderPosition()
	delta := int32(encoderNow - d.encoderLast)
	d.encoderLast = encoderNow
	d.bubbleEncoder(ui.EncoderEvent(delta))
}

func (d *Dispatcher) handleFrameSync() {
	msg := ipc.New(ipc.IDDisplayFrameSync, nil)
	d.handlers.Send(&msg)
	d.painter.PaintTree(d.tree, d.root, d.focus.Focus())
}

// OnTouchEvent receives gestures from the touch state machine. A Start
// resolves the consuming widget through the hit test and captures it;
// Move and End go straight to the captured widget regardless of where
// the pointer has wandered.
func (d *Dispatcher) OnTouchEvent(e touch.Event) {
	ev := ui.TouchEvent{Point: ui.Point{X: e.X, Y: e.Y}}
	switch e.Type {
	case touch.EventStart:
		ev.Type = ui.TouchStart
	case touch.EventMove:
		ev.Type = ui.TouchMove
	case touch.EventEnd:
		ev.Type = ui.TouchEnd
	}

	if ev.Type == ui.TouchStart {
		// The hit test itself offers the Start to the widget; the
		// winner is only recorded here, not called again.
		d.captured = d.tree.HitTest(d.root, ev)
	} else if d.captured != ui.NoNode {
		d.tree.Behavior(d.captured).OnTouch(ev)
	}

	if ev.Type == ui.TouchEnd {
		d.captured = ui.NoNode
	}
}

// bubbleKey walks the parent chain from the focused widget until some
// ancestor consumes the key. Returns true if it was consumed.
func (d *Dispatcher) bubbleKey(key ui.KeyEvent) bool {
	target := d.focus.Focus()
	for target != ui.NoNode && !d.tree.Behavior(target).OnKey(key) {
		target = d.tree.Parent(target)
	}
	return target != ui.NoNode
}

// bubbleEncoder walks the same chain; an unconsumed event is discarded.
func (d *Dispatcher) bubbleEncoder(e ui.EncoderEvent) {
	target := d.focus.Focus()
	for target != ui.NoNode && !d.tree.Behavior(target).OnEncoder(e) {
		target = d.tree.Parent(target)
	}
}
