package app

import (
	"kite/event"
	"kite/hal"
	"kite/ipc"
	"kite/touch"
)

// Config carries host-side tuning into the event core.
type Config struct {
	Calibration     touch.Calibration
	RTouchThreshold float32
}

type system struct {
	h        hal.HAL
	shared   *ipc.SharedMemory
	handlers *event.HandlerMap
	d        *event.Dispatcher
	regs     []event.Registration
}

// New initializes and starts the event core with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{Calibration: touch.DefaultCalibration()})
}

// Run starts the event core and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

// NewWithConfig initializes and starts the event core.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	sys := newSystem(h, cfg)
	go sys.d.Run()
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg Config) *system {
	sys := &system{
		h:        h,
		shared:   ipc.NewSharedMemory(),
		handlers: event.NewHandlerMap(),
	}

	scr := buildScreen(h.Display().Framebuffer())

	sys.d = event.New(event.Config{
		HAL:             h,
		Shared:          sys.shared,
		Handlers:        sys.handlers,
		Tree:            scr.tree,
		Root:            scr.root,
		Focus:           scr.focus,
		Calibration:     cfg.Calibration,
		RTouchThreshold: cfg.RTouchThreshold,
	})
	scr.bind(sys.d)
	sys.register(scr)
	sys.bridgeInputs()
	startBasebandSim(h, sys.shared)

	return sys
}

// register binds the message handlers. Registrations are scoped: the
// shutdown path releases every one of them before the loop stops.
func (sys *system) register(scr *screen) {
	d := sys.d

	sys.regs = append(sys.regs,
		sys.handlers.Register(ipc.IDSDCardStatus, func(m *ipc.Message) {
			if present, ok := ipc.DecodeSDCardStatusPayload(m.Payload()); ok {
				scr.setSDCard(present)
			}
		}),
		sys.handlers.Register(ipc.IDChannelStats, func(m *ipc.Message) {
			if peak, saturated, ok := ipc.DecodeChannelStatsPayload(m.Payload()); ok {
				scr.setChannelStats(peak, saturated)
			}
		}),
		sys.handlers.Register(ipc.IDRSSIStats, func(m *ipc.Message) {
			if min, avg, max, ok := ipc.DecodeRSSIStatsPayload(m.Payload()); ok {
				scr.setRSSI(min, avg, max)
			}
		}),
		sys.handlers.Register(ipc.IDDisplaySleep, func(m *ipc.Message) {
			if sleep, ok := ipc.DecodeDisplaySleepPayload(m.Payload()); ok {
				d.SetDisplaySleep(sleep)
			}
		}),
		sys.handlers.Register(ipc.IDShutdown, func(*ipc.Message) {
			sys.shutdown()
		}),
	)
}

func (sys *system) shutdown() {
	for _, reg := range sys.regs {
		reg.Close()
	}
	sys.regs = nil
	sys.d.RequestStop()
}

// bridgeInputs forwards hal activity onto the loop's pending bitmask.
// Each goroutine only signals; all servicing stays on the loop.
func (sys *system) bridgeInputs() {
	d := sys.d
	in := sys.h.Input()

	bridge := func(ch <-chan struct{}, m event.Mask) {
		go func() {
			for range ch {
				d.Signal(m)
			}
		}()
	}
	bridge(in.SwitchActivity(), event.EvtSwitches)
	bridge(in.EncoderActivity(), event.EvtEncoder)
	bridge(in.TouchSample(), event.EvtTouch)
	bridge(in.FrameSync(), event.EvtLCDFrameSync)

	go func() {
		for range sys.h.RTC().Ticks() {
			d.Signal(event.EvtRTCTick)
		}
	}()
}
