//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	disp   *hostDisplay
	adc    *hostTouch
	ctl    *hostControls
	sd     *hostSD
	rtc    *hostRTC
	in     *hostInput
	link   *hostLink
}

// New returns a host HAL implementation backed by the desktop window
// (or nothing at all in headless mode).
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	fb := newHostFramebuffer(240, 320)
	h := &hostHAL{
		logger: logger,
		fb:     fb,
		disp:   &hostDisplay{fb: fb, logger: logger},
		adc:    &hostTouch{},
		ctl:    &hostControls{},
		sd:     &hostSD{},
		rtc:    newHostRTC(),
		in:     newHostInput(),
		link:   &hostLink{},
	}
	h.sd.present.Store(true)
	return h
}

func (h *hostHAL) Logger() Logger      { return h.logger }
func (h *hostHAL) Display() Display    { return h.disp }
func (h *hostHAL) Touch() TouchADC     { return h.adc }
func (h *hostHAL) Controls() Controls  { return h.ctl }
func (h *hostHAL) SDCard() SDCard      { return h.sd }
func (h *hostHAL) RTC() RTC            { return h.rtc }
func (h *hostHAL) Input() InputEvents  { return h.in }
func (h *hostHAL) CoreLink() CoreLink  { return h.link }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(w, h int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  w,
		height: h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565From888(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	f.mu.Lock()
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
	f.mu.Unlock()
}

func (f *hostFramebuffer) Present() error { return nil }

// snapshotRGB565 copies the framebuffer for the window renderer.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	copy(dst, f.buf)
	f.mu.Unlock()
}

func rgb565From888(r, g, b uint8) uint16 {
	return (uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8((p >> 11) & 0x1F << 3)
	g = uint8((p >> 5) & 0x3F << 2)
	b = uint8(p & 0x1F << 3)
	return r, g, b
}

type hostDisplay struct {
	fb     *hostFramebuffer
	logger *hostLogger

	asleep    atomic.Bool
	backlight atomic.Bool
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }

func (d *hostDisplay) Sleep() {
	d.asleep.Store(true)
	d.logger.WriteLineString("display: sleep")
}

func (d *hostDisplay) Wake() {
	d.asleep.Store(false)
	d.logger.WriteLineString("display: wake")
}

func (d *hostDisplay) Backlight(on bool) {
	d.backlight.Store(on)
	if on {
		d.logger.WriteLineString("backlight: on")
	} else {
		d.logger.WriteLineString("backlight: off")
	}
}

// hostTouch holds the latest synthetic frame built from mouse state.
type hostTouch struct {
	mu    sync.Mutex
	frame TouchFrame
}

func (t *hostTouch) Frame() TouchFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// setPointer synthesizes a firm-contact frame for a pressed pointer at
// normalized panel coordinates, or a no-contact frame when released.
func (t *hostTouch) setPointer(xNorm, yNorm float32, pressed bool) {
	const simContactR = 50
	f := SyntheticFrame(xNorm, yNorm, simContactR, pressed)
	t.mu.Lock()
	t.frame = f
	t.mu.Unlock()
}

type hostControls struct {
	switches atomic.Uint32
	encoder  atomic.Uint32
}

func (c *hostControls) Switches() SwitchesState     { return SwitchesState(c.switches.Load()) }
func (c *hostControls) EncoderPosition() uint32     { return c.encoder.Load() }
func (c *hostControls) setSwitches(s SwitchesState) { c.switches.Store(uint32(s)) }
func (c *hostControls) turnEncoder(delta int32)     { c.encoder.Add(uint32(delta)) }

type hostSD struct {
	present atomic.Bool
}

func (s *hostSD) Present() bool { return s.present.Load() }
func (s *hostSD) toggle()       { s.present.Store(!s.present.Load()) }

type hostRTC struct {
	ch   chan uint64
	seq  uint64
	last time.Time
	acc  time.Duration
}

func newHostRTC() *hostRTC {
	return &hostRTC{ch: make(chan uint64, 16)}
}

func (t *hostRTC) Ticks() <-chan uint64 { return t.ch }

// step accumulates wall time and emits one tick per elapsed second.
func (t *hostRTC) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now
	for t.acc >= time.Second {
		t.acc -= time.Second
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

type hostInput struct {
	switchCh  chan struct{}
	encoderCh chan struct{}
	touchCh   chan struct{}
	frameCh   chan struct{}
}

func newHostInput() *hostInput {
	return &hostInput{
		switchCh:  make(chan struct{}, 8),
		encoderCh: make(chan struct{}, 8),
		touchCh:   make(chan struct{}, 8),
		frameCh:   make(chan struct{}, 2),
	}
}

func (in *hostInput) SwitchActivity() <-chan struct{}  { return in.switchCh }
func (in *hostInput) EncoderActivity() <-chan struct{} { return in.encoderCh }
func (in *hostInput) TouchSample() <-chan struct{}     { return in.touchCh }
func (in *hostInput) FrameSync() <-chan struct{}       { return in.frameCh }

func notifyEdge(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// hostLink models the companion-core notification line. The simulated
// baseband raises it with Raise after publishing into a shared queue.
type hostLink struct {
	notify atomic.Value // func()
}

func (l *hostLink) Enable(notify func()) { l.notify.Store(notify) }

func (l *hostLink) Disable() { l.notify.Store(func() {}) }

// Raise invokes the bound notification callback, as the companion core
// would by pulsing the interrupt line.
func (l *hostLink) Raise() {
	if v := l.notify.Load(); v != nil {
		if fn, ok := v.(func()); ok && fn != nil {
			fn()
		}
	}
}
