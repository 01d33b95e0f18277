//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync"
	"time"

	"tinygo.org/x/drivers/st7789"
	"tinygo.org/x/drivers/touch/resistive"
)

// Board wiring (RP2040 carrier):
//
//	SPI0 GP18 (SCK) / GP19 (SDO) -> LCD, CS GP17, DC GP16, RST GP20, BL GP21
//	Touch: YP GP26 (ADC0), XP GP27 (ADC1), YM GP5, XM GP6
//	Switches: GP7..GP12, active low with pull-ups
//	Encoder: A GP13, B GP14
//	SD card detect: GP15, active low
//	Baseband notify line: GP22, rising edge
type boardHAL struct {
	logger *uartLogger
	disp   *boardDisplay
	adc    *boardTouch
	ctl    *boardControls
	sd     *boardSD
	rtc    *boardRTC
	in     *boardInput
	link   *boardLink
}

// New returns the board HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	in := newBoardInput()
	h := &boardHAL{
		logger: &uartLogger{uart: uart},
		disp:   newBoardDisplay(),
		adc:    newBoardTouch(in),
		ctl:    newBoardControls(in),
		sd:     newBoardSD(),
		rtc:    newBoardRTC(),
		in:     in,
		link:   newBoardLink(),
	}
	return h
}

func (h *boardHAL) Logger() Logger     { return h.logger }
func (h *boardHAL) Display() Display   { return h.disp }
func (h *boardHAL) Touch() TouchADC    { return h.adc }
func (h *boardHAL) Controls() Controls { return h.ctl }
func (h *boardHAL) SDCard() SDCard     { return h.sd }
func (h *boardHAL) RTC() RTC           { return h.rtc }
func (h *boardHAL) Input() InputEvents { return h.in }
func (h *boardHAL) CoreLink() CoreLink { return h.link }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte{'\r', '\n'})
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte{'\r', '\n'})
}

const (
	boardWidth  = 240
	boardHeight = 320
)

type boardDisplay struct {
	lcd st7789.Device
	fb  *boardFramebuffer
}

func newBoardDisplay() *boardDisplay {
	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP4,
		Frequency: 62_500_000,
	})
	lcd := st7789.New(machine.SPI0,
		machine.GP20, // reset
		machine.GP16, // dc
		machine.GP17, // cs
		machine.GP21, // backlight
	)
	lcd.Configure(st7789.Config{
		Width:    boardWidth,
		Height:   boardHeight,
		Rotation: st7789.NO_ROTATION,
	})

	d := &boardDisplay{lcd: lcd}
	d.fb = &boardFramebuffer{
		w:      boardWidth,
		h:      boardHeight,
		stride: boardWidth * 2,
		buf:    make([]byte, boardWidth*boardHeight*2),
		lcd:    &d.lcd,
	}
	return d
}

func (d *boardDisplay) Framebuffer() Framebuffer { return d.fb }
func (d *boardDisplay) Sleep()                   { d.lcd.Sleep(true) }
func (d *boardDisplay) Wake()                    { d.lcd.Sleep(false) }
func (d *boardDisplay) Backlight(on bool)        { d.lcd.EnableBacklight(on) }

type boardFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	lcd    *st7789.Device
}

func (f *boardFramebuffer) Width() int          { return f.w }
func (f *boardFramebuffer) Height() int         { return f.h }
func (f *boardFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *boardFramebuffer) StrideBytes() int    { return f.stride }
func (f *boardFramebuffer) Buffer() []byte      { return f.buf }

func (f *boardFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565From888(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *boardFramebuffer) Present() error {
	return f.lcd.DrawRGBBitmap8(0, 0, f.buf, int16(f.w), int16(f.h))
}

func rgb565From888(r, g, b uint8) uint16 {
	return (uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F)
}

// boardTouch samples the 4-wire panel on a fixed tick. The resistive
// driver reports 16-bit-scaled positions and pressure; the readings are
// folded back into a raw frame so conditioning is identical on every
// platform.
type boardTouch struct {
	panel resistive.FourWire
	mu    sync.Mutex
	frame TouchFrame
	in    *boardInput
}

func newBoardTouch(in *boardInput) *boardTouch {
	t := &boardTouch{in: in}
	machine.InitADC()
	t.panel.Configure(&resistive.FourWireConfig{
		YP: machine.GP26,
		YM: machine.GP5,
		XP: machine.GP27,
		XM: machine.GP6,
	})
	go t.sampleLoop()
	return t
}

// Raw pressure below this is treated as no contact.
const touchZMin = 4096

func (t *boardTouch) sampleLoop() {
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for range tick.C {
		p := t.panel.ReadTouchPoint()
		contact := p.Z > touchZMin
		xNorm := float32(p.X) / 65535
		yNorm := float32(p.Y) / 65535
		// Estimated contact resistance falls as pressure rises.
		r := float32(SynthRPlate) * (65535 - float32(p.Z)) / (float32(p.Z) + 1)
		f := SyntheticFrame(xNorm, yNorm, r, contact)
		t.mu.Lock()
		t.frame = f
		t.mu.Unlock()
		notifyEdge(t.in.touchCh)
	}
}

func (t *boardTouch) Frame() TouchFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

var boardSwitchPins = [NumSwitches]machine.Pin{
	SwitchRight:  machine.GP7,
	SwitchLeft:   machine.GP8,
	SwitchDown:   machine.GP9,
	SwitchUp:     machine.GP10,
	SwitchSelect: machine.GP11,
	SwitchBack:   machine.GP12,
}

type boardControls struct {
	encoder uint32
	encA    machine.Pin
	encB    machine.Pin
}

func newBoardControls(in *boardInput) *boardControls {
	c := &boardControls{encA: machine.GP13, encB: machine.GP14}
	for _, pin := range boardSwitchPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
			notifyEdge(in.switchCh)
		})
	}
	c.encA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	c.encB.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	c.encA.SetInterrupt(machine.PinFalling|machine.PinRising, func(machine.Pin) {
		if c.encA.Get() == c.encB.Get() {
			c.encoder++
		} else {
			c.encoder--
		}
		notifyEdge(in.encoderCh)
	})
	return c
}

func (c *boardControls) Switches() SwitchesState {
	var s SwitchesState
	for i, pin := range boardSwitchPins {
		if !pin.Get() { // active low
			s |= 1 << uint(i)
		}
	}
	return s
}

func (c *boardControls) EncoderPosition() uint32 { return c.encoder }

type boardSD struct {
	detect machine.Pin
}

func newBoardSD() *boardSD {
	s := &boardSD{detect: machine.GP15}
	s.detect.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return s
}

func (s *boardSD) Present() bool { return !s.detect.Get() }

type boardRTC struct {
	ch  chan uint64
	seq uint64
}

func newBoardRTC() *boardRTC {
	t := &boardRTC{ch: make(chan uint64, 4)}
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for range tick.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *boardRTC) Ticks() <-chan uint64 { return t.ch }

type boardInput struct {
	switchCh  chan struct{}
	encoderCh chan struct{}
	touchCh   chan struct{}
	frameCh   chan struct{}
}

func newBoardInput() *boardInput {
	in := &boardInput{
		switchCh:  make(chan struct{}, 8),
		encoderCh: make(chan struct{}, 8),
		touchCh:   make(chan struct{}, 8),
		frameCh:   make(chan struct{}, 2),
	}
	// The panel has no vsync line wired; synthesize frame sync at 30 Hz.
	go func() {
		tick := time.NewTicker(33 * time.Millisecond)
		defer tick.Stop()
		for range tick.C {
			notifyEdge(in.frameCh)
		}
	}()
	return in
}

func (in *boardInput) SwitchActivity() <-chan struct{}  { return in.switchCh }
func (in *boardInput) EncoderActivity() <-chan struct{} { return in.encoderCh }
func (in *boardInput) TouchSample() <-chan struct{}     { return in.touchCh }
func (in *boardInput) FrameSync() <-chan struct{}       { return in.frameCh }

func notifyEdge(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// boardLink binds the baseband notify line to a rising-edge interrupt.
// The bound callback runs in interrupt context: it may only touch the
// ISR-safe queue indices and signal the event loop.
type boardLink struct {
	pin    machine.Pin
	notify func()
}

func newBoardLink() *boardLink {
	l := &boardLink{pin: machine.GP22}
	l.pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return l
}

func (l *boardLink) Enable(notify func()) {
	l.notify = notify
	l.pin.SetInterrupt(machine.PinRising, func(machine.Pin) {
		if l.notify != nil {
			l.notify()
		}
	})
}

func (l *boardLink) Disable() {
	l.pin.SetInterrupt(machine.PinRising, nil)
	l.notify = nil
}
