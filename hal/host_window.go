//go:build !tinygo

package hal

import (
	"image"

	"kite/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays the framebuffer and
// maps mouse/keyboard/wheel onto the panel's touch, switch, and encoder
// sources. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Kite (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

var hostSwitchKeys = [NumSwitches]ebiten.Key{
	SwitchRight:  ebiten.KeyArrowRight,
	SwitchLeft:   ebiten.KeyArrowLeft,
	SwitchDown:   ebiten.KeyArrowDown,
	SwitchUp:     ebiten.KeyArrowUp,
	SwitchSelect: ebiten.KeyEnter,
	SwitchBack:   ebiten.KeyBackspace,
}

func (g *hostGame) Update() error {
	g.pollSwitches()
	g.pollEncoder()
	g.pollTouch()
	g.h.rtc.step()

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.h.sd.toggle()
	}

	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollSwitches() {
	var state SwitchesState
	activity := false
	for i, key := range hostSwitchKeys {
		if ebiten.IsKeyPressed(key) {
			state |= 1 << uint(i)
		}
		if inpututil.IsKeyJustPressed(key) {
			activity = true
		}
	}
	g.h.ctl.setSwitches(state)
	if activity {
		notifyEdge(g.h.in.switchCh)
	}
}

func (g *hostGame) pollEncoder() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	delta := int32(1)
	if dy < 0 {
		delta = -1
	}
	g.h.ctl.turnEncoder(delta)
	notifyEdge(g.h.in.encoderCh)
}

// pollTouch refreshes the synthetic ADC frame each tick, emulating a
// free-running conversion timer. The pseudo-panel is linear: 0..1 over
// the framebuffer, with the vertical axis inverted as on real glass.
func (g *hostGame) pollTouch() {
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	x, y := ebiten.CursorPosition()
	xNorm := float32(x) / float32(g.h.fb.width)
	yNorm := 1 - float32(y)/float32(g.h.fb.height)
	g.h.adc.setPointer(xNorm, yNorm, pressed)
	notifyEdge(g.h.in.touchCh)
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	notifyEdge(g.h.in.frameCh)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
