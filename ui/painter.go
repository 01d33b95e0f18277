package ui

import (
	"image/color"

	"kite/hal"

	"tinygo.org/x/tinyfont"
)

// Painter draws the widget tree onto the framebuffer. It runs only on
// the event loop, once per LCD frame sync.
type Painter struct {
	fb   hal.Framebuffer
	disp *fbDisplay
	font tinyfont.Fonter
}

// NewPainter returns a painter for the framebuffer.
func NewPainter(fb hal.Framebuffer) *Painter {
	return &Painter{
		fb:   fb,
		disp: &fbDisplay{fb: fb},
		font: &tinyfont.TomThumb,
	}
}

// PaintTree repaints the whole visible tree in draw order (parents
// below children, later siblings on top) and presents the result.
// Hidden subtrees are skipped.
func (p *Painter) PaintTree(t *Tree, root NodeID, focused NodeID) {
	if p.fb == nil {
		return
	}
	p.fb.ClearRGB(0, 0, 0)
	p.paintNode(t, root, focused)
	_ = p.fb.Present()
}

func (p *Painter) paintNode(t *Tree, id NodeID, focused NodeID) {
	if t.Hidden(id) {
		return
	}
	if d, ok := t.Behavior(id).(Drawer); ok {
		d.Draw(p, t.Rect(id), id == focused)
	}
	for _, child := range t.Children(id) {
		p.paintNode(t, child, focused)
	}
}

// FillRect fills a rectangle, clipped to the framebuffer.
func (p *Painter) FillRect(r Rect, c color.RGBA) {
	if p.fb == nil || p.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := p.fb.Buffer()
	if buf == nil {
		return
	}

	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > p.fb.Width() {
		x1 = p.fb.Width()
	}
	if y1 > p.fb.Height() {
		y1 = p.fb.Height()
	}

	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := p.fb.StrideBytes()
	for y := y0; y < y1; y++ {
		row := y * stride
		for x := x0; x < x1; x++ {
			off := row + x*2
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// DrawRectOutline draws a one-pixel border.
func (p *Painter) DrawRectOutline(r Rect, c color.RGBA) {
	p.FillRect(Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, c)
	p.FillRect(Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, c)
	p.FillRect(Rect{X: r.X, Y: r.Y, W: 1, H: r.H}, c)
	p.FillRect(Rect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}, c)
}

// DrawText draws one line with its baseline at (x, y).
func (p *Painter) DrawText(x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(p.disp, p.font, int16(x), int16(y), s, c)
}

// TextWidth measures one line in the painter's font.
func (p *Painter) TextWidth(s string) int {
	_, w := tinyfont.LineWidth(p.font, s)
	return int(w)
}
