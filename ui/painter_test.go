package ui

import (
	"testing"

	"kite/hal"
)

type testFramebuffer struct {
	buf      []byte
	presents int
}

func newTestFramebuffer() *testFramebuffer {
	return &testFramebuffer{buf: make([]byte, 240*320*2)}
}

func (f *testFramebuffer) Width() int              { return 240 }
func (f *testFramebuffer) Height() int             { return 320 }
func (f *testFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFramebuffer) StrideBytes() int        { return 240 * 2 }
func (f *testFramebuffer) Buffer() []byte          { return f.buf }
func (f *testFramebuffer) ClearRGB(r, g, b uint8) {
	for i := range f.buf {
		f.buf[i] = 0
	}
}
func (f *testFramebuffer) Present() error {
	f.presents++
	return nil
}

// drawSpy records the order widgets were painted in.
type drawSpy struct {
	NopBehavior
	name string
	log  *[]string
}

func (s *drawSpy) Draw(p *Painter, r Rect, focused bool) {
	*s.log = append(*s.log, s.name)
}

func TestPaintTreeDrawOrder(t *testing.T) {
	var log []string
	tr := NewTree(4)
	root := tr.AddRoot(Rect{0, 0, 240, 320}, &drawSpy{name: "root", log: &log})
	panel := tr.AddChild(root, Rect{0, 0, 240, 160}, &drawSpy{name: "panel", log: &log})
	tr.AddChild(panel, Rect{0, 0, 100, 100}, &drawSpy{name: "inner", log: &log})
	tr.AddChild(root, Rect{0, 160, 240, 160}, &drawSpy{name: "sibling", log: &log})

	fb := newTestFramebuffer()
	p := NewPainter(fb)
	p.PaintTree(tr, root, NoNode)

	want := []string{"root", "panel", "inner", "sibling"}
	if len(log) != len(want) {
		t.Fatalf("expected paint order %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected paint order %v, got %v", want, log)
		}
	}
	if fb.presents != 1 {
		t.Fatalf("expected one present per paint, got %d", fb.presents)
	}
}

func TestPaintTreeSkipsHiddenSubtree(t *testing.T) {
	var log []string
	tr := NewTree(3)
	root := tr.AddRoot(Rect{0, 0, 240, 320}, &drawSpy{name: "root", log: &log})
	panel := tr.AddChild(root, Rect{0, 0, 240, 160}, &drawSpy{name: "panel", log: &log})
	tr.AddChild(panel, Rect{0, 0, 100, 100}, &drawSpy{name: "inner", log: &log})

	tr.SetHidden(panel, true)
	p := NewPainter(newTestFramebuffer())
	p.PaintTree(tr, root, NoNode)

	if len(log) != 1 || log[0] != "root" {
		t.Fatalf("expected hidden subtree unpainted, got %v", log)
	}
}

func TestFillRectClipsToFramebuffer(t *testing.T) {
	fb := newTestFramebuffer()
	p := NewPainter(fb)

	// Must not panic reaching outside the buffer.
	p.FillRect(Rect{X: -20, Y: -20, W: 400, H: 500}, colorText)
	p.FillRect(Rect{X: 239, Y: 319, W: 10, H: 10}, colorText)

	// The last in-bounds pixel was written.
	off := 319*fb.StrideBytes() + 239*2
	if fb.buf[off] == 0 && fb.buf[off+1] == 0 {
		t.Fatal("expected corner pixel filled")
	}
}
