package ui

import "image/color"

var (
	colorText      = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	colorDim       = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	colorAccent    = color.RGBA{R: 0x00, G: 0xA0, B: 0xFF, A: 0xFF}
	colorButton    = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xFF}
	colorButtonHot = color.RGBA{R: 0x30, G: 0x30, B: 0x48, A: 0xFF}
)

// Label shows one line of text. It consumes nothing.
type Label struct {
	NopBehavior
	text string
}

// NewLabel returns a label.
func NewLabel(text string) *Label { return &Label{text: text} }

// SetText replaces the label text. Event-loop context only.
func (l *Label) SetText(text string) { l.text = text }

// Text returns the current text.
func (l *Label) Text() string { return l.text }

func (l *Label) Draw(p *Painter, r Rect, focused bool) {
	p.DrawText(r.X, r.Y+r.H-2, l.text, colorText)
}

// Button fires an action when selected or when a touch gesture that
// started on it ends.
type Button struct {
	text    string
	pressed bool

	// OnPress runs on the event loop when the button fires.
	OnPress func()
}

// NewButton returns a button.
func NewButton(text string, onPress func()) *Button {
	return &Button{text: text, OnPress: onPress}
}

func (b *Button) AcceptsFocus() bool { return true }

func (b *Button) OnTouch(ev TouchEvent) bool {
	switch ev.Type {
	case TouchStart:
		b.pressed = true
	case TouchEnd:
		b.pressed = false
		b.fire()
	}
	return true
}

func (b *Button) OnKey(key KeyEvent) bool {
	if key != KeySelect {
		return false
	}
	b.fire()
	return true
}

func (b *Button) OnEncoder(EncoderEvent) bool { return false }

func (b *Button) fire() {
	if b.OnPress != nil {
		b.OnPress()
	}
}

func (b *Button) Draw(p *Painter, r Rect, focused bool) {
	bg := colorButton
	if b.pressed {
		bg = colorButtonHot
	}
	p.FillRect(r, bg)
	border := colorDim
	if focused {
		border = colorAccent
	}
	p.DrawRectOutline(r, border)
	w := p.TextWidth(b.text)
	p.DrawText(r.X+(r.W-w)/2, r.Y+r.H/2+2, b.text, colorText)
}

// StatusBar shows a title on the left and a status field on the right.
type StatusBar struct {
	NopBehavior
	title  string
	status string
}

// NewStatusBar returns a status bar.
func NewStatusBar(title string) *StatusBar { return &StatusBar{title: title} }

// SetStatus replaces the right-hand field. Event-loop context only.
func (s *StatusBar) SetStatus(status string) { s.status = status }

func (s *StatusBar) Draw(p *Painter, r Rect, focused bool) {
	p.FillRect(r, colorButton)
	p.DrawText(r.X+2, r.Y+r.H-2, s.title, colorAccent)
	w := p.TextWidth(s.status)
	p.DrawText(r.X+r.W-w-2, r.Y+r.H-2, s.status, colorDim)
}
