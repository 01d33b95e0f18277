package app

import (
	"fmt"

	"kite/event"
	"kite/hal"
	"kite/ipc"
	"kite/ui"
)

// screen is the demo front panel: a status bar, a tuning readout driven
// by the encoder, baseband telemetry labels, and two buttons.
type screen struct {
	tree  *ui.Tree
	root  ui.NodeID
	focus *ui.FocusManager

	status  *ui.StatusBar
	tuner   *tunerPanel
	channel *ui.Label
	rssi    *ui.Label
	sleep   *ui.Button
	off     *ui.Button
}

func buildScreen(fb hal.Framebuffer) *screen {
	w := fb.Width()
	h := fb.Height()

	scr := &screen{
		tree:  ui.NewTree(8),
		focus: ui.NewFocusManager(),
	}

	scr.tuner = &tunerPanel{freqKHz: 433_920}
	scr.root = scr.tree.AddRoot(ui.Rect{X: 0, Y: 0, W: w, H: h}, scr.tuner)

	scr.status = ui.NewStatusBar("KITE")
	scr.tree.AddChild(scr.root, ui.Rect{X: 0, Y: 0, W: w, H: 12}, scr.status)

	scr.tuner.label = ui.NewLabel(scr.tuner.freqText())
	scr.tree.AddChild(scr.root, ui.Rect{X: 8, Y: 24, W: w - 16, H: 10}, scr.tuner.label)

	scr.channel = ui.NewLabel("CH --")
	scr.tree.AddChild(scr.root, ui.Rect{X: 8, Y: 40, W: w - 16, H: 10}, scr.channel)

	scr.rssi = ui.NewLabel("RSSI --")
	scr.tree.AddChild(scr.root, ui.Rect{X: 8, Y: 52, W: w - 16, H: 10}, scr.rssi)

	scr.sleep = ui.NewButton("SLEEP", nil)
	sleepID := scr.tree.AddChild(scr.root, ui.Rect{X: 8, Y: h - 28, W: w/2 - 12, H: 20}, scr.sleep)

	scr.off = ui.NewButton("OFF", nil)
	scr.tree.AddChild(scr.root, ui.Rect{X: w/2 + 4, Y: h - 28, W: w/2 - 12, H: 20}, scr.off)

	scr.focus.SetFocus(sleepID)
	return scr
}

// bind attaches the actions that need the dispatcher.
func (scr *screen) bind(d *event.Dispatcher) {
	scr.sleep.OnPress = func() {
		d.SetDisplaySleep(true)
	}
	scr.off.OnPress = func() {
		msg := ipc.New(ipc.IDShutdown, nil)
		d.PostLocal(&msg)
	}
}

func (scr *screen) setSDCard(present bool) {
	if present {
		scr.status.SetStatus("SD")
	} else {
		scr.status.SetStatus("--")
	}
}

func (scr *screen) setChannelStats(peakCentiDB int32, saturated uint32) {
	scr.channel.SetText(fmt.Sprintf("CH %d.%02d DB SAT %d",
		peakCentiDB/100, abs32(peakCentiDB%100), saturated))
}

func (scr *screen) setRSSI(min, avg, max uint8) {
	scr.rssi.SetText(fmt.Sprintf("RSSI %d/%d/%d", min, avg, max))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// tunerPanel is the root behavior: it consumes encoder steps that no
// focused widget wanted and nudges the tuned frequency.
type tunerPanel struct {
	ui.NopBehavior
	freqKHz int64
	label   *ui.Label
}

// Step size per encoder detent, kHz.
const tuneStepKHz = 25

func (t *tunerPanel) OnEncoder(e ui.EncoderEvent) bool {
	t.freqKHz += int64(e) * tuneStepKHz
	if t.freqKHz < 0 {
		t.freqKHz = 0
	}
	if t.label != nil {
		t.label.SetText(t.freqText())
	}
	return true
}

func (t *tunerPanel) freqText() string {
	return fmt.Sprintf("%d.%03d MHZ", t.freqKHz/1000, t.freqKHz%1000)
}
