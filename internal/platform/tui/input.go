package tui

import (
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// DefaultHoldWindow is how long a key press counts as held. Terminals
// only report presses and auto-repeats, never releases, so a key is held
// while repeats keep arriving within this window.
const DefaultHoldWindow = 180 * time.Millisecond

// Control is a holdable game control.
type Control uint8

const (
	ControlLeft Control = iota
	ControlRight
	ControlJump
)

// InputTracker turns terminal key presses and mouse events into the
// per-tick InputState the game expects.
type InputTracker struct {
	hold time.Duration

	lastPress [3]time.Time // Indexed by Control
	pause     bool         // One-shot, consumed by the next snapshot

	pointer  bool
	pointerX float64
	pointerY float64
}

// NewInputTracker creates a tracker. A non-positive hold uses DefaultHoldWindow.
func NewInputTracker(hold time.Duration) *InputTracker {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &InputTracker{hold: hold}
}

// Press records a press or auto-repeat of c at now.
// Pressing one direction releases the other immediately.
func (t *InputTracker) Press(c Control, now time.Time) {
	switch c {
	case ControlLeft:
		t.lastPress[ControlRight] = time.Time{}
	case ControlRight:
		t.lastPress[ControlLeft] = time.Time{}
	}
	t.lastPress[c] = now
}

// TogglePause requests a pause toggle on the next tick.
func (t *InputTracker) TogglePause() {
	t.pause = true
}

// PointerDown starts a drag at canvas coordinates (x, y).
func (t *InputTracker) PointerDown(x, y float64) {
	t.pointer = true
	t.pointerX, t.pointerY = x, y
}

// PointerMove updates the pointer position while it is down.
func (t *InputTracker) PointerMove(x, y float64) {
	if t.pointer {
		t.pointerX, t.pointerY = x, y
	}
}

// PointerUp ends the drag.
func (t *InputTracker) PointerUp() {
	t.pointer = false
}

// Reset releases everything.
func (t *InputTracker) Reset() {
	*t = InputTracker{hold: t.hold}
}

// held reports whether c was pressed within the hold window.
func (t *InputTracker) held(c Control, now time.Time) bool {
	last := t.lastPress[c]
	return !last.IsZero() && now.Sub(last) < t.hold
}

// Snapshot returns the input for a tick at now and consumes one-shot
// requests.
func (t *InputTracker) Snapshot(now time.Time) core.InputState {
	in := core.InputState{
		Left:          t.held(ControlLeft, now),
		Right:         t.held(ControlRight, now),
		Up:            t.held(ControlJump, now),
		PointerActive: t.pointer,
		Pause:         t.pause,
	}
	if t.pointer {
		in.PointerX, in.PointerY = t.pointerX, t.pointerY
	}
	t.pause = false
	return in
}

// CellToCanvas maps the centre of terminal cell (x, y) on a screen of
// screenW x screenH cells to canvas coordinates.
func CellToCanvas(x, y, screenW, screenH int, canvasW, canvasH float64) (float64, float64) {
	if screenW <= 0 || screenH <= 0 {
		return 0, 0
	}
	cx := (float64(x) + 0.5) * canvasW / float64(screenW)
	cy := (float64(y) + 0.5) * canvasH / float64(screenH)
	return core.ClampF(cx, 0, canvasW), core.ClampF(cy, 0, canvasH)
}
