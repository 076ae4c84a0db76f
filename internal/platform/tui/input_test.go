package tui

import (
	"testing"
	"time"
)

func TestInputTrackerHoldWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewInputTracker(100 * time.Millisecond)

	tr.Press(ControlLeft, start)

	if in := tr.Snapshot(start.Add(50 * time.Millisecond)); !in.Left {
		t.Error("left should be held within the window")
	}
	if in := tr.Snapshot(start.Add(150 * time.Millisecond)); in.Left {
		t.Error("left should be released after the window")
	}

	// Auto-repeat extends the hold
	tr.Press(ControlLeft, start.Add(140*time.Millisecond))
	if in := tr.Snapshot(start.Add(200 * time.Millisecond)); !in.Left {
		t.Error("repeat should keep left held")
	}
}

func TestInputTrackerOppositeDirections(t *testing.T) {
	now := time.Now()
	tr := NewInputTracker(0)

	tr.Press(ControlLeft, now)
	tr.Press(ControlRight, now)
	in := tr.Snapshot(now)
	if in.Left || !in.Right {
		t.Errorf("got left=%v right=%v, want only right", in.Left, in.Right)
	}

	tr.Press(ControlLeft, now)
	in = tr.Snapshot(now)
	if !in.Left || in.Right {
		t.Errorf("got left=%v right=%v, want only left", in.Left, in.Right)
	}
}

func TestInputTrackerJumpIndependent(t *testing.T) {
	now := time.Now()
	tr := NewInputTracker(0)

	tr.Press(ControlRight, now)
	tr.Press(ControlJump, now)
	in := tr.Snapshot(now)
	if !in.Right || !in.Up {
		t.Errorf("got %+v, want right and up", in)
	}
}

func TestInputTrackerPauseIsOneShot(t *testing.T) {
	now := time.Now()
	tr := NewInputTracker(0)

	tr.TogglePause()
	if !tr.Snapshot(now).Pause {
		t.Error("first snapshot should carry the pause")
	}
	if tr.Snapshot(now).Pause {
		t.Error("pause should be consumed")
	}
}

func TestInputTrackerPointer(t *testing.T) {
	now := time.Now()
	tr := NewInputTracker(0)

	tr.PointerMove(10, 10)
	if in := tr.Snapshot(now); in.PointerActive || in.PointerX != 0 {
		t.Errorf("motion without press should be ignored: %+v", in)
	}

	tr.PointerDown(100, 200)
	tr.PointerMove(150, 250)
	in := tr.Snapshot(now)
	if !in.PointerActive || in.PointerX != 150 || in.PointerY != 250 {
		t.Errorf("got %+v, want active pointer at (150, 250)", in)
	}

	tr.PointerUp()
	in = tr.Snapshot(now)
	if in.PointerActive || in.PointerX != 0 || in.PointerY != 0 {
		t.Errorf("got %+v, want released pointer", in)
	}
}

func TestInputTrackerReset(t *testing.T) {
	now := time.Now()
	tr := NewInputTracker(time.Second)
	tr.Press(ControlJump, now)
	tr.PointerDown(1, 1)
	tr.TogglePause()

	tr.Reset()
	if in := tr.Snapshot(now); !in.Neutral() {
		t.Errorf("got %+v after reset, want neutral", in)
	}
	if tr.hold != time.Second {
		t.Errorf("hold = %v, reset should keep it", tr.hold)
	}
}

func TestCellToCanvas(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY float64
	}{
		{"top left", 0, 0, 5, 10},
		{"centre", 30, 20, 305, 410},
		{"bottom right", 59, 39, 595, 790},
		{"outside clamps", 100, 100, 600, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := CellToCanvas(tt.x, tt.y, 60, 40, 600, 800)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CellToCanvas(%d, %d) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}

	if x, y := CellToCanvas(1, 1, 0, 0, 600, 800); x != 0 || y != 0 {
		t.Errorf("empty screen = (%v, %v), want (0, 0)", x, y)
	}
}
