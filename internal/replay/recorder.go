// Package replay records the input fed to a game and drives games
// headlessly from recorded or scripted input.
package replay

import (
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// Recorder collects the frames and configuration changes of one run.
type Recorder struct {
	frames  []core.Frame
	reloads []storage.Reload
	limit   int
	full    bool
}

// NewRecorder creates a recorder holding at most limit frames.
// A limit of 0 means unlimited.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Record appends one tick. Once the limit is hit the recording is
// incomplete and further frames are dropped.
func (r *Recorder) Record(in core.InputState, dt time.Duration) {
	if r.full {
		return
	}
	if r.limit > 0 && len(r.frames) >= r.limit {
		r.full = true
		r.frames = nil
		r.reloads = nil
		return
	}
	r.frames = append(r.frames, core.Frame{In: in, DT: dt})
}

// Reload notes a configuration change taking effect before the next frame.
func (r *Recorder) Reload(cfg config.JumperConfig) {
	if r.full {
		return
	}
	r.reloads = append(r.reloads, storage.Reload{Tick: len(r.frames), Config: cfg})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Complete reports whether every tick since the start was recorded.
func (r *Recorder) Complete() bool {
	return !r.full
}

// Run packages the recording for storage.
func (r *Recorder) Run(g registry.Game, rc core.RuntimeConfig, initial config.JumperConfig) *storage.Run {
	w, h := g.Canvas()
	return &storage.Run{
		RunSummary: storage.RunSummary{
			GameID:     g.ID(),
			Seed:       rc.Seed,
			CanvasW:    w,
			CanvasH:    h,
			TickRate:   rc.TickRate,
			Ticks:      len(r.frames),
			Sessions:   g.Sessions(),
			FinalScore: g.State().Score,
		},
		Config:  initial,
		Reloads: append([]storage.Reload(nil), r.reloads...),
		Frames:  append([]core.Frame(nil), r.frames...),
	}
}
