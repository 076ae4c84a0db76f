package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// epoch is where every driver clock starts. Only differences matter.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Driver steps a game on a manual clock, advancing it by each frame's
// duration. Live play and replays go through the same path, which is
// what makes a recording reproducible.
type Driver struct {
	Game    registry.Game
	Runtime core.RuntimeConfig
	Initial config.JumperConfig // Configuration the run started with

	clock *core.ManualClock
	rec   *Recorder

	scores []int
}

// NewDriver creates the game gameID with a fixed configuration and resets
// it. rec may be nil when nothing should be recorded.
func NewDriver(gameID string, cfg config.JumperConfig, rc core.RuntimeConfig, rec *Recorder) (*Driver, error) {
	d := &Driver{
		Runtime: rc,
		clock:   core.NewManualClock(epoch),
		rec:     rec,
	}

	g, err := registry.Create(gameID, registry.Env{
		Config:       &cfg,
		Clock:        d.clock,
		OnSessionEnd: func(score int) { d.scores = append(d.scores, score) },
	})
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	g.Reset(rc)
	d.Game = g
	d.Initial = g.Config()
	return d, nil
}

// Step advances the clock by dt and runs one tick.
func (d *Driver) Step(in core.InputState, dt time.Duration) core.StepResult {
	d.clock.Advance(dt)
	if d.rec != nil {
		d.rec.Record(in, dt)
	}
	return d.Game.Step(in)
}

// SetConfig queues a configuration change on the game and records it.
func (d *Driver) SetConfig(cfg config.JumperConfig) {
	if d.rec != nil {
		d.rec.Reload(cfg)
	}
	d.Game.SetConfig(cfg)
}

// Recorder returns the driver's recorder, nil if it has none.
func (d *Driver) Recorder() *Recorder {
	return d.rec
}

// Run packages the recording for storage. It returns nil when the driver
// records nothing or the recording is incomplete.
func (d *Driver) Run() *storage.Run {
	if d.rec == nil || !d.rec.Complete() || d.rec.Len() == 0 {
		return nil
	}
	return d.rec.Run(d.Game, d.Runtime, d.Initial)
}

// Result summarizes a headless run.
type Result struct {
	Ticks      int
	Sessions   int   // Sessions started, including the one still running
	Scores     []int // Final score of every terminated session, in order
	FinalScore int   // Score of the running session when input ran out
}

// Result summarizes what the driver has seen so far.
func (d *Driver) Result(ticks int) Result {
	return Result{
		Ticks:      ticks,
		Sessions:   d.Game.Sessions(),
		Scores:     append([]int(nil), d.scores...),
		FinalScore: d.Game.State().Score,
	}
}

// Source yields the input of each tick. ok is false when input ran out.
type Source interface {
	Next(tick int) (frame core.Frame, ok bool)
}

// Drive feeds src into the driver until it runs out or limit ticks have
// run (limit 0 means no limit). Reloads are applied before their tick.
func (d *Driver) Drive(src Source, reloads []storage.Reload, limit int) Result {
	next := 0
	tick := 0
	for limit == 0 || tick < limit {
		frame, ok := src.Next(tick)
		if !ok {
			break
		}
		for next < len(reloads) && reloads[next].Tick <= tick {
			d.SetConfig(reloads[next].Config)
			next++
		}
		d.Step(frame.In, frame.DT)
		tick++
	}
	return d.Result(tick)
}

// Frames replays a fixed frame sequence.
type Frames []core.Frame

// Next returns frame tick.
func (f Frames) Next(tick int) (core.Frame, bool) {
	if tick >= len(f) {
		return core.Frame{}, false
	}
	return f[tick], true
}

// Replay re-simulates a stored run and returns its outcome.
func Replay(run *storage.Run) (Result, error) {
	rc := core.RuntimeConfig{
		CanvasW:  run.CanvasW,
		CanvasH:  run.CanvasH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	}

	d, err := NewDriver(run.GameID, run.Config, rc, nil)
	if err != nil {
		return Result{}, err
	}
	return d.Drive(Frames(run.Frames), run.Reloads, 0), nil
}

// Verify replays a run and checks it ends where the recording did.
func Verify(run *storage.Run) (Result, error) {
	res, err := Replay(run)
	if err != nil {
		return res, err
	}
	if res.Sessions != run.Sessions || res.FinalScore != run.FinalScore {
		return res, fmt.Errorf("replay: run %s diverged: recorded %d sessions ending at %d, replayed %d ending at %d",
			run.ID, run.Sessions, run.FinalScore, res.Sessions, res.FinalScore)
	}
	return res, nil
}
