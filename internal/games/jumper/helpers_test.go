package jumper

import (
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// seqRand replays a fixed sequence of values, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func constRand(v float64) *seqRand {
	return &seqRand{vals: []float64{v}}
}

func newStepClock() *core.ManualClock {
	return core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CanvasW:  600,
		CanvasH:  800,
		TickRate: 60,
		Seed:     42,
	}
}

// newTestGame creates a game on the default config with platforms spawned
// at x=0, well clear of the centred player.
func newTestGame(opts ...Option) *Game {
	base := []Option{
		WithConfig(config.DefaultJumperConfig()),
		WithRand(constRand(0)),
		WithClock(newStepClock()),
	}
	g := New(append(base, opts...)...)
	g.Reset(testRuntime())
	return g
}

// settle steps the game without input until the player rests on a platform.
func settle(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step(core.InputState{})
	}
}
