package replay

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Bot is a scripted player: it keeps jumping and drifts left or right,
// switching direction at random intervals. Its input depends only on the
// seed and the tick, so runs are repeatable.
type Bot struct {
	rng   *rand.Rand
	dt    time.Duration
	ticks int

	dir      int // -1 left, 0 none, 1 right
	holdLeft int // Ticks until the next direction change
}

// NewBot creates a bot producing ticks frames of duration dt.
func NewBot(seed int64, dt time.Duration, ticks int) *Bot {
	return &Bot{
		rng:   rand.New(rand.NewSource(seed)),
		dt:    dt,
		ticks: ticks,
	}
}

// Next returns the bot's input for tick.
func (b *Bot) Next(tick int) (core.Frame, bool) {
	if b.ticks > 0 && tick >= b.ticks {
		return core.Frame{}, false
	}

	if b.holdLeft <= 0 {
		b.dir = b.rng.Intn(3) - 1
		b.holdLeft = 10 + b.rng.Intn(50)
	}
	b.holdLeft--

	in := core.InputState{Up: true}
	switch b.dir {
	case -1:
		in.Left = true
	case 1:
		in.Right = true
	}
	return core.Frame{In: in, DT: b.dt}, true
}
