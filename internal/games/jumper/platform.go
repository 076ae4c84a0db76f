package jumper

import (
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Kind selects a platform's behavior.
type Kind uint8

const (
	KindNormal Kind = iota // Stationary
	KindMoving             // Slides horizontally, bouncing off the canvas edges
	KindBoost              // Launches the player and fades out
)

// String returns the platform kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindMoving:
		return "moving"
	case KindBoost:
		return "boost"
	default:
		return "unknown"
	}
}

// Color returns the fill color used for platforms of this kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindMoving:
		return core.ColorBlue
	case KindBoost:
		return core.ColorYellow
	default:
		return core.ColorBrown
	}
}

// Platform is a surface the player can land on.
type Platform struct {
	ID      int
	Pos     core.Vec2
	W, H    float64
	Kind    Kind
	Color   core.Color
	Vel     core.Vec2 // Non-zero X only for moving platforms
	Opacity float64   // Rendering only; collisions ignore it

	// spawnedAt is stamped on the first update of a boost platform.
	spawnedAt time.Time

	MarkedForDeletion bool
}

// Box returns the platform's bounding box.
func (p Platform) Box() core.Box {
	return core.Box{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Top returns the y-coordinate of the landing surface.
func (p Platform) Top() float64 {
	return p.Pos.Y
}

// Update advances per-kind behavior by one tick.
func (p *Platform) Update(now time.Time, canvasW float64, fade config.BoostConfig) {
	switch p.Kind {
	case KindNormal:
		// Stationary
	case KindMoving:
		p.Pos.X += p.Vel.X
		if p.Pos.X <= 0 {
			p.Pos.X = 0
			p.Vel.X = abs(p.Vel.X)
		} else if p.Pos.X+p.W >= canvasW {
			p.Pos.X = canvasW - p.W
			p.Vel.X = -abs(p.Vel.X)
		}
	case KindBoost:
		if p.spawnedAt.IsZero() {
			p.spawnedAt = now
		}
		opacity, expired := FadeOpacity(now.Sub(p.spawnedAt), fade)
		p.Opacity = opacity
		if expired {
			p.MarkedForDeletion = true
		}
	}
}

// Delay pushes a started fade back by d, so time spent paused does not
// count towards it.
func (p *Platform) Delay(d time.Duration) {
	if !p.spawnedAt.IsZero() {
		p.spawnedAt = p.spawnedAt.Add(d)
	}
}

// FadeOpacity maps time since a boost platform appeared to its opacity.
// Each level lasts one step; once all levels have elapsed the opacity is 0
// and expired is true. It depends on elapsed time only, never on tick count.
func FadeOpacity(elapsed time.Duration, fade config.BoostConfig) (opacity float64, expired bool) {
	if elapsed < 0 {
		elapsed = 0
	}
	if fade.StepDuration <= 0 || len(fade.Levels) == 0 {
		return 0, true
	}

	step := int(elapsed / fade.StepDuration)
	if step >= len(fade.Levels) {
		return 0, true
	}
	return fade.Levels[step], false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
