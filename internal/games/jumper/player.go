package jumper

import (
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Player is the controllable box. Position is world space, y grows downward.
type Player struct {
	Pos core.Vec2
	Vel core.Vec2
	W   float64
	H   float64
}

// NewPlayer places a player horizontally centred, a small gap above the
// ground platform, already falling so it settles onto the ground.
func NewPlayer(cfg config.JumperConfig, canvasW, canvasH float64) Player {
	w, h := cfg.Player.Width, cfg.Player.Height
	groundTop := canvasH - cfg.Platforms.GroundHeight
	return Player{
		Pos: core.Vec2{X: canvasW/2 - w/2, Y: groundTop - cfg.Player.StartGap - h},
		Vel: core.Vec2{X: 0, Y: cfg.Player.StartFallVY},
		W:   w,
		H:   h,
	}
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.Box{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Center returns the centre of the player's box.
func (p Player) Center() core.Vec2 {
	return p.Box().Center()
}

// Integrate advances position by velocity, then applies gravity.
// Gravity is never suspended; platforms cancel it on contact.
func (p *Player) Integrate(gravity float64) {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel.Y += gravity
}

// WrapHorizontal keeps x in [-W, canvasW]: leaving one side re-enters
// from the other.
func (p *Player) WrapHorizontal(canvasW float64) {
	if p.Pos.X+p.W < 0 {
		p.Pos.X = canvasW
	} else if p.Pos.X > canvasW {
		p.Pos.X = -p.W
	}
}

// FellOut reports whether the player has dropped below the visible world.
// margin accounts for the ground thickness.
func (p Player) FellOut(scrollOffset, margin, canvasH float64) bool {
	return p.Pos.Y-scrollOffset-margin > canvasH
}
