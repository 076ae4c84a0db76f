package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Steer maps an input snapshot to the player's horizontal velocity and
// whether a jump is requested. Directional holds are evaluated first and
// the pointer second, so an active pointer overrides the holds.
func Steer(in core.InputState, p Player, cam Camera, speed float64) (vx float64, jump bool) {
	vx = p.Vel.X

	switch {
	case in.Left && in.Right:
		vx = speed // Right is checked last
	case in.Left:
		vx = -speed
	case in.Right:
		vx = speed
	case !in.PointerActive:
		vx = 0
	}

	if in.PointerActive {
		c := p.Center()
		angle := math.Atan2(cam.ToWorld(in.PointerY)-c.Y, in.PointerX-c.X)
		vx = math.Cos(angle) * speed
	}

	return vx, in.Up || in.PointerActive
}
