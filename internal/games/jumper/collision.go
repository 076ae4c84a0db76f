package jumper

// Contact reports whether the player's path this tick crosses the
// platform's top surface while their horizontal spans overlap. The check
// is swept (current bottom plus this tick's fall), so fast falls cannot
// tunnel through thin platforms.
func Contact(p Player, pl Platform) bool {
	bottom := p.Box().Bottom()
	top := pl.Top()
	return bottom <= top &&
		bottom+p.Vel.Y >= top &&
		p.Box().OverlapsX(pl.Box())
}

// Resolver applies landing and jump rules to a session.
type Resolver struct {
	JumpVelocity    float64 // Velocity.y for a multiplier-1 jump
	BoostMultiplier float64 // Multiplier of the forced jump off a boost platform
}

// Jump launches the player with n times the jump velocity.
// Unforced jumps need canJump and a supporting platform under the player;
// forced jumps skip both checks. Returns whether the jump happened.
func (r Resolver) Jump(s *Session, n float64, forced bool) bool {
	if !forced {
		if !s.CanJump || !s.supported() {
			return false
		}
	}
	s.Player.Vel.Y = r.JumpVelocity * n
	s.CanJump = false
	return true
}

// Resolve tests the player against every platform in generation order.
// All platforms are tested against the velocity the player entered the
// tick with, so when several are hit at once the last one wins.
// Returns true if the player landed after being airborne.
func (r Resolver) Resolve(s *Session) (landed bool) {
	wasAirborne := !s.CanJump
	probe := s.Player

	for i := range s.Platforms {
		pl := &s.Platforms[i]
		if !Contact(probe, *pl) {
			continue
		}

		s.Player.Vel.Y = 0
		s.CanJump = true
		s.CurrentPlatformID = pl.ID
		landed = wasAirborne

		if pl.Kind == KindBoost {
			r.Jump(s, r.BoostMultiplier, true)
		}
	}
	return landed
}
