package jumper

import (
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

func testResolver() Resolver {
	return Resolver{JumpVelocity: -15, BoostMultiplier: 3}
}

func fallingPlayer(x, bottom, vy float64) Player {
	return Player{Pos: core.Vec2{X: x, Y: bottom - 30}, Vel: core.Vec2{Y: vy}, W: 30, H: 30}
}

func TestContact(t *testing.T) {
	pl := Platform{ID: 1, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20}

	tests := []struct {
		name   string
		player Player
		want   bool
	}{
		{"falling onto top", fallingPlayer(120, 498, 5), true},
		{"resting exactly on top", fallingPlayer(120, 500, 0.5), true},
		{"not reaching top", fallingPlayer(120, 490, 5), false},
		{"already below top", fallingPlayer(120, 505, 5), false},
		{"rising through", fallingPlayer(120, 510, -10), false},
		{"fast fall does not tunnel", fallingPlayer(120, 460, 60), true},
		{"left of platform", fallingPlayer(50, 498, 5), false},
		{"touching left edge", fallingPlayer(70, 498, 5), true},
		{"touching right edge", fallingPlayer(200, 498, 5), true},
		{"right of platform", fallingPlayer(201, 498, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contact(tt.player, pl); got != tt.want {
				t.Errorf("Contact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveLanding(t *testing.T) {
	s := &Session{
		Player:    fallingPlayer(120, 498, 5),
		Platforms: []Platform{{ID: 7, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20, Kind: KindNormal}},
	}

	landed := testResolver().Resolve(s)
	if !landed {
		t.Error("expected a landing event")
	}
	if s.Player.Vel.Y != 0 {
		t.Errorf("vel.y = %v, want 0", s.Player.Vel.Y)
	}
	if !s.CanJump {
		t.Error("canJump should be true after landing")
	}
	if s.CurrentPlatformID != 7 {
		t.Errorf("score = %d, want 7", s.CurrentPlatformID)
	}
}

func TestResolveMiss(t *testing.T) {
	s := &Session{
		Player:            fallingPlayer(300, 498, 5),
		Platforms:         []Platform{{ID: 7, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20}},
		CurrentPlatformID: 3,
	}

	if testResolver().Resolve(s) {
		t.Error("unexpected landing")
	}
	if s.Player.Vel.Y != 5 || s.CanJump || s.CurrentPlatformID != 3 {
		t.Errorf("session changed on miss: %+v", s)
	}
}

func TestResolveBoost(t *testing.T) {
	s := &Session{
		Player:    fallingPlayer(120, 498, 5),
		Platforms: []Platform{{ID: 12, Pos: core.Vec2{X: 100, Y: 500}, W: 60, H: 20, Kind: KindBoost}},
	}

	testResolver().Resolve(s)

	if s.Player.Vel.Y != -45 {
		t.Errorf("vel.y = %v, want -45", s.Player.Vel.Y)
	}
	if s.CanJump {
		t.Error("canJump should be false after a boost launch")
	}
	if s.CurrentPlatformID != 12 {
		t.Errorf("score = %d, want 12", s.CurrentPlatformID)
	}
}

func TestResolveLastContactWins(t *testing.T) {
	s := &Session{
		Player: fallingPlayer(120, 498, 5),
		Platforms: []Platform{
			{ID: 4, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20, Kind: KindBoost},
			{ID: 5, Pos: core.Vec2{X: 110, Y: 501}, W: 100, H: 20, Kind: KindNormal},
		},
	}

	testResolver().Resolve(s)

	// The boost launch is undone by the later normal contact.
	if s.CurrentPlatformID != 5 {
		t.Errorf("score = %d, want 5", s.CurrentPlatformID)
	}
	if s.Player.Vel.Y != 0 || !s.CanJump {
		t.Errorf("vel.y=%v canJump=%v, want resting", s.Player.Vel.Y, s.CanJump)
	}
}

func TestSingleLandingEventWhileResting(t *testing.T) {
	s := &Session{
		Player:    fallingPlayer(120, 480, 1),
		Platforms: []Platform{{ID: 1, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20}},
	}
	r := testResolver()

	events := 0
	for i := 0; i < 120; i++ {
		s.Player.Integrate(0.5)
		if r.Resolve(s) {
			events++
		}
	}

	if events != 1 {
		t.Errorf("landing events = %d, want 1", events)
	}
	if !s.CanJump {
		t.Error("player should be resting")
	}
	if b := s.Player.Box().Bottom(); b > 500 || b < 499.5 {
		t.Errorf("resting bottom = %v, want within a gravity step of 500", b)
	}
}

func TestJump(t *testing.T) {
	platform := Platform{ID: 1, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20}

	tests := []struct {
		name    string
		player  Player
		canJump bool
		n       float64
		forced  bool
		want    bool
		wantVY  float64
	}{
		{"grounded", fallingPlayer(120, 500, 0.5), true, 1, false, true, -15},
		{"no canJump", fallingPlayer(120, 500, 0.5), false, 1, false, false, 0.5},
		{"canJump but airborne", fallingPlayer(120, 300, 0.5), true, 1, false, false, 0.5},
		{"forced ignores canJump", fallingPlayer(120, 300, 0.5), false, 3, true, true, -45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Player: tt.player, Platforms: []Platform{platform}, CanJump: tt.canJump}

			got := testResolver().Jump(s, tt.n, tt.forced)
			if got != tt.want {
				t.Errorf("Jump() = %v, want %v", got, tt.want)
			}
			if s.Player.Vel.Y != tt.wantVY {
				t.Errorf("vel.y = %v, want %v", s.Player.Vel.Y, tt.wantVY)
			}
			if got && s.CanJump {
				t.Error("canJump should be false after a jump")
			}
		})
	}
}

func TestNoDoubleJump(t *testing.T) {
	s := &Session{
		Player:    fallingPlayer(120, 500, 0.5),
		Platforms: []Platform{{ID: 1, Pos: core.Vec2{X: 100, Y: 500}, W: 100, H: 20}},
		CanJump:   true,
	}
	r := testResolver()

	if !r.Jump(s, 1, false) {
		t.Fatal("first jump failed")
	}
	s.Player.Integrate(0.5)
	if r.Jump(s, 1, false) {
		t.Error("second jump in the air succeeded")
	}
}
