package jumper

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNormal, "normal"},
		{KindMoving, "moving"},
		{KindBoost, "boost"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindColor(t *testing.T) {
	if KindNormal.Color() != core.ColorBrown {
		t.Error("normal platforms should be brown")
	}
	if KindMoving.Color() != core.ColorBlue {
		t.Error("moving platforms should be blue")
	}
	if KindBoost.Color() != core.ColorYellow {
		t.Error("boost platforms should be yellow")
	}
}

func TestMovingPlatformReflects(t *testing.T) {
	fade := config.DefaultJumperConfig().Boost
	now := time.Now()

	p := Platform{Pos: core.Vec2{X: 495}, W: 100, H: 20, Kind: KindMoving, Vel: core.Vec2{X: 3}}
	p.Update(now, 600, fade)
	if p.Pos.X != 498 || p.Vel.X != 3 {
		t.Fatalf("after one tick: x=%v vx=%v, want 498 and 3", p.Pos.X, p.Vel.X)
	}

	p.Update(now, 600, fade)
	if p.Pos.X != 500 {
		t.Errorf("x = %v, want clamped to 500", p.Pos.X)
	}
	if p.Vel.X != -3 {
		t.Errorf("vx = %v, want -3 after right edge", p.Vel.X)
	}

	p.Pos.X = 2
	p.Update(now, 600, fade)
	if p.Pos.X != 0 || p.Vel.X != 3 {
		t.Errorf("left edge: x=%v vx=%v, want 0 and 3", p.Pos.X, p.Vel.X)
	}
}

func TestMovingPlatformStaysOnCanvas(t *testing.T) {
	fade := config.DefaultJumperConfig().Boost
	p := Platform{Pos: core.Vec2{X: 250}, W: 100, H: 20, Kind: KindMoving, Vel: core.Vec2{X: 3}}

	for i := 0; i < 2000; i++ {
		p.Update(time.Time{}, 600, fade)
		if p.Pos.X < 0 || p.Pos.X+p.W > 600 {
			t.Fatalf("tick %d: x = %v leaves canvas", i, p.Pos.X)
		}
	}
}

func TestNormalPlatformStationary(t *testing.T) {
	p := Platform{Pos: core.Vec2{X: 10, Y: 20}, W: 100, H: 20, Kind: KindNormal, Opacity: 1}
	p.Update(time.Now(), 600, config.DefaultJumperConfig().Boost)
	if p.Pos != (core.Vec2{X: 10, Y: 20}) || p.Opacity != 1 {
		t.Errorf("normal platform changed: %+v", p)
	}
}

func TestFadeOpacity(t *testing.T) {
	fade := config.DefaultJumperConfig().Boost

	tests := []struct {
		elapsed     time.Duration
		wantOpacity float64
		wantExpired bool
	}{
		{0, 1.0, false},
		{999 * time.Millisecond, 1.0, false},
		{time.Second, 0.66, false},
		{1500 * time.Millisecond, 0.66, false},
		{2 * time.Second, 0.33, false},
		{2999 * time.Millisecond, 0.33, false},
		{3 * time.Second, 0, true},
		{time.Hour, 0, true},
		{-time.Second, 1.0, false},
	}

	for _, tt := range tests {
		opacity, expired := FadeOpacity(tt.elapsed, fade)
		if opacity != tt.wantOpacity || expired != tt.wantExpired {
			t.Errorf("FadeOpacity(%v) = (%v, %v), want (%v, %v)",
				tt.elapsed, opacity, expired, tt.wantOpacity, tt.wantExpired)
		}
	}
}

func TestBoostFadeIndependentOfTickRate(t *testing.T) {
	fade := config.DefaultJumperConfig().Boost

	// The same wall-clock span at different frame durations must end with
	// the platform deleted at the same time.
	for _, dt := range []time.Duration{
		time.Second / 30,
		time.Second / 60,
		time.Second / 144,
		250 * time.Millisecond,
	} {
		clock := newStepClock()
		p := Platform{Kind: KindBoost, W: 60, H: 20, Opacity: 1}

		start := clock.Now()
		prev := 1.0
		for !p.MarkedForDeletion {
			p.Update(clock.Now(), 600, fade)
			if p.Opacity > prev {
				t.Fatalf("dt=%v: opacity rose from %v to %v", dt, prev, p.Opacity)
			}
			prev = p.Opacity
			clock.Advance(dt)
		}

		// Update ran at clock.Now()-dt
		lifetime := clock.Now().Sub(start) - dt
		if lifetime < fade.FadeDuration() || lifetime >= fade.FadeDuration()+dt {
			t.Errorf("dt=%v: deleted after %v, want within one frame of %v", dt, lifetime, fade.FadeDuration())
		}
		if p.Opacity != 0 {
			t.Errorf("dt=%v: final opacity = %v, want 0", dt, p.Opacity)
		}
	}
}

func TestBoostStampsSpawnTimeOnFirstUpdate(t *testing.T) {
	fade := config.DefaultJumperConfig().Boost
	clock := newStepClock()
	p := Platform{Kind: KindBoost, Opacity: 1}

	// Created long before its first update: the fade starts at the update.
	clock.Advance(10 * time.Second)
	p.Update(clock.Now(), 600, fade)

	if p.Opacity != 1 || p.MarkedForDeletion {
		t.Errorf("first update: opacity=%v marked=%v, want 1 and false", p.Opacity, p.MarkedForDeletion)
	}
}
