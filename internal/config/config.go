// Package config provides YAML-based configuration for the jumper:
// physics constants, platform generation policy and the boost fade.
package config

import "time"

// JumperConfig contains all tunables for the jumper simulation.
type JumperConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Platforms  PlatformConfig   `yaml:"platforms"`
	Generation GenerationConfig `yaml:"generation"`
	Boost      BoostConfig      `yaml:"boost"`
}

// CanvasConfig is the viewport size in world units, used when the runtime
// does not dictate one.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines per-tick physics parameters.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`          // Added to velocity.y every tick
	JumpVelocity    float64 `yaml:"jump_velocity"`    // Velocity.y of a multiplier-1 jump (negative = up)
	MoveSpeed       float64 `yaml:"move_speed"`       // Horizontal speed for holds and pointer steering
	BoostMultiplier float64 `yaml:"boost_multiplier"` // Jump multiplier applied on boost contact
}

// PlayerConfig defines the player box.
type PlayerConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	StartGap    float64 `yaml:"start_gap"`     // Distance above the ground at spawn
	StartFallVY float64 `yaml:"start_fall_vy"` // Initial downward velocity
}

// CameraConfig defines the scroll trigger band.
type CameraConfig struct {
	ScrollBand float64 `yaml:"scroll_band"` // Camera follows once the player rises above canvasH - band
}

// PlatformConfig defines platform geometry.
type PlatformConfig struct {
	Spacing      float64 `yaml:"spacing"`       // Vertical distance between generated platforms
	Width        float64 `yaml:"width"`         // Width of normal/moving platforms
	Height       float64 `yaml:"height"`        // Thickness of generated platforms
	GroundHeight float64 `yaml:"ground_height"` // Thickness of the ground; also the fall-out margin
	MovingSpeed  float64 `yaml:"moving_speed"`  // Horizontal speed of moving platforms
	BoostWidth   float64 `yaml:"boost_width"`   // Width of boost companions
	BoostGap     float64 `yaml:"boost_gap"`     // Horizontal gap between a platform and its companion
	Prefill      int     `yaml:"prefill"`       // Stationary platforms seeded above the ground on reset
}

// GenerationConfig defines the platform type policy as a function of the
// platform id counter.
type GenerationConfig struct {
	MovingFrom      int     `yaml:"moving_from"`       // First id that may be a moving platform
	MovingChance    float64 `yaml:"moving_chance"`     // Moving probability before BoostFrom
	BoostFrom       int     `yaml:"boost_from"`        // First id that may get a boost companion
	MovingRampEvery int     `yaml:"moving_ramp_every"` // Ids per probability step after BoostFrom
	MovingRampStep  float64 `yaml:"moving_ramp_step"`  // Probability added per step
	MovingCap       float64 `yaml:"moving_cap"`        // Upper bound on moving probability
	BoostChance     float64 `yaml:"boost_chance"`      // Companion probability for normal platforms
}

// BoostConfig defines the boost platform fade.
type BoostConfig struct {
	StepDuration time.Duration `yaml:"step_duration"` // Time spent at each opacity level
	Levels       []float64     `yaml:"levels"`        // Opacity per step; after the last the platform is deleted
}

// FadeDuration returns the total lifetime of a boost platform.
func (b BoostConfig) FadeDuration() time.Duration {
	return b.StepDuration * time.Duration(len(b.Levels))
}
