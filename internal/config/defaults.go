package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the default jumper configuration.
// It mirrors defaults/jumper.yaml and is the fallback if the embed fails to parse.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		Canvas: CanvasConfig{
			Width:  600,
			Height: 800,
		},
		Physics: PhysicsConfig{
			Gravity:         0.5,
			JumpVelocity:    -15,
			MoveSpeed:       5,
			BoostMultiplier: 3,
		},
		Player: PlayerConfig{
			Width:       30,
			Height:      30,
			StartGap:    20,
			StartFallVY: 1,
		},
		Camera: CameraConfig{
			ScrollBand: 180,
		},
		Platforms: PlatformConfig{
			Spacing:      180,
			Width:        100,
			Height:       20,
			GroundHeight: 50,
			MovingSpeed:  3,
			BoostWidth:   60,
			BoostGap:     20,
			Prefill:      0,
		},
		Generation: GenerationConfig{
			MovingFrom:      50,
			MovingChance:    0.10,
			BoostFrom:       100,
			MovingRampEvery: 50,
			MovingRampStep:  0.01,
			MovingCap:       0.5,
			BoostChance:     0.15,
		},
		Boost: BoostConfig{
			StepDuration: time.Second,
			Levels:       []float64{1.0, 0.66, 0.33},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultJumperYAML
}

// ApplyClassic turns a config into the classic variant: four stationary
// platforms seeded above the ground and no moving or boost platforms.
func ApplyClassic(cfg *JumperConfig) {
	cfg.Platforms.Prefill = 4
	cfg.Generation.MovingChance = 0
	cfg.Generation.MovingRampStep = 0
	cfg.Generation.MovingCap = 0
	cfg.Generation.BoostChance = 0
}
