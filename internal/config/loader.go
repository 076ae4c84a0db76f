package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "jumper.yaml"

// LoadJumper loads the jumper configuration.
// Search order: customPath -> ~/.jumper/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
func LoadJumper(customPath string) (JumperConfig, error) {
	// Custom path errors are fatal, the user asked for that file
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range SearchPaths() {
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := DefaultJumperConfig()
	if err := yaml.Unmarshal(defaultJumperYAML, &cfg); err != nil {
		return DefaultJumperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// SearchPaths returns the implicit config locations in lookup order.
func SearchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// loadFile parses a YAML file on top of the defaults, so partial files
// only override what they mention.
func loadFile(path string) (JumperConfig, error) {
	cfg := DefaultJumperConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumper", "configs", filename)
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values the simulation cannot run with.
func (c JumperConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump_velocity must be negative (up), got %g", ErrInvalidConfig, c.Physics.JumpVelocity)
	case c.Platforms.Spacing <= 0:
		return fmt.Errorf("%w: platform spacing must be positive", ErrInvalidConfig)
	case c.Platforms.Width <= 0 || c.Platforms.Width > c.Canvas.Width:
		return fmt.Errorf("%w: platform width must be in (0, canvas width]", ErrInvalidConfig)
	case c.Physics.MoveSpeed < 0:
		return fmt.Errorf("%w: move_speed must not be negative, got %g", ErrInvalidConfig, c.Physics.MoveSpeed)
	case c.Camera.ScrollBand <= 0:
		return fmt.Errorf("%w: scroll_band must be positive, got %g", ErrInvalidConfig, c.Camera.ScrollBand)
	case c.Platforms.BoostWidth <= 0 || c.Platforms.BoostWidth > c.Canvas.Width:
		return fmt.Errorf("%w: boost width must be in (0, canvas width]", ErrInvalidConfig)
	case c.Platforms.Prefill < 0:
		return fmt.Errorf("%w: prefill must not be negative", ErrInvalidConfig)
	case c.Generation.MovingFrom > c.Generation.BoostFrom:
		return fmt.Errorf("%w: moving_from (%d) must not exceed boost_from (%d)", ErrInvalidConfig, c.Generation.MovingFrom, c.Generation.BoostFrom)
	case c.Generation.MovingRampEvery <= 0:
		return fmt.Errorf("%w: moving_ramp_every must be positive", ErrInvalidConfig)
	case c.Generation.MovingCap < 0 || c.Generation.MovingCap > 1:
		return fmt.Errorf("%w: moving_cap must be a probability", ErrInvalidConfig)
	case c.Boost.StepDuration <= 0 || len(c.Boost.Levels) == 0:
		return fmt.Errorf("%w: boost fade needs a positive step and at least one level", ErrInvalidConfig)
	}
	return nil
}
