package core

import "time"

// InputState is a normalized snapshot of the controls, refreshed by the
// platform adapter before every simulation tick. The zero value means
// "no input".
type InputState struct {
	Left  bool `yaml:"l,omitempty"` // Left held
	Right bool `yaml:"r,omitempty"` // Right held
	Up    bool `yaml:"u,omitempty"` // Jump held

	// PointerActive is true while a mouse button or touch is down.
	// PointerX/PointerY are canvas-local; Y is not corrected for scroll.
	PointerActive bool    `yaml:"p,omitempty"`
	PointerX      float64 `yaml:"px,omitempty"`
	PointerY      float64 `yaml:"py,omitempty"`

	// Pause is a one-shot toggle, not a hold.
	Pause bool `yaml:"pause,omitempty"`
}

// Neutral reports whether the snapshot carries no input at all.
func (s InputState) Neutral() bool {
	return !s.Left && !s.Right && !s.Up && !s.PointerActive && !s.Pause
}

// Frame is one recorded simulation tick: the input fed to the game and the
// wall-clock time elapsed since the previous tick.
type Frame struct {
	In InputState    `yaml:"in,omitempty"`
	DT time.Duration `yaml:"dt"`
}
