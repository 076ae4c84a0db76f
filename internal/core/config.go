package core

// RuntimeConfig contains configuration passed to games at initialization.
// Canvas dimensions are simulation units; Screen dimensions are terminal
// cells and only matter to the renderer.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	CanvasW  float64 // Viewport width in world units (0 = game default)
	CanvasH  float64 // Viewport height in world units (0 = game default)
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CanvasW:  600,
		CanvasH:  800,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score  int  // Current score (id of the last platform landed on)
	Paused bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Terminated is set on the tick the player fell off the world.
	// The session has already been reset when the result is returned.
	Terminated bool

	// FinalScore is the score the terminated session ended with.
	FinalScore int
}
