// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// adapters to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Game is the interface the platform adapters drive.
// Games contain pure logic; adapters handle input, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "jumper").
	// Used for CLI commands and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for a new run.
	// The RuntimeConfig provides canvas/screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick using the input snapshot.
	Step(in core.InputState) core.StepResult

	// DrawCommands returns the frame as screen-space rectangle fills.
	DrawCommands() []core.DrawCommand

	// Render draws the current frame into a cell buffer.
	Render(dst *core.Screen)

	// Canvas returns the viewport size in world units.
	Canvas() (w, h float64)

	// State returns the current game state.
	State() core.GameState

	// Config returns the configuration of the running session.
	Config() config.JumperConfig

	// SetConfig queues a configuration change for the next session.
	SetConfig(cfg config.JumperConfig)

	// Sessions returns how many sessions were started since Reset.
	Sessions() int
}

// Env carries the collaborators a host provides to a game instance.
// The zero value loads configuration from disk and uses wall time.
type Env struct {
	Config       *config.JumperConfig // Fixed configuration; nil loads from disk
	Clock        core.Clock           // Time source for timed effects; nil uses the system clock
	OnSessionEnd func(finalScore int) // Called once per terminated session
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Env{}).Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(env), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
