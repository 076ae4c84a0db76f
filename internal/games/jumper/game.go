// Package jumper implements a vertically scrolling platform jumper.
// The player bounces up procedurally generated platforms while the camera
// follows upward progress; the score is the id of the last platform
// landed on. Falling below the camera ends the session, which restarts
// immediately.
package jumper

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

// Phase is the session lifecycle state.
type Phase uint8

const (
	PhasePlaying    Phase = iota
	PhaseTerminated       // Momentary; reset follows in the same tick
)

// Session is the complete mutable world state. It is owned by Game and
// only changed inside Step or Reset.
type Session struct {
	Player            Player
	Platforms         []Platform
	Camera            Camera
	CurrentPlatformID int
	CanJump           bool
	Phase             Phase
}

// supported reports whether the player is currently falling onto a platform.
func (s *Session) supported() bool {
	for _, pl := range s.Platforms {
		if Contact(s.Player, pl) {
			return true
		}
	}
	return false
}

// TerminalNotifier is told once per terminated session.
type TerminalNotifier interface {
	SessionEnded(finalScore int)
}

// NotifierFunc adapts a function to TerminalNotifier.
type NotifierFunc func(finalScore int)

// SessionEnded calls f.
func (f NotifierFunc) SessionEnded(finalScore int) { f(finalScore) }

// Option configures a Game.
type Option func(*Game)

// WithRand injects the random source instead of seeding one from the
// runtime config.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithClock injects the clock used for boost fades.
func WithClock(c core.Clock) Option {
	return func(g *Game) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithNotifier registers the terminal notifier.
func WithNotifier(n TerminalNotifier) Option {
	return func(g *Game) { g.notifier = n }
}

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg config.JumperConfig) Option {
	return func(g *Game) {
		g.fixedCfg = &cfg
	}
}

// Classic selects the classic variant: prefilled, stationary platforms only.
func Classic() Option {
	return func(g *Game) { g.classic = true }
}

// Game is the simulation loop.
type Game struct {
	session  Session
	gen      *Generator
	resolver Resolver
	cfg      config.JumperConfig
	runtime  core.RuntimeConfig
	canvasW  float64
	canvasH  float64

	rng      Rand
	seeded   bool // rng was created by Reset, reseed on the next Reset
	clock    core.Clock
	notifier TerminalNotifier
	fixedCfg *config.JumperConfig
	pending  *config.JumperConfig
	classic  bool

	paused    bool
	pausedAt  time.Time
	tickCount int
	sessions  int // Sessions started since Reset
}

// New creates a new jumper game instance. Call Reset before stepping.
func New(opts ...Option) *Game {
	g := &Game{clock: core.SystemClock{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.classic {
		return "jumper_classic"
	}
	return "jumper"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.classic {
		return "Jumper Classic"
	}
	return "Jumper"
}

// Reset initializes the game for a new run: loads configuration, seeds
// the random source and starts the first session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.cfg = g.loadConfig()
	g.pending = nil

	if g.rng == nil || g.seeded {
		g.rng = rand.New(rand.NewSource(rc.Seed))
		g.seeded = true
	}

	g.canvasW, g.canvasH = rc.CanvasW, rc.CanvasH
	if g.canvasW <= 0 || g.canvasH <= 0 {
		g.canvasW, g.canvasH = g.cfg.Canvas.Width, g.cfg.Canvas.Height
	}

	g.paused = false
	g.tickCount = 0
	g.sessions = 0
	g.restart()
}

func (g *Game) loadConfig() config.JumperConfig {
	var cfg config.JumperConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		loaded, err := config.LoadJumper("")
		if err != nil {
			loaded = config.DefaultJumperConfig()
		}
		cfg = loaded
	}
	if g.classic {
		config.ApplyClassic(&cfg)
	}
	return cfg
}

// Config returns the configuration of the running session.
func (g *Game) Config() config.JumperConfig {
	return g.cfg
}

// SetConfig queues a configuration change. It takes effect when the next
// session starts, never mid-session.
func (g *Game) SetConfig(cfg config.JumperConfig) {
	if g.classic {
		config.ApplyClassic(&cfg)
	}
	g.pending = &cfg
}

// restart is the session reset routine: fresh world, same run.
func (g *Game) restart() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}

	if g.gen == nil {
		g.gen = NewGenerator(g.rng, g.cfg, g.canvasW, g.canvasH)
	} else {
		g.gen.rng = g.rng
		g.gen.cfg = g.cfg
		g.gen.canvasW, g.gen.canvasH = g.canvasW, g.canvasH
	}

	g.resolver = Resolver{
		JumpVelocity:    g.cfg.Physics.JumpVelocity,
		BoostMultiplier: g.cfg.Physics.BoostMultiplier,
	}

	g.session = Session{
		Player:            NewPlayer(g.cfg, g.canvasW, g.canvasH),
		Platforms:         g.gen.Reset(),
		Camera:            Camera{Offset: 0, Band: g.cfg.Camera.ScrollBand, ViewH: g.canvasH},
		CurrentPlatformID: 0,
		CanJump:           false,
		Phase:             PhasePlaying,
	}
	g.sessions++
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputState) core.StepResult {
	if in.Pause {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	s := &g.session
	now := g.clock.Now()

	// Physics
	s.Player.Integrate(g.cfg.Physics.Gravity)
	s.Player.WrapHorizontal(g.canvasW)

	// Input
	vx, jump := Steer(in, s.Player, s.Camera, g.cfg.Physics.MoveSpeed)
	s.Player.Vel.X = vx
	if jump {
		g.resolver.Jump(s, 1, false)
	}

	s.Camera.Follow(s.Player)

	for i := range s.Platforms {
		s.Platforms[i].Update(now, g.canvasW, g.cfg.Boost)
	}

	g.resolver.Resolve(s)

	s.Platforms = g.gen.MaybeSpawn(s.Platforms, s.Camera.Offset)
	s.Platforms = Prune(s.Platforms, s.Camera.Offset, g.canvasH)

	if s.Player.FellOut(s.Camera.Offset, g.cfg.Platforms.GroundHeight, g.canvasH) {
		return g.terminate()
	}

	return core.StepResult{State: g.State()}
}

// togglePause pauses or resumes. Boost fades are delayed by the time spent
// paused.
func (g *Game) togglePause() {
	now := g.clock.Now()
	g.paused = !g.paused
	if g.paused {
		g.pausedAt = now
		return
	}
	for i := range g.session.Platforms {
		g.session.Platforms[i].Delay(now.Sub(g.pausedAt))
	}
}

// terminate ends the session, notifies, and starts a new one.
func (g *Game) terminate() core.StepResult {
	g.session.Phase = PhaseTerminated
	final := g.session.CurrentPlatformID

	if g.notifier != nil {
		g.notifier.SessionEnded(final)
	}
	g.restart()

	return core.StepResult{
		State:      g.State(),
		Terminated: true,
		FinalScore: final,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.session.CurrentPlatformID,
		Paused: g.paused,
	}
}

// Session returns the live world state. Callers must not retain it
// across ticks.
func (g *Game) Session() *Session {
	return &g.session
}

// Canvas returns the viewport size in world units.
func (g *Game) Canvas() (w, h float64) {
	return g.canvasW, g.canvasH
}

// Sessions returns how many sessions were started since Reset.
func (g *Game) Sessions() int {
	return g.sessions
}

// envOptions translates a registry environment into options.
func envOptions(env registry.Env) []Option {
	var opts []Option
	if env.Config != nil {
		opts = append(opts, WithConfig(*env.Config))
	}
	if env.Clock != nil {
		opts = append(opts, WithClock(env.Clock))
	}
	if env.OnSessionEnd != nil {
		opts = append(opts, WithNotifier(NotifierFunc(env.OnSessionEnd)))
	}
	return opts
}

// Register both variants with the registry
func init() {
	registry.Register("jumper", func(env registry.Env) registry.Game {
		return New(envOptions(env)...)
	})
	registry.Register("jumper_classic", func(env registry.Env) registry.Game {
		return New(append(envOptions(env), Classic())...)
	})
}
