// Package window runs the jumper in a desktop window with ebiten. It
// shares the replay driver with the terminal adapter, so runs recorded
// here replay headlessly like any other.
package window

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// maxRecordedTicks caps a recording at one hour of play at 60 ticks/s.
const maxRecordedTicks = 60 * 60 * 60

var background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

// Options configures a window session.
type Options struct {
	GameID     string
	Config     config.JumperConfig
	ConfigPath string   // Custom config path used when reloading
	WatchPaths []string // Config files to hot reload; empty disables reloading
	Runtime    core.RuntimeConfig
	Scale      float64 // Window size relative to the canvas
	Store      *storage.Store
	Logger     *log.Logger
}

// frameInput is what the window saw since the previous tick.
type frameInput struct {
	In   core.InputState
	Quit bool
}

// Game adapts a replay driver to ebiten.Game.
type Game struct {
	driver  *replay.Driver
	store   *storage.Store
	logger  *log.Logger
	watcher *config.Watcher

	configPath string
	dt         time.Duration
	poll       func() frameInput
	saved      *storage.Run
	done       bool
}

// NewGame creates the driver and starts the first session.
func NewGame(opts Options) (*Game, error) {
	rc := opts.Runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var rec *replay.Recorder
	if opts.Store != nil {
		rec = replay.NewRecorder(maxRecordedTicks)
	}

	driver, err := replay.NewDriver(opts.GameID, opts.Config, rc, rec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		driver:     driver,
		store:      opts.Store,
		logger:     logger,
		configPath: opts.ConfigPath,
		dt:         time.Second / time.Duration(rc.TickRate),
		poll:       pollInput,
	}

	if len(opts.WatchPaths) > 0 {
		w, err := config.NewWatcher(opts.WatchPaths...)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			g.watcher = w
		}
	}

	logger.Info("run started", "game", opts.GameID, "seed", rc.Seed)
	return g, nil
}

// Update runs one simulation tick. ebiten calls it TPS times per second,
// so every tick lasts exactly dt.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}

	g.pollReload()

	frame := g.poll()
	if frame.Quit {
		g.finish()
		return ebiten.Termination
	}

	result := g.driver.Step(frame.In, g.dt)
	if result.Terminated {
		g.logger.Info("session ended",
			"score", result.FinalScore,
			"session", g.driver.Game.Sessions()-1,
		)
	}
	return nil
}

// Draw paints the frame's rectangles and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, cmd := range g.driver.Game.DrawCommands() {
		if !cmd.Visible() {
			continue
		}
		vector.FillRect(screen,
			float32(cmd.X), float32(cmd.Y), float32(cmd.W), float32(cmd.H),
			cmd.Color.RGBA(cmd.Opacity), false)
	}

	state := g.driver.Game.State()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d", state.Score))
	if state.Paused {
		w, h := g.driver.Game.Canvas()
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P", int(w)/2-48, int(h)/2)
	}
}

// Layout fixes the logical screen to the canvas; ebiten scales it to the
// window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.driver.Game.Canvas()
	return int(w), int(h)
}

// pollReload applies pending config file changes without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path := <-g.watcher.Events:
			g.reload(path)
		case err := <-g.watcher.Errors:
			g.logger.Warn("config watcher error", "error", err)
		default:
			return
		}
	}
}

// reload re-reads the configuration and queues it for the next session.
func (g *Game) reload(path string) {
	cfg, err := config.LoadJumper(g.configPath)
	if err != nil {
		g.logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	g.driver.SetConfig(cfg)
	g.logger.Info("config reloaded, applies to the next session", "path", path)
}

// finish stops the watcher and saves the recording.
func (g *Game) finish() {
	if g.done {
		return
	}
	g.done = true

	if g.watcher != nil {
		g.watcher.Close()
	}

	if g.store == nil {
		return
	}
	run := g.driver.Run()
	if run == nil {
		g.logger.Warn("run not saved: recording incomplete or empty")
		return
	}
	if err := g.store.SaveRun(run); err != nil {
		g.logger.Error("cannot save run", "error", err)
		return
	}
	g.saved = run
	g.logger.Info("run saved", "id", run.ID, "ticks", run.Ticks, "sessions", run.Sessions)
}

// SavedRun returns the run stored when the window closed, or nil.
func (g *Game) SavedRun() *storage.Run {
	return g.saved
}

// Driver exposes the game driver.
func (g *Game) Driver() *replay.Driver {
	return g.driver
}

// pollInput reads keyboard, mouse and touch state from ebiten.
func pollInput() frameInput {
	var in core.InputState

	in.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	in.Up = ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
		ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.PointerActive = true
		in.PointerX, in.PointerY = float64(x), float64(y)
	} else if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		in.PointerActive = true
		in.PointerX, in.PointerY = float64(x), float64(y)
	}

	quit := inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	return frameInput{In: in, Quit: quit}
}

// Run opens the window and blocks until it is closed. It returns the
// saved run, if any.
func Run(opts Options) (*storage.Run, error) {
	g, err := NewGame(opts)
	if err != nil {
		return nil, err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w, h := g.driver.Game.Canvas()

	ebiten.SetWindowSize(int(w*scale), int(h*scale))
	ebiten.SetWindowTitle(g.driver.Game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.driver.Runtime.TickRate)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&closingGame{g}); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	g.finish()
	return g.SavedRun(), nil
}

// closingGame saves the run when the window's close button is used.
type closingGame struct {
	*Game
}

func (c *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		c.finish()
		return ebiten.Termination
	}
	return c.Game.Update()
}
