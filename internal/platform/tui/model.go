package tui

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// maxRecordedTicks caps a recording at one hour of play at 60 ticks/s.
const maxRecordedTicks = 60 * 60 * 60

// Options configures a game model.
type Options struct {
	GameID     string
	Config     config.JumperConfig
	ConfigPath string   // Custom config path used when reloading
	WatchPaths []string // Config files to hot reload; empty disables reloading
	Runtime    core.RuntimeConfig
	Store      *storage.Store // Run log; nil disables recording
	Logger     *log.Logger
	HoldWindow time.Duration
}

// recording owns a model's driver and saves its run exactly once, whether
// the player quits, the terminal is closed or the SSH session drops. It is
// shared by every copy of the model.
type recording struct {
	mu      sync.Mutex
	driver  *replay.Driver
	store   *storage.Store
	logger  *log.Logger
	watcher *config.Watcher
	closed  bool
	saved   *storage.Run
}

// step runs one tick unless the recording is closed.
func (r *recording) step(in core.InputState, dt time.Duration) (core.StepResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return core.StepResult{}, false
	}
	return r.driver.Step(in, dt), true
}

// setConfig queues a configuration change unless the recording is closed.
func (r *recording) setConfig(cfg config.JumperConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.driver.SetConfig(cfg)
	}
}

// close stops the watcher and saves the run on the first call.
func (r *recording) close() *storage.Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.saved
	}
	r.closed = true

	if r.watcher != nil {
		r.watcher.Close()
	}

	if r.store == nil {
		return nil
	}
	run := r.driver.Run()
	if run == nil {
		r.logger.Warn("run not saved: recording incomplete or empty")
		return nil
	}
	if err := r.store.SaveRun(run); err != nil {
		r.logger.Error("cannot save run", "error", err)
		return nil
	}
	r.saved = run
	r.logger.Info("run saved", "id", run.ID, "ticks", run.Ticks, "sessions", run.Sessions)
	return run
}

// Model is the Bubble Tea model for running the jumper.
type Model struct {
	driver *replay.Driver
	rec    *recording
	screen *core.Screen
	input  *InputTracker
	keys   KeyMap
	help   help.Model
	logger *log.Logger

	configPath string
	runtime    core.RuntimeConfig
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model and starts the game.
func NewModel(opts Options) (Model, error) {
	rc := opts.Runtime
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
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
		return Model{}, err
	}

	m := Model{
		driver: driver,
		rec: &recording{
			driver: driver,
			store:  opts.Store,
			logger: logger,
		},
		screen:     core.NewScreen(rc.ScreenW, max(rc.ScreenH-1, 1)),
		input:      NewInputTracker(opts.HoldWindow),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     logger,
		configPath: opts.ConfigPath,
		runtime:    rc,
	}
	m.help.Width = rc.ScreenW

	if len(opts.WatchPaths) > 0 {
		w, err := config.NewWatcher(opts.WatchPaths...)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			m.rec.watcher = w
		}
	}

	logger.Info("run started", "game", opts.GameID, "seed", rc.Seed)
	return m, nil
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), watchCmd(m.rec.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ReloadMsg:
		return m.handleReload(msg)

	case watchErrMsg:
		m.logger.Warn("config watcher error", "error", msg.err)
		return m, watchCmd(m.rec.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.rec.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.input.Press(ControlLeft, now)
	case key.Matches(msg, m.keys.Right):
		m.input.Press(ControlRight, now)
	case key.Matches(msg, m.keys.Jump):
		m.input.Press(ControlJump, now)
	case key.Matches(msg, m.keys.Pause):
		m.input.TogglePause()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse maps left-button presses and drags to the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	w, h := m.driver.Game.Canvas()
	x, y := CellToCanvas(msg.X, msg.Y, m.screen.Width(), m.screen.Height(), w, h)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.input.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.input.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.input.PointerUp()
	}
	return m, nil
}

// handleResize processes window resize events. The world is in canvas
// units, so only the cell buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-m.helpHeight(), 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	dt := time.Second / time.Duration(max(m.runtime.TickRate, 1))
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result, ok := m.rec.step(m.input.Snapshot(now), dt)
	if !ok {
		return m, nil
	}
	if result.Terminated {
		// A new session starts with nothing held
		m.input.Reset()
		m.logger.Info("session ended",
			"score", result.FinalScore,
			"session", m.driver.Game.Sessions()-1,
		)
	}

	return m, tickCmd(m.runtime.TickRate)
}

// handleReload re-reads the configuration and queues it for the next session.
func (m Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	cfg, err := config.LoadJumper(m.configPath)
	if err != nil {
		m.logger.Warn("config reload failed", "path", msg.Path, "error", err)
		return m, watchCmd(m.rec.watcher)
	}

	m.rec.setConfig(cfg)
	m.logger.Info("config reloaded, applies to the next session", "path", msg.Path)
	return m, watchCmd(m.rec.watcher)
}

// Close stops recording and saves the run. It is safe to call more than
// once and from another goroutine; later calls return the same run.
func (m Model) Close() *storage.Run {
	return m.rec.close()
}

// helpHeight returns the number of rows the help footer takes.
func (m Model) helpHeight() int {
	if m.help.ShowAll {
		return 3
	}
	return 1
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if want := max(m.runtime.ScreenH-m.helpHeight(), 1); m.screen.Height() != want {
		m.screen.Resize(m.screen.Width(), want)
	}

	m.driver.Game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// SavedRun returns the run stored when the model was closed, or nil.
func (m Model) SavedRun() *storage.Run {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return m.rec.saved
}

// Driver exposes the game driver.
func (m Model) Driver() *replay.Driver {
	return m.driver
}

// Run starts the Bubble Tea program and returns the saved run, if any.
func Run(opts Options) (*storage.Run, error) {
	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Save even when the program was killed instead of quit
	_, err = p.Run()
	return model.Close(), err
}
