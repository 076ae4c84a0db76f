package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

func testOptions(store *storage.Store) Options {
	return Options{
		GameID: "jumper",
		Config: config.DefaultJumperConfig(),
		Runtime: core.RuntimeConfig{
			ScreenW:  60,
			ScreenH:  41,
			TickRate: 60,
			Seed:     42,
		},
		Store: store,
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(testOptions(store))
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

// tick feeds n ticks 1/60 s apart starting at start.
func tick(m Model, start time.Time, n int) (Model, time.Time) {
	now := start
	for i := 0; i < n; i++ {
		now = now.Add(time.Second / 60)
		next, _ := m.Update(TickMsg(now))
		m = next.(Model)
	}
	return m, now
}

func TestModelUnknownGame(t *testing.T) {
	opts := testOptions(nil)
	opts.GameID = "missing"
	if _, err := NewModel(opts); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestModelTicksGame(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()

	m, _ = tick(m, start, 30)

	if got := m.Driver().Game.Sessions(); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}
	if m.lastTick.IsZero() {
		t.Error("lastTick not recorded")
	}
	if p := m.Driver().Game.State(); p.Paused {
		t.Error("game should not be paused")
	}
}

func TestModelPauseKey(t *testing.T) {
	m := newTestModel(t, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	m, _ = tick(m, time.Now(), 1)

	if !m.Driver().Game.State().Paused {
		t.Error("game should be paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show the pause message")
	}
}

func TestModelViewHasHelp(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = tick(m, time.Now(), 1)

	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("view missing HUD")
	}
	if !strings.Contains(view, "jump") {
		t.Error("view missing key help")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 41 {
		t.Errorf("view has %d lines, want 41", lines)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = tick(m, time.Now(), 10)
	sessions := m.Driver().Game.Sessions()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
	if m.Driver().Game.Sessions() != sessions {
		t.Error("resize restarted the game")
	}
}

func TestModelMousePointer(t *testing.T) {
	m := newTestModel(t, nil)

	next, _ := m.Update(tea.MouseMsg{X: 59, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	in := m.input.Snapshot(time.Now())
	if !in.PointerActive || in.PointerX != 595 {
		t.Errorf("pointer = %+v, want active at x 595", in)
	}

	next, _ = m.Update(tea.MouseMsg{X: 59, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if m.input.Snapshot(time.Now()).PointerActive {
		t.Error("pointer should be released")
	}
}

func TestModelQuitSavesReplayableRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	now := time.Now()
	for i := 0; i < 20; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(Model)
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
		m = next.(Model)
		m, now = tick(m, now, 15)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}

	saved := m.SavedRun()
	if saved == nil {
		t.Fatal("run not saved")
	}
	if saved.Ticks != 300 {
		t.Errorf("ticks = %d, want 300", saved.Ticks)
	}

	loaded, err := store.Run(saved.ID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if _, err := replay.Verify(loaded); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}

func TestModelReloadQueuesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumper.yaml")
	writeFile(t, path, "player:\n  width: 44\n")

	opts := testOptions(nil)
	opts.ConfigPath = path
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}

	next, _ := m.Update(ReloadMsg{Path: path})
	m = next.(Model)

	if got := m.Driver().Game.Config().Player.Width; got != 30 {
		t.Errorf("width = %v, config should wait for the next session", got)
	}
}

func TestModelFallOutReleasesInput(t *testing.T) {
	m := newTestModel(t, nil)
	now := time.Now()

	next, _ := m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)

	// Drop the player far below the view
	m.Driver().Game.(*jumper.Game).Session().Player.Pos.Y = 5000
	m, now = tick(m, now, 1)

	if got := m.Driver().Game.Sessions(); got != 2 {
		t.Fatalf("sessions = %d, want 2 after the fall", got)
	}
	if in := m.input.Snapshot(now); !in.Neutral() {
		t.Errorf("input after the session reset = %+v, want neutral", in)
	}
}

func TestModelCloseSavesWithoutQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m, now := tick(m, time.Now(), 45)

	saved := m.Close()
	if saved == nil {
		t.Fatal("Close() did not save the run")
	}
	if saved.Ticks != 45 {
		t.Errorf("ticks = %d, want 45", saved.Ticks)
	}
	if again := m.Close(); again != saved {
		t.Error("second Close() should return the same run")
	}
	if m.SavedRun() != saved {
		t.Error("SavedRun() does not report the closed run")
	}

	// Ticks after closing are not simulated or recorded
	sessions := m.Driver().Game.Sessions()
	m, _ = tick(m, now, 10)
	if m.Driver().Game.Sessions() != sessions || m.Driver().Recorder().Len() != 45 {
		t.Error("model kept stepping after Close()")
	}

	runs, err := store.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("stored runs = %d, want 1", len(runs))
	}
}

func TestModelCloseFromAnotherGoroutine(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	done := make(chan *storage.Run)
	go func() {
		done <- m.Close()
	}()

	m, _ = tick(m, time.Now(), 30)
	<-done

	if saved := m.SavedRun(); saved != nil && saved.Ticks > 30 {
		t.Errorf("saved %d ticks, want at most 30", saved.Ticks)
	}
}
