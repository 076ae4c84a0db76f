package replay

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	_ "github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, CanvasW: 600, CanvasH: 800, TickRate: 60, Seed: seed}
}

// playLive simulates an interactive session: jittery frame times, a
// bot for input and a config reload halfway through.
func playLive(t *testing.T, gameID string, seed int64, ticks int) *Driver {
	t.Helper()

	d, err := NewDriver(gameID, config.DefaultJumperConfig(), testRuntime(seed), NewRecorder(0))
	if err != nil {
		t.Fatalf("NewDriver() failed: %v", err)
	}

	bot := NewBot(seed, 0, ticks)
	reloaded := config.DefaultJumperConfig()
	reloaded.Physics.Gravity = 0.6

	for tick := 0; tick < ticks; tick++ {
		if tick == ticks/2 {
			d.SetConfig(reloaded)
		}
		frame, _ := bot.Next(tick)
		dt := time.Second/60 + time.Duration(tick%7)*time.Millisecond
		d.Step(frame.In, dt)
	}
	return d
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 3; i++ {
		r.Record(core.InputState{}, time.Millisecond)
	}
	if !r.Complete() || r.Len() != 3 {
		t.Fatalf("complete=%v len=%d, want true and 3", r.Complete(), r.Len())
	}

	r.Record(core.InputState{}, time.Millisecond)
	if r.Complete() {
		t.Error("recorder should be incomplete past its limit")
	}
	if r.Len() != 0 {
		t.Errorf("len = %d, want frames dropped", r.Len())
	}
}

func TestRecorderReloadTick(t *testing.T) {
	r := NewRecorder(0)
	r.Record(core.InputState{}, time.Millisecond)
	r.Record(core.InputState{}, time.Millisecond)
	r.Reload(config.DefaultJumperConfig())

	if len(r.reloads) != 1 || r.reloads[0].Tick != 2 {
		t.Errorf("reloads = %+v, want one at tick 2", r.reloads)
	}
}

func TestDriverUnknownGame(t *testing.T) {
	if _, err := NewDriver("nope", config.DefaultJumperConfig(), testRuntime(1), nil); err == nil {
		t.Error("expected an error for an unknown game")
	}
}

func TestReplayReproducesLiveRun(t *testing.T) {
	for _, id := range []string{"jumper", "jumper_classic"} {
		t.Run(id, func(t *testing.T) {
			live := playLive(t, id, 99, 3000)
			run := live.Run()
			if run == nil {
				t.Fatal("Run() returned nil for a complete recording")
			}
			if run.Ticks != 3000 || len(run.Reloads) != 1 {
				t.Fatalf("ticks=%d reloads=%d", run.Ticks, len(run.Reloads))
			}

			res, err := Verify(run)
			if err != nil {
				t.Fatalf("Verify() failed: %v", err)
			}
			want := live.Result(3000)
			if res.Sessions != want.Sessions || res.FinalScore != want.FinalScore {
				t.Errorf("replay = %+v, live = %+v", res, want)
			}
			if len(res.Scores) != len(want.Scores) {
				t.Fatalf("scores = %v, want %v", res.Scores, want.Scores)
			}
			for i := range want.Scores {
				if res.Scores[i] != want.Scores[i] {
					t.Errorf("score %d = %d, want %d", i, res.Scores[i], want.Scores[i])
				}
			}
		})
	}
}

func TestReplayThroughStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	live := playLive(t, "jumper", 7, 1500)
	run := live.Run()
	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	loaded, err := store.Run(run.ID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if _, err := Verify(loaded); err != nil {
		t.Errorf("Verify() after storage failed: %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	live := playLive(t, "jumper", 3, 600)
	run := live.Run()
	run.FinalScore += 1000

	if _, err := Verify(run); err == nil {
		t.Error("expected divergence error")
	}
}

func TestRunNilWithoutRecording(t *testing.T) {
	d, err := NewDriver("jumper", config.DefaultJumperConfig(), testRuntime(1), nil)
	if err != nil {
		t.Fatalf("NewDriver() failed: %v", err)
	}
	d.Step(core.InputState{}, time.Millisecond)
	if d.Run() != nil {
		t.Error("Run() should be nil without a recorder")
	}
}

func TestBotDeterministic(t *testing.T) {
	a := NewBot(5, time.Millisecond, 500)
	b := NewBot(5, time.Millisecond, 500)

	for tick := 0; tick < 500; tick++ {
		fa, _ := a.Next(tick)
		fb, _ := b.Next(tick)
		if fa != fb {
			t.Fatalf("tick %d: %+v vs %+v", tick, fa, fb)
		}
		if !fa.In.Up || (fa.In.Left && fa.In.Right) {
			t.Fatalf("tick %d: unexpected input %+v", tick, fa.In)
		}
	}
	if _, ok := a.Next(500); ok {
		t.Error("bot should stop after its tick budget")
	}
}

func TestDriveWithBot(t *testing.T) {
	d, err := NewDriver("jumper", config.DefaultJumperConfig(), testRuntime(11), nil)
	if err != nil {
		t.Fatalf("NewDriver() failed: %v", err)
	}

	res := d.Drive(NewBot(11, time.Second/60, 0), nil, 2000)
	if res.Ticks != 2000 {
		t.Errorf("ticks = %d, want 2000", res.Ticks)
	}
	if res.Sessions != len(res.Scores)+1 {
		t.Errorf("sessions = %d with %d terminated", res.Sessions, len(res.Scores))
	}
	if res.FinalScore != d.Game.State().Score {
		t.Errorf("final = %d, want running score %d", res.FinalScore, d.Game.State().Score)
	}
}
