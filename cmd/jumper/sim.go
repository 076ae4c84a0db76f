package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagSimTicks int
	flagSimSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [game]",
	Short: "Run a headless bot session",
	Long: `Run the game without any display, driven by a scripted bot that keeps
jumping and drifts left and right. Prints a summary of every session.

The bot and the generator share --seed, so the same seed always gives the
same outcome.

Examples:
  jumper sim
  jumper sim jumper_classic --seed 7 --ticks 36000
  jumper sim --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run to the run log")
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tickRate := max(flagFPS, 1)
	dt := time.Second / time.Duration(tickRate)

	var rec *replay.Recorder
	if flagSimSave {
		rec = replay.NewRecorder(0)
	}

	driver, err := replay.NewDriver(gameID, cfg, core.RuntimeConfig{
		CanvasW:  cfg.Canvas.Width,
		CanvasH:  cfg.Canvas.Height,
		TickRate: tickRate,
		Seed:     seed,
	}, rec)
	if err != nil {
		return err
	}

	start := time.Now()
	res := driver.Drive(replay.NewBot(seed, dt, flagSimTicks), nil, 0)

	for i, score := range res.Scores {
		logger.Debug("session ended", "session", i+1, "score", score)
	}
	logger.Info("simulation finished",
		"game", gameID,
		"seed", seed,
		"ticks", res.Ticks,
		"simulated", time.Duration(res.Ticks)*dt,
		"sessions", res.Sessions,
		"falls", len(res.Scores),
		"final_score", res.FinalScore,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if !flagSimSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	run := driver.Run()
	if run == nil {
		logger.Warn("nothing recorded")
		return nil
	}
	if err := store.SaveRun(run); err != nil {
		return err
	}
	logger.Info("run saved", "id", run.ID)
	return nil
}
