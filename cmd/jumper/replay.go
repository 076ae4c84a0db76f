package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run>",
	Short: "Re-simulate a recorded run",
	Long: `Replay a recorded run headlessly from its seed, configuration and
input log, and check that it ends where the recording did. The run can be
named by its full id or any unique prefix.

Examples:
  jumper replay 3f2a9c1b
  jumper replay 3f2a9c1b-0d7e-4c55-9a1e-5b8f0c2d4e6a`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	run, err := store.Run(args[0])
	switch {
	case errors.Is(err, storage.ErrRunNotFound):
		return fmt.Errorf("no run %q, run 'jumper runs --list' to see recorded runs: %w", args[0], err)
	case errors.Is(err, storage.ErrAmbiguousRun):
		return fmt.Errorf("%q matches several runs, use a longer prefix", args[0])
	case err != nil:
		return err
	}

	start := time.Now()
	res, err := replay.Verify(run)
	if err != nil {
		logger.Error("replay failed", "run", run.ID, "error", err)
		return err
	}

	for i, score := range res.Scores {
		logger.Debug("session ended", "session", i+1, "score", score)
	}
	logger.Info("replay matches recording",
		"run", run.ID,
		"game", run.GameID,
		"seed", run.Seed,
		"ticks", res.Ticks,
		"reloads", len(run.Reloads),
		"sessions", res.Sessions,
		"final_score", res.FinalScore,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
