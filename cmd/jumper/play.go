package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagNoRecord bool
	flagNoReload bool
	flagHold     int
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. The game defaults to "jumper".

Controls:
  Left/A, Right/D   - Move
  Up/W/Space        - Jump (only after landing)
  Mouse drag        - Steer towards the pointer
  P/Esc             - Pause
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

The terminal only reports key presses, so a direction counts as held
while its auto-repeat keeps arriving (see --hold).

The run is recorded to the run log unless --no-record is given, and the
config file is watched: edits apply when the next session starts.

Examples:
  jumper play
  jumper play jumper_classic
  jumper play --seed 42 --config ./my-jumper.yaml
  jumper play --log-file jumper.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run")
	playCmd.Flags().BoolVar(&flagNoReload, "no-reload", false, "Do not watch the config file")
	playCmd.Flags().IntVar(&flagHold, "hold", 180, "Key hold window in milliseconds")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}

	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
			// Continue without recording - game still works
			store = nil
		}
	}

	opts := tui.Options{
		GameID:     gameID,
		Config:     cfg,
		ConfigPath: flagConfig,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			CanvasW:  cfg.Canvas.Width,
			CanvasH:  cfg.Canvas.Height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Logger:     logger,
		HoldWindow: msDuration(flagHold),
	}
	if !flagNoReload {
		opts.WatchPaths = watchPaths()
	}

	run, runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	printSaved(run)
	return nil
}

// printSaved tells the player how to replay the recorded run.
func printSaved(run *storage.Run) {
	if run == nil {
		return
	}
	fmt.Printf("Run %s recorded: %d ticks, %d sessions, final score %d\n",
		run.ID, run.Ticks, run.Sessions, run.FinalScore)
	fmt.Printf("Replay with: jumper replay %s\n", shortRunID(run.ID))
}
