package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/platform/window"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Controls:
  Left/A, Right/D   - Move
  Up/W/Space        - Jump (only after landing)
  Mouse or touch    - Steer towards the pointer
  P                 - Pause
  Q/Esc             - Quit

Examples:
  jumper window
  jumper window jumper_classic --scale 0.75`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the canvas")
	windowCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run")
	windowCmd.Flags().BoolVar(&flagNoReload, "no-reload", false, "Do not watch the config file")
}

func runWindow(cmd *cobra.Command, args []string) error {
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

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run log, the run will not be recorded", "error", err)
			store = nil
		}
	}

	opts := window.Options{
		GameID:     gameID,
		Config:     cfg,
		ConfigPath: flagConfig,
		Runtime: core.RuntimeConfig{
			CanvasW:  cfg.Canvas.Width,
			CanvasH:  cfg.Canvas.Height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Scale:  flagScale,
		Store:  store,
		Logger: logger,
	}
	if !flagNoReload {
		opts.WatchPaths = watchPaths()
	}

	run, runErr := window.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	printSaved(run)
	return nil
}
