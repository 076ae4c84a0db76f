// jumper is a vertically scrolling platform jumper for the terminal, a
// desktop window, or remote play over SSH.
//
// Usage:
//
//	jumper list              - List available game variants
//	jumper play [game]       - Play in the terminal
//	jumper window [game]     - Play in a desktop window
//	jumper sim [game]        - Run a headless bot session
//	jumper replay <run>      - Re-simulate a recorded run
//	jumper runs              - Browse recorded runs
//	jumper serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Custom config YAML
//	--db <path>         - Set run log path (default: ~/.jumper/runs.db)
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

const defaultGame = "jumper"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumper",
	Short: "Jumper - a vertically scrolling platform jumper",
	Long: `Jumper is a platform jumper: land on platforms to climb, ride the
moving ones, catch the fading boost pads, and don't fall off the bottom.

Available commands:
  list     - Show the game variants
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run a headless bot session
  replay   - Re-simulate a recorded run
  runs     - Browse recorded runs
  serve    - Start SSH server for remote play

Examples:
  jumper play
  jumper play jumper_classic --seed 42
  jumper window --scale 0.75
  jumper sim --ticks 36000
  jumper replay 3f2a9c1b
  jumper serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumper/runs.db", "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. Logs go to --log-file when set and
// to fallback otherwise. The returned closer releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumper",
		Level:           level,
	})
	return logger, closer, nil
}

// gameArg returns the variant named on the command line, or the default.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}

// loadConfig loads --config or the first config found on the search path.
func loadConfig() (config.JumperConfig, error) {
	cfg, err := config.LoadJumper(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// watchPaths returns the config files to hot reload.
func watchPaths() []string {
	if flagConfig != "" {
		return []string{flagConfig}
	}
	return config.SearchPaths()
}

// msDuration converts a millisecond flag to a duration.
func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// unknownGame reports a game id that is not registered.
func unknownGame(id string) error {
	return fmt.Errorf("unknown game %q, run 'jumper list' to see available games", id)
}
