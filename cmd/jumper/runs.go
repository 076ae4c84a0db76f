package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagRunsList  bool
	flagRunsGame  string
	flagRunsLimit int
	flagRunsPrune int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Browse the run log interactively: replay a run to check it, or delete it.

With --list the runs are printed instead. --prune keeps only the newest N
runs of --game.

Examples:
  jumper runs
  jumper runs --list --game jumper_classic
  jumper runs --prune 50 --game jumper`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsList, "list", false, "Print runs instead of opening the browser")
	runsCmd.Flags().StringVar(&flagRunsGame, "game", "", "Only runs of this game")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to print")
	runsCmd.Flags().IntVar(&flagRunsPrune, "prune", 0, "Keep only the newest N runs of --game")
}

func runRuns(cmd *cobra.Command, args []string) error {
	if flagRunsGame != "" && !registry.Exists(flagRunsGame) {
		return unknownGame(flagRunsGame)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	switch {
	case flagRunsPrune > 0:
		if flagRunsGame == "" {
			return errors.New("--prune needs --game")
		}
		n, err := store.PruneRuns(flagRunsGame, flagRunsPrune)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs of %s.\n", n, flagRunsGame)

	case flagRunsList:
		return printRuns(os.Stdout, store)

	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunBrowser(store, width, height)
	}
	return nil
}

func printRuns(w io.Writer, store *storage.Store) error {
	runs, err := store.ListRuns(flagRunsGame, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-8s  %-16s  %8s  %8s  %6s  %s\n", "Run", "Game", "Ticks", "Sessions", "Score", "Date")
	fmt.Fprintf(w, "  %-8s  %-16s  %8s  %8s  %6s  %s\n", "---", "----", "-----", "--------", "-----", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-8s  %-16s  %8d  %8d  %6d  %s\n",
			shortRunID(r.ID),
			r.GameID,
			r.Ticks,
			r.Sessions,
			r.FinalScore,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
