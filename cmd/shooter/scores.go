package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vshooter/internal/platform/tui"
	"github.com/vovakirdan/vshooter/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagRunID string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [stage]",
	Short: "Browse recorded runs",
	Long: `Browse recorded runs interactively, or print the top 10 runs of a
stage with --plain.

Examples:
  shooter scores
  shooter scores "Stage 1" --plain
  shooter scores --run 3f2b9c1e-...      # Show one run
  shooter scores "Stage 2" --clear       # Delete the runs of a stage
  shooter scores --clear                 # Delete every run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs of the stage (all stages if none given)")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its ID")
}

func runScores(_ *cobra.Command, args []string) {
	stages := stageNames(loadStages())
	stage := ""
	if len(args) == 1 {
		stage = args[0]
		if !slices.Contains(stages, stage) {
			fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", stage)
			fmt.Fprintln(os.Stderr, "Run 'shooter stages' to see configured stages.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearRuns(os.Stdout, store, stage)
	case flagRunID != "":
		err = printRun(os.Stdout, store, flagRunID)
	case flagPlain:
		err = printTopRuns(os.Stdout, store, stage)
	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err = tui.RunScoreboard(store, stages, width, height)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func clearRuns(w io.Writer, store *storage.Store, stage string) error {
	if err := store.ClearRuns(stage); err != nil {
		return err
	}
	if stage == "" {
		fmt.Fprintln(w, "Cleared all runs.")
	} else {
		fmt.Fprintf(w, "Cleared runs of %s.\n", stage)
	}
	return nil
}

func printRun(w io.Writer, store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %q", runID)
	}

	fmt.Fprintf(w, "Run %s\n\n", r.RunID)
	fmt.Fprintf(w, "  Stage:    %s\n", r.Stage)
	fmt.Fprintf(w, "  Score:    %d\n", r.Score)
	fmt.Fprintf(w, "  Wave:     %d\n", r.Wave)
	fmt.Fprintf(w, "  Result:   %s\n", r.Outcome)
	fmt.Fprintf(w, "  Ticks:    %d\n", r.Ticks)
	fmt.Fprintf(w, "  Date:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printTopRuns(w io.Writer, store *storage.Store, stage string) error {
	runs, err := store.TopRuns(stage, 10)
	if err != nil {
		return err
	}

	title := stage
	if title == "" {
		title = "All stages"
	}
	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'shooter play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-4s  %-9s  %s\n", "Rank", "Stage", "Score", "Wave", "Result", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-4s  %-9s  %s\n", "----", "-----", "-----", "----", "------", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %-4d  %-9s  %s\n",
			i+1, r.Stage, r.Score, r.Wave, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stage == "" {
		return nil
	}

	// Show high score
	fmt.Fprintln(w)
	highScore, err := store.HighScore(stage)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Best: %d\n", highScore)
	if st, err := store.Stats(stage); err == nil {
		fmt.Fprintf(w, "Runs: %d   Clears: %d   Avg: %.0f\n", st.Runs, st.Clears, st.AvgScore)
	}
	return nil
}
