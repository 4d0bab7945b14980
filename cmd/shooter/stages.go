package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vshooter/internal/config"
	"github.com/vovakirdan/vshooter/internal/storage"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List configured stages",
	Long: `Shows the stages and waves of the active shooter config, with the
number of recorded runs and the best score of each stage.`,
	Run: runStages,
}

// loadStages loads the shooter config honoring --config.
func loadStages() []config.StageConfig {
	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg.Stages
}

func runStages(_ *cobra.Command, _ []string) {
	stages := loadStages()

	// Run statistics are optional here.
	var stats map[string]*storage.StageStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, err = store.AllStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read run statistics: %v\n", err)
		}
		store.Close()
	}

	printStages(os.Stdout, stages, stats)
}

func printStages(w io.Writer, stages []config.StageConfig, stats map[string]*storage.StageStats) {
	if len(stages) == 0 {
		fmt.Fprintln(w, "No stages configured.")
		return
	}

	fmt.Fprintln(w, "Stages:")
	fmt.Fprintln(w)

	maxNameLen := 4 // "Name" header
	for _, s := range stages {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Fprintf(w, "  %-3s  %-*s  %-10s  %-15s  %-5s  %s\n", "#", maxNameLen, "Name", "Background", "Waves", "Runs", "Best")
	fmt.Fprintf(w, "  %-3s  %-*s  %-10s  %-15s  %-5s  %s\n", "-", maxNameLen, "----", "----------", "-----", "----", "----")
	for i, s := range stages {
		targets := 0
		for _, wave := range s.Waves {
			targets += wave.Target
		}
		runs, best := 0, 0
		if st, ok := stats[s.Name]; ok {
			runs, best = st.Runs, st.HighScore
		}
		waves := fmt.Sprintf("%d (%d kills)", len(s.Waves), targets)
		fmt.Fprintf(w, "  %-3d  %-*s  %-10s  %-15s  %-5d  %d\n", i+1, maxNameLen, s.Name, s.Background, waves, runs, best)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'shooter play --stage <#>' to jump into a stage.")
}

// checkStage validates a 1-based --stage value against the configured stages.
// Zero means the title screen.
func checkStage(n, count int) error {
	if n < 0 || n > count {
		return fmt.Errorf("stage %d out of range (1-%d)", n, count)
	}
	return nil
}

func stageNames(stages []config.StageConfig) []string {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}
	return names
}
