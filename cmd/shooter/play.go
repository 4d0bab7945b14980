package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vshooter/internal/audio"
	"github.com/vovakirdan/vshooter/internal/core"
	"github.com/vovakirdan/vshooter/internal/platform/tui"
	"github.com/vovakirdan/vshooter/internal/registry"
	"github.com/vovakirdan/vshooter/internal/shooter"
	"github.com/vovakirdan/vshooter/internal/storage"
)

var (
	flagMute  bool
	flagStage int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the shooter",
	Long: `Start the game at the title screen.

Controls:
  WASD/Arrows  - Move
  Space        - Fire (hold)
  Enter        - Start / select stage
  P            - Pause
  R            - Restart (after clear or game over)
  B/Esc        - Back to title
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow progression from the lowest level
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty with fewer hit points
  fixed  - No progression

Examples:
  shooter play
  shooter play --difficulty easy
  shooter play --stage 2 --mute
  shooter play --config ./my-shooter.yaml --log shooter.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().IntVar(&flagStage, "stage", 0, "Jump straight into a stage (1-based, 0 = title screen)")
}

func runPlay(_ *cobra.Command, _ []string) {
	// Check if the game is registered
	if !registry.Exists(shooter.GameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", shooter.GameID)
		os.Exit(1)
	}

	if err := checkStage(flagStage, len(loadStages())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'shooter stages' to see configured stages.")
		os.Exit(1)
	}

	logger, closeLog := newLogger("shooter", io.Discard)
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var game registry.Game
	if flagStage > 0 {
		game = shooter.New(
			shooter.WithConfigPath(flagConfig),
			shooter.WithPreset(flagDifficulty),
			shooter.WithLogger(logger),
			shooter.WithStage(flagStage-1),
			shooter.WithStartMode(shooter.ModePlaying),
		)
	} else {
		var err error
		game, err = registry.Create(shooter.GameID, registry.Env{
			ConfigPath: flagConfig,
			Preset:     flagDifficulty,
			Logger:     logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
	}

	sound := audio.Open(flagMute, logger)
	if sg, ok := game.(interface{ SetAudio(shooter.Audio) }); ok {
		sg.SetAudio(sound)
	}

	var saver tui.RunSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
	} else {
		saver = store
	}

	runErr := tui.Run(game, saver, cfg, logger)

	if p, ok := sound.(*audio.Player); ok {
		p.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
