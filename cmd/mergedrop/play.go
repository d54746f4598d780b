package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mergedrop/internal/config"
	"github.com/vovakirdan/tui-mergedrop/internal/core"
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop"
	"github.com/vovakirdan/tui-mergedrop/internal/platform/tui"
	"github.com/vovakirdan/tui-mergedrop/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game session in the current terminal.

Controls:
  Mouse        - Move the preview, click to drop
  Left/Right   - Move the drop preview
  Space/Enter  - Drop the disc
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  mergedrop play
  mergedrop play --config ./my-tuning.yaml
  mergedrop play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
}

func runPlay(_ *cobra.Command, _ []string) {
	tuning, err := config.LoadMerge(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.BoardW = w
		rt.BoardH = (h - 2) * 2
		rt.Compact = w < 60
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var gs mergedrop.ScoreStore
	if store != nil {
		gs = store.ForGame(mergedrop.GameID)
	}
	game := mergedrop.New(tuning, gs)

	runErr := tui.Run(game, rt)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
