// mergedrop is a physics-driven merge game for the terminal: drop discs,
// fuse equal values into bigger ones, and keep the pile under the line.
//
// Usage:
//
//	mergedrop play           - Play in the current terminal
//	mergedrop scores         - Show high scores
//	mergedrop serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set render rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.mergedrop/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mergedrop",
	Short: "Merge Drop - a falling-disc merge game in your terminal",
	Long: `Merge Drop is a terminal game: discs fall under gravity, equal values
fuse into a disc of double value when they touch gently, and the session
ends when the pile crosses the danger line.

Available commands:
  play     - Play in the current terminal
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  mergedrop play
  mergedrop play --config ./my-tuning.yaml
  mergedrop scores
  mergedrop serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mergedrop/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
