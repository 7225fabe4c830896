// flappy is a terminal Flappy Bird built on a fixed-tick simulation core.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy sim               - Run headless games with an autopilot
//	flappy serve             - Start an SSH server for remote play
//	flappy scores            - Show high scores and recent runs
//	flappy config            - Print the effective game config
//	flappy list              - List registered games
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - keep the bird in the air, in your terminal",
	Long: `Flappy is a terminal Flappy Bird. Flap through an endless stream of
obstacles; the run ends on the first collision.

Available commands:
  play     - Play in the terminal
  sim      - Run headless games with an autopilot
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  config   - Print the effective game config
  list     - Show registered games

Examples:
  flappy play
  flappy play --difficulty hard
  flappy sim --runs 20 --seconds 120
  flappy serve --ssh :2222
  flappy scores --runs`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// The SQLite slot is the game's best-score store.
var _ flappy.BestScores = (*storage.BestSlot)(nil)

// parseDifficulty validates the --difficulty flag.
func parseDifficulty() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}

// loadConfig loads the game config with the preset applied, the way a game
// does on reset.
func loadConfig(preset config.DifficultyPreset) (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	cfg = config.NewDifficultyManager(cfg.Difficulty).Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return config.FlappyConfig{}, err
	}
	return cfg, nil
}

// bestScoresFor returns the persistent best-score slot, or nil for an
// in-memory best when there is no store.
func bestScoresFor(store *storage.Store) flappy.BestScores {
	if store == nil {
		return nil
	}
	return store.BestSlot(flappy.GameID)
}
