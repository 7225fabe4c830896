package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRuns  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores and the best score.

Examples:
  flappy scores
  flappy scores --limit 20
  flappy scores --runs     # also list recent runs
  flappy scores --clear    # delete all scores, runs and the best score`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "runs", false, "Also show recent runs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(flappy.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(flappy.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Flappy Bird")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if best, ok, err := store.BestScore(flappy.GameID); err == nil && ok {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}

	if !flagScoresRuns {
		return
	}
	runs, err := store.RecentRuns(flappy.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	fmt.Printf("  %-6s  %-7s  %-8s  %-6s  %-6s  %s\n", "Score", "Medal", "Time", "Pipes", "From", "Date")
	for _, r := range runs {
		medal := r.Medal
		if medal == "" {
			medal = "-"
		}
		fmt.Printf("  %-6d  %-7s  %-8s  %-6d  %-6s  %s\n",
			r.Score, medal, fmt.Sprintf("%.1fs", r.Duration), r.Obstacles, r.Source,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
