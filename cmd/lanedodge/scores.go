package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs and overall statistics.

Examples:
  lanedodge scores
  lanedodge scores --limit 25
  lanedodge scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs and the high score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(lanedodge.GameID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	runs, err := store.TopRuns(lanedodge.GameID, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Lane Dodge")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lanedodge play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-7s  %s\n", "Rank", "Score", "Stage", "Time", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-7s  %s\n", "----", "-----", "-----", "----", "----", "----")
	for i, run := range runs {
		fmt.Printf("  %-4d  %-6d  %-5d  %-6s  %-7s  %s\n",
			i+1,
			run.Score,
			run.Stage,
			(time.Duration(run.ElapsedMs) * time.Millisecond).Round(time.Second),
			presetLabel(run.Preset),
			run.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetGameStats(lanedodge.GameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d   Runs: %d   Average: %.1f   Best stage: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestStage)
}
