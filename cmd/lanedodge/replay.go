package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded session",
	Long: `Re-run a session recorded with 'lanedodge play --record' without a
terminal UI, and print every run it produced. The same seed, preset and
input reproduce the same runs.

Examples:
  lanedodge replay ~/.lanedodge/replays/lanedodge_20260101_120000.json
  lanedodge replay session.json --config ./my-lanedodge.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	data, err := replay.LoadReplay(args[0])
	if err != nil {
		fail("%v", err)
	}
	lanedodge.SetConfigPath(flagConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := replay.Play(ctx, *data)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Replay %s\n", data.ID)
	fmt.Printf("  Recorded: %s\n", data.StartTime)
	fmt.Printf("  Seed:     %d\n", data.Seed)
	fmt.Printf("  Preset:   %s\n", presetLabel(data.Preset))
	fmt.Printf("  Frames:   %d\n", out.Frames)
	fmt.Println()

	if len(out.Runs) == 0 {
		fmt.Println("No finished runs.")
	}
	for i, run := range out.Runs {
		marker := ""
		if run.UpdatedHighScore {
			marker = "  new high score"
		}
		fmt.Printf("  Run %d: score %d, stage %d, %s%s\n",
			i+1,
			run.Score,
			run.Stage,
			time.Duration(run.ElapsedMs*float64(time.Millisecond)).Round(time.Millisecond),
			marker,
		)
	}

	fmt.Println()
	fmt.Printf("Final: %s, score %d, lives %d\n", out.Final.Screen, out.Final.Score, out.Final.Lives)
}
