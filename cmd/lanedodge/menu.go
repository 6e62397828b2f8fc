package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the launcher menu",
	Long: `Start Lane Dodge in interactive menu mode.

Pick a difficulty with left/right, play, or browse the high scores.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down      - Navigate menu
  Left/Right   - Change difficulty
  Enter        - Select
  Q            - Quit

Examples:
  lanedodge menu
  lanedodge menu --fps 30
  lanedodge menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	logger, closeLog := playLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	preset := flagDifficulty

	// Menu loop
	for {
		menuResult, err := tui.RunMenu("Lane Dodge", cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Preset

		if menuResult.Quit {
			break
		}

		switch menuResult.Item {
		case tui.MenuScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, lanedodge.GameID, "Lane Dodge", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case tui.MenuPlay:
			game := lanedodge.New()
			game.Configure(preset, 0)

			// Fresh seed for each run unless pinned
			runCfg := cfg
			runCfg.SeedProvided = flagSeed != 0
			if flagSeed == 0 {
				runCfg.Seed = time.Now().UnixNano()
			}

			err := tui.Run(game, runCfg, tui.Options{
				Store:     store,
				Logger:    logger,
				Preset:    preset,
				AllowBack: true,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
		}

		// Loop back to menu
	}
}
