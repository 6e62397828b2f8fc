package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/replay"
)

var (
	flagStage  int
	flagDebug  bool
	flagRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lane Dodge",
	Long: `Start playing immediately, skipping the launcher.

Controls:
  Left/Right, A/D  - Move one lane
  1-3              - Jump to a lane (mouse clicks work too)
  Enter/Space      - Start / continue
  R                - Play again from the result screen
  P                - Pause
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Five lives
  normal - The configured game
  hard   - Two lives
  fixed  - No progression, locked to --stage

Debug sessions (--debug) bind extra keys: . > / single-step while paused,
h hitboxes, t telemetry, i invincible, s spawning, k stage lock,
! @ # spawn into a lane. Debug runs never save scores.

Examples:
  lanedodge play
  lanedodge play --difficulty hard
  lanedodge play --difficulty fixed --stage 6
  lanedodge play --seed 42 --record
  lanedodge play --config ./my-lanedodge.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStage, "stage", 1, "Stage locked by the fixed difficulty")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable the debug harness")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session to ~/.lanedodge/replays")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}
	if flagDebug && flagRecord {
		fail("debug sessions cannot be recorded")
	}
	lanedodge.SetFixedStage(flagStage)

	logger, closeLog := playLogger()
	defer closeLog()

	cfg := runtimeConfig()
	cfg.Debug = flagDebug
	cfg.SeedProvided = flagSeed != 0
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game := lanedodge.New()
	game.Configure(flagDifficulty, flagStage)

	store := openStore()

	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder(lanedodge.GameID, cfg.Seed, flagDifficulty, flagStage)
	}

	runErr := tui.Run(game, cfg, tui.Options{
		Store:    store,
		Logger:   logger,
		Recorder: rec,
		Preset:   flagDifficulty,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if rec != nil {
		rec.Stop()
		if err := saveRecording(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording not saved: %v\n", err)
		}
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

func saveRecording(rec *replay.Recorder) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".lanedodge", "replays", replay.GenerateFilename())
	if err := rec.Save(path); err != nil {
		return err
	}
	fmt.Printf("Replay saved to %s (%d frames)\n", path, rec.FrameCount())
	return nil
}
