package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/config"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Print the difficulty stage table",
	Long: `Print the stages of the loaded config, after the difficulty preset
is applied. The stage in effect is the one whose score range holds the
current score.

Examples:
  lanedodge stages
  lanedodge stages --config ./my-lanedodge.yaml`,
	Args: cobra.NoArgs,
	Run:  runStages,
}

func runStages(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	cfg, err := config.LoadLaneDodge(flagConfig)
	if err != nil {
		fail("loading config: %v", err)
	}
	preset := config.ParsePreset(flagDifficulty)
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}

	fmt.Printf("Lanes: %d   Lives: %d   Preset: %s\n", cfg.Field.LaneCount, cfg.Player.InitialLives, presetLabel(string(preset)))
	fmt.Println()
	fmt.Printf("  %-5s  %-11s  %-9s  %-10s  %s\n", "Stage", "Scores", "Speed", "Interval", "Double")
	fmt.Printf("  %-5s  %-11s  %-9s  %-10s  %s\n", "-----", "------", "-----", "--------", "------")
	for _, st := range cfg.Stages {
		fmt.Printf("  %-5d  %-11s  %-9s  %-10s  %.0f%%\n",
			st.ID,
			scoreRange(st),
			fmt.Sprintf("%.0f px/s", st.SpeedPxPerSec),
			fmt.Sprintf("%.0f ms", st.SpawnIntervalMs),
			st.DoubleSpawnChance*100,
		)
	}
}

func scoreRange(st config.Stage) string {
	if st.MaxScore == config.Unbounded {
		return fmt.Sprintf("%d+", st.MinScore)
	}
	return fmt.Sprintf("%d-%d", st.MinScore, st.MaxScore)
}

func presetLabel(p string) string {
	if p == "" {
		return "config"
	}
	return p
}
