// lanedodge is a three-lane dodging game for the terminal.
//
// Usage:
//
//	lanedodge                  - Start the launcher menu
//	lanedodge play             - Play directly
//	lanedodge list             - List registered games
//	lanedodge stages           - Print the difficulty stage table
//	lanedodge scores           - Show the best runs
//	lanedodge serve            - Serve SSH play and the leaderboard API
//	lanedodge replay <file>    - Re-run a recorded session headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.lanedodge/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs of interactive play to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanedodge",
	Short: "Lane Dodge - dodge falling blocks in your terminal",
	Long: `Lane Dodge is a terminal game: switch between three lanes and dodge the
blocks falling toward you. Every block that passes scores a point, and the
game speeds up as your score climbs.

Without a subcommand the launcher menu starts.

Available commands:
  play     - Play directly
  list     - Show registered games
  stages   - Print the difficulty stage table
  scores   - View the best runs
  serve    - Start the SSH server and leaderboard API
  replay   - Re-run a recorded session

Examples:
  lanedodge
  lanedodge play --difficulty hard
  lanedodge serve --ssh :2222 --http :8080
  lanedodge replay ~/.lanedodge/replays/lanedodge_20260101_120000.json`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanedodge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive play to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds the process logger.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanedodge",
	})
}

// playLogger logs to --log-file, or nowhere so the alt screen stays clean.
// The returned func closes the file.
func playLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// applyGameFlags hands the config path and preset to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	lanedodge.SetConfigPath(flagConfig)
	lanedodge.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig sizes the game to the terminal. A zero --seed is replaced
// with a time-based one by the host.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
