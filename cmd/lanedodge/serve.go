package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/platform/httpapi"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and leaderboard API",
	Long: `Start an SSH server that lets users connect and play, and an HTTP
leaderboard API over the same scores database.

Each SSH connection gets its own session with the launcher menu.
Scores are stored per-server (all users share the same leaderboard), and
every saved run is pushed to clients of /api/live.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lanedodge/host_key

HTTP endpoints:
  GET /api/stages          - stage table
  GET /api/scores?limit=N  - best runs
  GET /api/scores/{id}     - one run
  GET /api/highscore       - best score
  GET /api/stats           - aggregate statistics
  GET /api/live            - websocket feed of finished runs

Examples:
  lanedodge serve                           # SSH on :23234, HTTP on :8080
  lanedodge serve --ssh :2222 --http ""     # SSH only
  lanedodge serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	gameCfg, err := config.LoadLaneDodge(flagConfig)
	if err != nil {
		fail("loading config: %v", err)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&gameCfg, preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	var api *httpapi.Server
	var onRun func(storage.RunRecord)
	if flagHTTPAddr != "" && store != nil {
		api = httpapi.New(store, lanedodge.GameID, gameCfg.Stages, logger.WithPrefix("lanedodge-http"))
		onRun = api.Publish
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS
	sshCfg.Preset = flagDifficulty

	sshSrv, err := tui.NewSSHServer(sshCfg, store, logger.WithPrefix("lanedodge-ssh"), onRun)
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sshSrv.ListenAndServe(ctx) })
	if api != nil {
		g.Go(func() error { return api.ListenAndServe(ctx, flagHTTPAddr) })
	}

	logger.Info("serving", "ssh", flagSSHAddr, "http", flagHTTPAddr)

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
