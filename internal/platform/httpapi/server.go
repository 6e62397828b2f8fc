// Package httpapi serves the Lane Dodge leaderboard over HTTP: the stage
// table, the best runs, the high score and a live feed of finished runs.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

// Store is the read side of storage.Store used by the API.
type Store interface {
	TopRuns(gameID string, limit int) ([]storage.RunRecord, error)
	RunByID(id string) (*storage.RunRecord, error)
	HighScore(gameID string) (int, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server routes leaderboard requests for one game.
type Server struct {
	store  Store
	gameID string
	stages config.StageTable
	logger *log.Logger
	router *mux.Router
	feed   *Feed
}

// New builds the router. A nil logger uses the default logger.
func New(store Store, gameID string, stages config.StageTable, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  store,
		gameID: gameID,
		stages: stages,
		logger: logger,
		router: mux.NewRouter(),
		feed:   NewFeed(logger),
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stages", s.handleStages).Methods(http.MethodGet)
	api.HandleFunc("/scores", s.handleScores).Methods(http.MethodGet)
	api.HandleFunc("/scores/{id}", s.handleRun).Methods(http.MethodGet)
	api.HandleFunc("/highscore", s.handleHighScore).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/live", s.feed.ServeHTTP).Methods(http.MethodGet)
	s.router.Use(s.logRequests)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Publish pushes a finished run to every live feed subscriber.
func (s *Server) Publish(run storage.RunRecord) {
	s.feed.Publish(toRunDTO(run))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.feed.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

type stageDTO struct {
	ID                int     `json:"id"`
	MinScore          int     `json:"minScore"`
	MaxScore          *int    `json:"maxScore"` // null for the open-ended last stage
	SpeedPxPerSec     float64 `json:"speedPxPerSec"`
	SpawnIntervalMs   float64 `json:"spawnIntervalMs"`
	DoubleSpawnChance float64 `json:"doubleSpawnChance"`
}

type runDTO struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Stage     int       `json:"stage"`
	ElapsedMs int64     `json:"elapsedMs"`
	Seed      int64     `json:"seed"`
	Preset    string    `json:"preset,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type statsDTO struct {
	Games      int        `json:"games"`
	HighScore  int        `json:"highScore"`
	AvgScore   float64    `json:"avgScore"`
	TotalScore int64      `json:"totalScore"`
	BestStage  int        `json:"bestStage"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

func toRunDTO(r storage.RunRecord) runDTO {
	return runDTO{
		ID:        r.ID,
		Score:     r.Score,
		Stage:     r.Stage,
		ElapsedMs: r.ElapsedMs,
		Seed:      r.Seed,
		Preset:    r.Preset,
		CreatedAt: r.CreatedAt,
	}
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	out := make([]stageDTO, 0, len(s.stages))
	for _, st := range s.stages {
		dto := stageDTO{
			ID:                st.ID,
			MinScore:          st.MinScore,
			SpeedPxPerSec:     st.SpeedPxPerSec,
			SpawnIntervalMs:   st.SpawnIntervalMs,
			DoubleSpawnChance: st.DoubleSpawnChance,
		}
		if st.MaxScore != config.Unbounded {
			hi := st.MaxScore
			dto.MaxScore = &hi
		}
		out = append(out, dto)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := s.store.TopRuns(s.gameID, limit)
	if err != nil {
		s.logger.Error("Failed to load scores", "err", err)
		s.writeError(w, http.StatusInternalServerError, "scores unavailable")
		return
	}

	out := make([]runDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunDTO(run))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	run, err := s.store.RunByID(id)
	if err != nil {
		s.logger.Error("Failed to load run", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "run unavailable")
		return
	}
	if run == nil || run.GameID != s.gameID {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunDTO(*run))
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	high, err := s.store.HighScore(s.gameID)
	if err != nil {
		s.logger.Error("Failed to load high score", "err", err)
		s.writeError(w, http.StatusInternalServerError, "high score unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"highScore": high})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetGameStats(s.gameID)
	if err != nil {
		s.logger.Error("Failed to load stats", "err", err)
		s.writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	out := statsDTO{
		Games:      stats.GamesCount,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		TotalScore: stats.TotalScore,
		BestStage:  stats.BestStage,
	}
	if !stats.LastPlayed.IsZero() {
		out.LastPlayed = &stats.LastPlayed
	}
	s.writeJSON(w, http.StatusOK, out)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
