package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// HighScores is the game-facing high score collaborator backed by a Store.
// Failures are logged and swallowed: Load falls back to 0 and Save is skipped.
type HighScores struct {
	store  *Store
	gameID string
	logger *log.Logger
}

var _ core.HighScoreStore = (*HighScores)(nil)

// NewHighScores binds a store to one game. A nil store yields a collaborator
// that loads 0 and saves nothing; a nil logger uses the default logger.
func NewHighScores(store *Store, gameID string, logger *log.Logger) *HighScores {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScores{store: store, gameID: gameID, logger: logger}
}

// Load returns the stored high score, or 0 when unavailable.
func (h *HighScores) Load() int {
	if h.store == nil {
		return 0
	}
	score, err := h.store.HighScore(h.gameID)
	if err != nil {
		h.logger.Warn("high score unavailable", "game", h.gameID, "err", err)
		return 0
	}
	return max(0, score)
}

// Save stores a new high score. Negative values are ignored.
func (h *HighScores) Save(score int) {
	if h.store == nil || score < 0 {
		return
	}
	if err := h.store.SetHighScore(h.gameID, score); err != nil {
		h.logger.Warn("high score not saved", "game", h.gameID, "score", score, "err", err)
		return
	}
	h.logger.Debug("high score saved", "game", h.gameID, "score", score)
}
