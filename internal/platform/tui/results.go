package tui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// resultRecorder stores finished matches in the player's history and the
// global leaderboard.
type resultRecorder struct {
	store    *storage.Store
	gameID   string
	username string
	logger   *log.Logger
}

func newResultRecorder(store *storage.Store, gameID, username string, logger *log.Logger) *resultRecorder {
	return &resultRecorder{store: store, gameID: gameID, username: username, logger: logger}
}

// Record implements invaders.ResultSink.
func (r *resultRecorder) Record(res invaders.MatchResult) error {
	if r.store == nil {
		return nil
	}

	_, histErr := r.store.SaveMatch(matchRecord(r.username, res))

	var scoreErr error
	if res.Score > 0 {
		_, scoreErr = r.store.SaveScore(r.gameID, res.Score)
	}

	err := errors.Join(histErr, scoreErr)
	if err != nil && r.logger != nil {
		r.logger.Error("could not save result", "user", r.username, "match", res.ID, "err", err)
	}
	return err
}

// matchRecord converts an engine result to its stored form.
func matchRecord(username string, res invaders.MatchResult) storage.MatchRecord {
	return storage.MatchRecord{
		MatchID:       res.ID,
		Username:      username,
		Score:         res.Score,
		ElapsedSecs:   res.ElapsedSecs,
		DurationSecs:  res.DurationSecs,
		EnemiesKilled: res.EnemiesKilled,
		Victory:       res.Victory,
		Outcome:       string(res.Outcome),
		CompletedAt:   res.CompletedAt,
	}
}
