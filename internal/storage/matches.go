package storage

import (
	"fmt"
	"time"
)

// MatchRecord is one finished match in a player's history.
type MatchRecord struct {
	ID            int64
	MatchID       string
	Username      string
	Score         int
	ElapsedSecs   int
	DurationSecs  int
	EnemiesKilled int
	Victory       bool
	Outcome       string
	CompletedAt   time.Time
}

// SaveMatch stores a finished match. Saving the same MatchID twice is an
// error.
func (s *Store) SaveMatch(r MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO match_results
		 (match_id, username, score, elapsed_secs, duration_secs, enemies_killed, victory, outcome, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID,
		r.Username,
		r.Score,
		r.ElapsedSecs,
		r.DurationSecs,
		r.EnemiesKilled,
		r.Victory,
		r.Outcome,
		r.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// History returns a player's matches, best score first. Ties keep the most
// recent match on top.
func (s *Store) History(username string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, username, score, elapsed_secs, duration_secs,
		        enemies_killed, victory, outcome, completed_at
		 FROM match_results
		 WHERE username = ?
		 ORDER BY score DESC, completed_at DESC, id DESC
		 LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var completedAt string
		if err := rows.Scan(
			&r.ID,
			&r.MatchID,
			&r.Username,
			&r.Score,
			&r.ElapsedSecs,
			&r.DurationSecs,
			&r.EnemiesKilled,
			&r.Victory,
			&r.Outcome,
			&completedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CompletedAt = parseTime(completedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ClearHistory deletes every match of a player.
func (s *Store) ClearHistory(username string) error {
	if _, err := s.db.Exec("DELETE FROM match_results WHERE username = ?", username); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}
