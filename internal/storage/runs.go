package storage

import (
	"fmt"
	"time"
)

// Run sources.
const (
	SourceLocal = "local"
	SourceSSH   = "ssh"
	SourceSim   = "sim"
)

// RunRecord is the outcome of one finished run.
type RunRecord struct {
	ID        int64
	GameID    string
	Score     int
	Best      int
	Medal     string
	Seed      int64
	Obstacles int     // Obstacles spawned during the run
	Duration  float64 // Simulated seconds from start to collision
	Source    string  // SourceLocal, SourceSSH or SourceSim
	CreatedAt time.Time
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Source == "" {
		r.Source = SourceLocal
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, score, best, medal, seed, obstacles, duration_secs, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Best, r.Medal, r.Seed, r.Obstacles, r.Duration, r.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, best, medal, seed, obstacles, duration_secs, source, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Score,
			&r.Best,
			&r.Medal,
			&r.Seed,
			&r.Obstacles,
			&r.Duration,
			&r.Source,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}
