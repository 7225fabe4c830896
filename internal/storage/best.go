package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// BestScore returns the persisted best score for a game; ok is false when
// none has been stored.
func (s *Store) BestScore(gameID string) (score int, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT score FROM best_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, true, nil
}

// SetBestScore raises the best score for a game to score. A lower score
// never replaces a higher stored one, so concurrent writers cannot lower it.
func (s *Store) SetBestScore(gameID string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			score = MAX(best_scores.score, excluded.score),
			updated_at = CASE WHEN excluded.score > best_scores.score
				THEN excluded.updated_at ELSE best_scores.updated_at END`,
		gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// BestSlot binds the best-score methods to one game.
type BestSlot struct {
	store  *Store
	gameID string
}

// BestSlot returns the best-score slot for a game.
func (s *Store) BestSlot(gameID string) *BestSlot {
	return &BestSlot{store: s, gameID: gameID}
}

// BestScore returns the slot's stored score.
func (b *BestSlot) BestScore() (int, bool, error) {
	return b.store.BestScore(b.gameID)
}

// SetBestScore raises the slot's stored score.
func (b *BestSlot) SetBestScore(score int) error {
	return b.store.SetBestScore(b.gameID, score)
}
