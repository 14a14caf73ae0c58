package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// progressRepository implements ProgressRepository
type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new user progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// RecordAttempt upserts the progress counters for a (user, word) pair.
// Attempts always grows by one; successes only when the attempt succeeded.
func (r *progressRepository) RecordAttempt(ctx context.Context, userID, wordID int, success bool) error {
	successInc := 0
	if success {
		successInc = 1
	}

	query := `
		INSERT INTO user_progress (user_id, word_id, attempts, successes, last_attempt)
		VALUES (?, ?, 1, ?, NOW())
		ON DUPLICATE KEY UPDATE
			attempts = attempts + 1,
			successes = successes + VALUES(successes),
			last_attempt = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, wordID, successInc); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	return nil
}

// GetTotals returns the summed attempts and successes over all of the user's progress rows
func (r *progressRepository) GetTotals(ctx context.Context, userID int) (int, int, error) {
	query := `
		SELECT COALESCE(SUM(attempts), 0), COALESCE(SUM(successes), 0)
		FROM user_progress
		WHERE user_id = ?
	`

	var attempts, successes int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&attempts, &successes)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get progress totals: %w", err)
	}

	return attempts, successes, nil
}
