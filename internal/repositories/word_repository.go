package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vocabulariojapones/backend/internal/models"
	"go.uber.org/zap"
)

// wordRepository implements WordRepository
type wordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWordRepository creates a new vocabulary word repository
func NewWordRepository(db *sql.DB, logger *zap.Logger) *wordRepository {
	return &wordRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new vocabulary word into the database
func (r *wordRepository) Create(ctx context.Context, word *models.VocabularyWord) error {
	query := `
		INSERT INTO vocabulary_words (user_id, japanese, spanish, learned, failed_attempts, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	word.CreatedAt = time.Now().UTC().Truncate(time.Second)
	result, err := r.db.ExecContext(ctx, query,
		word.UserID,
		word.Japanese,
		word.Spanish,
		word.Learned,
		word.FailedAttempts,
		word.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create word", zap.Error(err))
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	word.ID = int(id)
	return nil
}

// GetByID retrieves a word by its primary key
func (r *wordRepository) GetByID(ctx context.Context, id int) (*models.VocabularyWord, error) {
	query := `
		SELECT id, user_id, japanese, spanish, learned, failed_attempts, created_at
		FROM vocabulary_words
		WHERE id = ?
		LIMIT 1
	`

	word := &models.VocabularyWord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.UserID,
		&word.Japanese,
		&word.Spanish,
		&word.Learned,
		&word.FailedAttempts,
		&word.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get word by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get word by id: %w", err)
	}

	return word, nil
}

// GetAllByUser retrieves all words owned by the user, ordered by id
func (r *wordRepository) GetAllByUser(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	query := `
		SELECT id, user_id, japanese, spanish, learned, failed_attempts, created_at
		FROM vocabulary_words
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query words", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.VocabularyWord
	for rows.Next() {
		var word models.VocabularyWord
		err := rows.Scan(
			&word.ID,
			&word.UserID,
			&word.Japanese,
			&word.Spanish,
			&word.Learned,
			&word.FailedAttempts,
			&word.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// ExistsByJapanese checks if the user already has a word with the given Japanese text
func (r *wordRepository) ExistsByJapanese(ctx context.Context, userID int, japanese string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM vocabulary_words WHERE user_id = ? AND japanese = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, japanese).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}

	return exists, nil
}

// UpdateLearned sets the learned flag of a word
func (r *wordRepository) UpdateLearned(ctx context.Context, id int, learned bool) error {
	query := `
		UPDATE vocabulary_words
		SET learned = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, learned, id); err != nil {
		return fmt.Errorf("failed to update word status: %w", err)
	}

	return nil
}

// IncrementFailedAttempts bumps failed_attempts by one in a single statement,
// so overlapping requests cannot lose an update.
func (r *wordRepository) IncrementFailedAttempts(ctx context.Context, id int) error {
	query := `
		UPDATE vocabulary_words
		SET failed_attempts = failed_attempts + 1
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment failed attempts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete deletes a word by ID
func (r *wordRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM vocabulary_words WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountByUser returns the number of words the user owns and how many are learned
func (r *wordRepository) CountByUser(ctx context.Context, userID int) (int, int, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(learned), 0)
		FROM vocabulary_words
		WHERE user_id = ?
	`

	var total, learned int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&total, &learned)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count words: %w", err)
	}

	return total, learned, nil
}
