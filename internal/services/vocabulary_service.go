package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vocabulariojapones/backend/internal/models"
	"github.com/vocabulariojapones/backend/internal/repositories"
	"go.uber.org/zap"
)

// WordRepository is the interface that wraps methods for VocabularyWord table data access
type WordRepository interface {
	// Method Create inserts a new word into the database.
	//
	// "word" parameter is used to create the word; its ID is filled in on success.
	Create(ctx context.Context, word *models.VocabularyWord) error
	// Method GetByID retrieves a word by its primary key.
	//
	// If a word with such ID does not exist, repositories.ErrNotFound
	// will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.VocabularyWord, error)
	// Method GetAllByUser retrieves all words owned by the user, ordered by id.
	GetAllByUser(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// Method ExistsByJapanese checks if the user already has a word with the
	// given Japanese text. Uniqueness is scoped per owner.
	ExistsByJapanese(ctx context.Context, userID int, japanese string) (bool, error)
	// Method UpdateLearned sets the learned flag of a word.
	UpdateLearned(ctx context.Context, id int, learned bool) error
	// Method IncrementFailedAttempts bumps failed_attempts by one atomically.
	//
	// If a word with such ID does not exist, repositories.ErrNotFound will be returned.
	IncrementFailedAttempts(ctx context.Context, id int) error
	// Method Delete deletes a word by ID.
	//
	// If a word with such ID does not exist, repositories.ErrNotFound will be returned.
	Delete(ctx context.Context, id int) error
	// Method CountByUser returns the total and learned word counts for the user.
	CountByUser(ctx context.Context, userID int) (int, int, error)
}

// ProgressRepository is the interface that wraps methods for UserProgress table data access
type ProgressRepository interface {
	// Method RecordAttempt upserts the progress counters for a (user, word) pair.
	RecordAttempt(ctx context.Context, userID, wordID int, success bool) error
	// Method GetTotals returns summed attempts and successes for the user.
	GetTotals(ctx context.Context, userID int) (int, int, error)
}

// vocabularyService implements the vocabulary business logic
type vocabularyService struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
	logger       *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	logger *zap.Logger,
) *vocabularyService {
	return &vocabularyService{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// AddWord creates a new word pair for the user.
// The Japanese text must be unique among the user's own words.
func (s *vocabularyService) AddWord(ctx context.Context, userID int, japanese, spanish string) (*models.VocabularyWord, error) {
	japanese = strings.TrimSpace(japanese)
	spanish = strings.TrimSpace(spanish)
	if japanese == "" {
		return nil, fmt.Errorf("%w: japanese cannot be empty", ErrInvalidInput)
	}
	if spanish == "" {
		return nil, fmt.Errorf("%w: spanish cannot be empty", ErrInvalidInput)
	}

	exists, err := s.wordRepo.ExistsByJapanese(ctx, userID, japanese)
	if err != nil {
		return nil, fmt.Errorf("failed to check word: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: word already exists", ErrAlreadyExists)
	}

	word := &models.VocabularyWord{
		UserID:   userID,
		Japanese: japanese,
		Spanish:  spanish,
	}
	if err := s.wordRepo.Create(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

// ListWords retrieves all of the user's words
func (s *vocabularyService) ListWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	words, err := s.wordRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.VocabularyWord{}
	}
	return words, nil
}

// SetLearned sets the learned flag of a word owned by the user.
// failed_attempts is left untouched. Marking a word learned counts as a
// successful attempt in the progress history.
func (s *vocabularyService) SetLearned(ctx context.Context, userID, wordID int, learned bool) (*models.VocabularyWord, error) {
	word, err := s.getOwnedWord(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	if err := s.wordRepo.UpdateLearned(ctx, wordID, learned); err != nil {
		return nil, err
	}
	word.Learned = learned

	if learned {
		if err := s.progressRepo.RecordAttempt(ctx, userID, wordID, true); err != nil {
			return nil, err
		}
	}

	return word, nil
}

// RecordFailure increments the word's failure counter by one.
// The learned flag is not touched here; whether a failure unlearns a word
// is the caller's policy.
func (s *vocabularyService) RecordFailure(ctx context.Context, userID, wordID int) (*models.VocabularyWord, error) {
	if _, err := s.getOwnedWord(ctx, userID, wordID); err != nil {
		return nil, err
	}

	if err := s.wordRepo.IncrementFailedAttempts(ctx, wordID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: word", ErrNotFound)
		}
		return nil, err
	}

	if err := s.progressRepo.RecordAttempt(ctx, userID, wordID, false); err != nil {
		return nil, err
	}

	// Re-read so the returned counter reflects concurrent increments
	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: word", ErrNotFound)
		}
		return nil, err
	}

	return word, nil
}

// DeleteWord deletes a word owned by the user
func (s *vocabularyService) DeleteWord(ctx context.Context, userID, wordID int) error {
	if _, err := s.getOwnedWord(ctx, userID, wordID); err != nil {
		return err
	}

	if err := s.wordRepo.Delete(ctx, wordID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: word", ErrNotFound)
		}
		return err
	}

	return nil
}

// Stats aggregates the user's word counts and practice history.
// With no recorded attempts the success rate is 0, never NaN.
func (s *vocabularyService) Stats(ctx context.Context, userID int) (*models.UserStats, error) {
	totalWords, learnedWords, err := s.wordRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	attempts, successes, err := s.progressRepo.GetTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		TotalWords:    totalWords,
		LearnedWords:  learnedWords,
		TotalAttempts: attempts,
	}
	if attempts > 0 {
		stats.SuccessRate = float64(successes) / float64(attempts)
	}

	return stats, nil
}

// getOwnedWord resolves a word by primary key and checks ownership.
// A missing word yields ErrNotFound; a word owned by another user yields
// ErrForbidden, so existence is only confirmed to its owner after the
// lookup, never before.
func (s *vocabularyService) getOwnedWord(ctx context.Context, userID, wordID int) (*models.VocabularyWord, error) {
	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: word", ErrNotFound)
		}
		return nil, err
	}

	if word.UserID != userID {
		s.logger.Warn("ownership check failed",
			zap.Int("userId", userID),
			zap.Int("wordId", wordID),
			zap.Int("ownerId", word.UserID),
		)
		return nil, fmt.Errorf("%w: word belongs to another user", ErrForbidden)
	}

	return word, nil
}
