package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/vocabulariojapones/backend/internal/models"
)

// PracticeWordRepository is the subset of word data access the practice service needs
type PracticeWordRepository interface {
	// Method GetAllByUser retrieves all words owned by the user, ordered by id.
	GetAllByUser(ctx context.Context, userID int) ([]models.VocabularyWord, error)
}

// Deck is a practice ordering of a user's words: most-failed words first,
// ties broken by id, so the ordering is deterministic for unchanged data.
type Deck struct {
	Words []models.VocabularyWord `json:"words"`
}

// Card returns the word at the given position, wrapping positions outside the deck
func (d *Deck) Card(position int) (*models.VocabularyWord, error) {
	if len(d.Words) == 0 {
		return nil, fmt.Errorf("%w: deck is empty", ErrNotFound)
	}
	if position < 0 {
		position = 0
	}
	return &d.Words[position%len(d.Words)], nil
}

// Next advances the position circularly; after the last card comes the first
func (d *Deck) Next(position int) int {
	if len(d.Words) == 0 {
		return 0
	}
	if position < 0 {
		position = 0
	}
	return (position + 1) % len(d.Words)
}

// practiceService builds practice decks from the user's vocabulary
type practiceService struct {
	wordRepo PracticeWordRepository
}

// NewPracticeService creates a new practice service
func NewPracticeService(wordRepo PracticeWordRepository) *practiceService {
	return &practiceService{
		wordRepo: wordRepo,
	}
}

// BuildDeck retrieves the user's words and orders them for practice.
// This is a plain frequency heuristic, not a spaced-repetition schedule.
func (s *practiceService) BuildDeck(ctx context.Context, userID int) (*Deck, error) {
	words, err := s.wordRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.VocabularyWord{}
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].FailedAttempts != words[j].FailedAttempts {
			return words[i].FailedAttempts > words[j].FailedAttempts
		}
		return words[i].ID < words[j].ID
	})

	return &Deck{Words: words}, nil
}
