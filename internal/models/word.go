package models

import "time"

// VocabularyWord represents a Japanese-Spanish word pair owned by a user
type VocabularyWord struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Japanese       string    `json:"japanese"`
	Spanish        string    `json:"spanish"`
	Learned        bool      `json:"learned"`
	FailedAttempts int       `json:"failedAttempts"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AddWordRequest represents a word creation request body
type AddWordRequest struct {
	Japanese string `json:"japanese"`
	Spanish  string `json:"spanish"`
}

// UpdateStatusRequest represents a learned-status update request body.
// Learned is a pointer so a missing or mistyped field can be told apart from "false".
type UpdateStatusRequest struct {
	Learned *bool `json:"learned"`
}
