package models

import "time"

// UserProgress represents accumulated practice counters for a (user, word) pair
type UserProgress struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	WordID      int       `json:"wordId"`
	Attempts    int       `json:"attempts"`
	Successes   int       `json:"successes"`
	LastAttempt time.Time `json:"lastAttempt"`
}

// UserStats represents aggregate statistics over a user's words and progress
type UserStats struct {
	TotalWords    int     `json:"totalWords"`
	LearnedWords  int     `json:"learnedWords"`
	TotalAttempts int     `json:"totalAttempts"`
	SuccessRate   float64 `json:"successRate"`
}
