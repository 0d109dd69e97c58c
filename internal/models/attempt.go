package models

import "time"

// QuizAttempt represents an answer submission recorded in the attempt log
type QuizAttempt struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"sessionId"`
	CategoryID    string    `json:"categoryId"`
	WordID        string    `json:"wordId"`
	Language      Language  `json:"language"`
	ChosenOption  string    `json:"chosenOption"`
	CorrectOption string    `json:"correctOption"`
	IsCorrect     bool      `json:"isCorrect"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AttemptSummary represents aggregated attempt counts for a session
type AttemptSummary struct {
	SessionID string `json:"sessionId"`
	Total     int    `json:"total"`
	Correct   int    `json:"correct"`
	Wrong     int    `json:"wrong"`
}
