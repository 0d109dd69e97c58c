package models

import (
	"fmt"
	"time"
)

// Screen represents the screen a session is currently on
type Screen string

const (
	ScreenHome       Screen = "home"
	ScreenFlashcards Screen = "flashcards"
	ScreenQuiz       Screen = "quiz"
	ScreenDuel       Screen = "duel"
)

// Activity represents a learning activity that can be started from the home screen
type Activity string

const (
	ActivityFlashcards Activity = "flashcards"
	ActivityQuiz       Activity = "quiz"
)

// ParseActivity converts a request value into an Activity
func ParseActivity(s string) (Activity, error) {
	switch a := Activity(s); a {
	case ActivityFlashcards, ActivityQuiz:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q, must be 'flashcards' or 'quiz'", ErrInvalidActivity, s)
	}
}

// SessionResponse represents the full state of a session in API responses.
// Exactly one of Flashcards, Quiz and Duel is set, matching Screen, except on the home screen.
type SessionResponse struct {
	ID         string           `json:"id"`
	Language   Language         `json:"language"`
	Screen     Screen           `json:"screen"`
	Progress   SessionProgress  `json:"progress"`
	Flashcards *FlashcardsState `json:"flashcards,omitempty"`
	Quiz       *QuizState       `json:"quiz,omitempty"`
	Duel       *DuelState       `json:"duel,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	LastActive time.Time        `json:"lastActive"`
}

// FlashcardsState represents the flashcards screen
type FlashcardsState struct {
	CategoryID    string  `json:"categoryId"`
	CategoryTitle string  `json:"categoryTitle"`
	Index         int     `json:"index"`
	Total         int     `json:"total"`
	Flipped       bool    `json:"flipped"`
	SourceText    string  `json:"sourceText"`
	Translation   string  `json:"translation,omitempty"` // Only present on the back side of the card
	IsLast        bool    `json:"isLast"`
	Progress      float64 `json:"progress"` // Percent of the deck seen, including the current card
}

// QuizState represents the quiz screen
type QuizState struct {
	CategoryID     string   `json:"categoryId"`
	CategoryTitle  string   `json:"categoryTitle"`
	Index          int      `json:"index"`
	Total          int      `json:"total"`
	SourceText     string   `json:"sourceText"`
	Language       Language `json:"language"`
	Options        []string `json:"options"`
	SelectedOption string   `json:"selectedOption,omitempty"`
	Outcome        Outcome  `json:"outcome,omitempty"`
	CorrectAnswer  string   `json:"correctAnswer,omitempty"` // Revealed once the round is answered
	Progress       float64  `json:"progress"`                // Percent of the category already passed
}

// DuelState represents the duel screen
type DuelState struct {
	Code string `json:"code,omitempty"`
}

// AnswerResponse represents the result of an answer submission
type AnswerResponse struct {
	Outcome Outcome          `json:"outcome"`
	Applied bool             `json:"applied"` // False when the round had already been answered
	Session *SessionResponse `json:"session"`
}

// ContinueResponse represents the result of advancing a quiz
type ContinueResponse struct {
	CategoryCompleted bool             `json:"categoryCompleted"`
	Session           *SessionResponse `json:"session"`
}
