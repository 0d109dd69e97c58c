package models

// CreateSessionRequest represents the body of a session creation request
type CreateSessionRequest struct {
	Language string `json:"language" example:"fr"` // Empty means the default language
}

// SetLanguageRequest represents the body of a language switch request
type SetLanguageRequest struct {
	Language string `json:"language" example:"ru"`
}

// StartActivityRequest represents the body of a request opening flashcards or a quiz
type StartActivityRequest struct {
	CategoryID string `json:"categoryId" example:"numbers"`
	Activity   string `json:"activity" example:"quiz"` // "flashcards" or "quiz"
}

// AnswerRequest represents the body of a quiz answer submission
type AnswerRequest struct {
	Option string `json:"option" example:"Dix"`
}
