package models

import "errors"

// Domain errors shared by services and handlers.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidLanguage   = errors.New("invalid language")
	ErrInvalidActivity   = errors.New("invalid activity")
	ErrInvalidTransition = errors.New("action not allowed on the current screen")
	ErrRoundNotAnswered  = errors.New("quiz round is not answered yet")
	ErrEmptyCategory     = errors.New("category has no words")
)
