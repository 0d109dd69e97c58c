// Package session implements the screen state machine of a learner session
package session

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sangostudent/backend/internal/models"
	"github.com/sangostudent/backend/internal/quiz"
)

const (
	roomCodeLength   = 5
	roomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RoundGenerator is the interface that wraps the quiz engine methods used by a session
type RoundGenerator interface {
	// Method GenerateRound builds the round for the word at wordIndex of the category in the given language.
	GenerateRound(category models.Category, wordIndex int, lang models.Language) *models.QuizRound
	// Method Advance moves past the word at wordIndex, marking the category completed on the last word.
	Advance(category models.Category, wordIndex int, lang models.Language, progress *models.SessionProgress) quiz.Step
}

// Session is one learner's run of the application.
//
// A Session is not safe for concurrent use; its owner must serialise calls.
type Session struct {
	ID         string
	Language   models.Language
	Progress   *models.SessionProgress
	View       View
	CreatedAt  time.Time
	LastActive time.Time

	engine  RoundGenerator
	newCode func() string
}

// Option configures a Session
type Option func(*Session)

// WithCodeGenerator replaces the duel room code generator
func WithCodeGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newCode = fn
	}
}

// New creates a session on the home screen
func New(id string, lang models.Language, progress *models.SessionProgress, engine RoundGenerator, now time.Time, opts ...Option) *Session {
	s := &Session{
		ID:         id,
		Language:   lang,
		Progress:   progress,
		View:       HomeView{},
		CreatedAt:  now,
		LastActive: now,
		engine:     engine,
		newCode:    randomRoomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen returns the current screen
func (s *Session) Screen() models.Screen {
	return s.View.Screen()
}

// StartActivity opens flashcards or a quiz over the category from the home screen
func (s *Session) StartActivity(category models.Category, activity models.Activity) error {
	if _, ok := s.View.(HomeView); !ok {
		return s.transitionError("start " + string(activity))
	}
	if len(category.Words) == 0 {
		return fmt.Errorf("%w: %s", models.ErrEmptyCategory, category.ID)
	}

	switch activity {
	case models.ActivityFlashcards:
		s.View = FlashcardsView{Category: category, Card: quiz.NewFlashcard(len(category.Words))}
	case models.ActivityQuiz:
		s.View = QuizView{
			Category: category,
			Index:    0,
			Round:    s.engine.GenerateRound(category, 0, s.Language),
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrInvalidActivity, activity)
	}
	return nil
}

// FlipCard turns the current flashcard over
func (s *Session) FlipCard() error {
	v, ok := s.View.(FlashcardsView)
	if !ok {
		return s.transitionError("flip card")
	}
	v.Card = v.Card.Flip()
	s.View = v
	return nil
}

// NextCard moves to the next flashcard.
// Moving past the last card returns to the home screen and reports finished.
func (s *Session) NextCard() (finished bool, err error) {
	v, ok := s.View.(FlashcardsView)
	if !ok {
		return false, s.transitionError("next card")
	}
	next, finished := v.Card.Next()
	if finished {
		s.View = HomeView{}
		return true, nil
	}
	v.Card = next
	s.View = v
	return false, nil
}

// PrevCard moves to the previous flashcard. On the first card it does nothing.
func (s *Session) PrevCard() error {
	v, ok := s.View.(FlashcardsView)
	if !ok {
		return s.transitionError("previous card")
	}
	v.Card = v.Card.Prev()
	s.View = v
	return nil
}

// Answer submits an option for the current quiz round.
// applied is false when the round had already been answered.
func (s *Session) Answer(option string) (outcome models.Outcome, applied bool, err error) {
	v, ok := s.View.(QuizView)
	if !ok {
		return "", false, s.transitionError("answer")
	}
	outcome, applied = quiz.SubmitAnswer(v.Round, option, s.Progress)
	return outcome, applied, nil
}

// Continue advances the quiz after the current round was answered.
// After the last word the category is marked completed and the session returns home.
func (s *Session) Continue() (completed bool, err error) {
	v, ok := s.View.(QuizView)
	if !ok {
		return false, s.transitionError("continue")
	}
	if !v.Round.Answered() {
		return false, models.ErrRoundNotAnswered
	}

	step := s.engine.Advance(v.Category, v.Index, s.Language, s.Progress)
	if step.Completed {
		s.View = HomeView{}
		return true, nil
	}
	v.Index = step.Index
	v.Round = step.Round
	s.View = v
	return false, nil
}

// Exit returns to the home screen from any screen
func (s *Session) Exit() {
	s.View = HomeView{}
}

// OpenDuel opens the duel lobby from the home screen
func (s *Session) OpenDuel() error {
	if _, ok := s.View.(HomeView); !ok {
		return s.transitionError("open duel")
	}
	s.View = DuelView{}
	return nil
}

// CreateRoom generates a room code in the duel lobby.
// If a room already exists its code is returned unchanged.
func (s *Session) CreateRoom() (string, error) {
	v, ok := s.View.(DuelView)
	if !ok {
		return "", s.transitionError("create room")
	}
	if v.Code == "" {
		v.Code = s.newCode()
		s.View = v
	}
	return v.Code, nil
}

// CancelRoom drops the room code and stays in the duel lobby
func (s *Session) CancelRoom() error {
	if _, ok := s.View.(DuelView); !ok {
		return s.transitionError("cancel room")
	}
	s.View = DuelView{}
	return nil
}

// SetLanguage switches the target language.
// An unanswered quiz round is regenerated in the new language; an answered one is kept.
func (s *Session) SetLanguage(lang models.Language) {
	if lang == s.Language {
		return
	}
	s.Language = lang

	if v, ok := s.View.(QuizView); ok && !v.Round.Answered() {
		v.Round = s.engine.GenerateRound(v.Category, v.Index, lang)
		s.View = v
	}
}

// Snapshot renders the session for API responses
func (s *Session) Snapshot() *models.SessionResponse {
	resp := &models.SessionResponse{
		ID:         s.ID,
		Language:   s.Language,
		Screen:     s.Screen(),
		Progress:   s.Progress.Clone(),
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive,
	}

	switch v := s.View.(type) {
	case FlashcardsView:
		w := v.Category.Words[v.Card.Index]
		state := &models.FlashcardsState{
			CategoryID:    v.Category.ID,
			CategoryTitle: v.Category.Title,
			Index:         v.Card.Index,
			Total:         v.Card.Length,
			Flipped:       v.Card.Flipped,
			SourceText:    w.SourceText,
			IsLast:        v.Card.IsLast(),
			Progress:      v.Card.Progress(),
		}
		if v.Card.Flipped {
			state.Translation = w.Translation(s.Language)
		}
		resp.Flashcards = state
	case QuizView:
		state := &models.QuizState{
			CategoryID:     v.Category.ID,
			CategoryTitle:  v.Category.Title,
			Index:          v.Index,
			Total:          len(v.Category.Words),
			SourceText:     v.Round.Target.SourceText,
			Language:       v.Round.Language,
			Options:        append([]string(nil), v.Round.Options...),
			SelectedOption: v.Round.Selected,
			Outcome:        v.Round.Outcome,
			Progress:       quiz.Progress(v.Index, len(v.Category.Words)),
		}
		if v.Round.Answered() {
			state.CorrectAnswer = v.Round.CorrectAnswer()
		}
		resp.Quiz = state
	case DuelView:
		resp.Duel = &models.DuelState{Code: v.Code}
	}

	return resp
}

func (s *Session) transitionError(action string) error {
	return fmt.Errorf("%w: cannot %s on %s screen", models.ErrInvalidTransition, action, s.Screen())
}

// randomRoomCode returns a short uppercase base-36 code for a duel room
func randomRoomCode() string {
	var b strings.Builder
	b.Grow(roomCodeLength)
	for range roomCodeLength {
		b.WriteByte(roomCodeAlphabet[rand.IntN(len(roomCodeAlphabet))])
	}
	return b.String()
}
