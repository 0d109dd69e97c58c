package session

import (
	"github.com/sangostudent/backend/internal/models"
	"github.com/sangostudent/backend/internal/quiz"
)

// View is the current screen of a session together with the data that screen needs.
// It is one of HomeView, FlashcardsView, QuizView or DuelView.
type View interface {
	Screen() models.Screen
	view()
}

// HomeView is the category overview
type HomeView struct{}

// FlashcardsView is a flashcard walk through one category
type FlashcardsView struct {
	Category models.Category
	Card     quiz.Flashcard
}

// QuizView is a quiz over one category
type QuizView struct {
	Category models.Category
	Index    int
	Round    *models.QuizRound
}

// DuelView is the duel lobby. Code is empty until a room is created.
type DuelView struct {
	Code string
}

func (HomeView) Screen() models.Screen       { return models.ScreenHome }
func (FlashcardsView) Screen() models.Screen { return models.ScreenFlashcards }
func (QuizView) Screen() models.Screen       { return models.ScreenQuiz }
func (DuelView) Screen() models.Screen       { return models.ScreenDuel }

func (HomeView) view()       {}
func (FlashcardsView) view() {}
func (QuizView) view()       {}
func (DuelView) view()       {}
