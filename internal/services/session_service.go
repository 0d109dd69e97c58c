package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangostudent/backend/internal/models"
	"github.com/sangostudent/backend/internal/session"
	"go.uber.org/zap"
)

// AttemptRepository is the interface that wraps methods for quiz_attempts table data access
type AttemptRepository interface {
	// Method Create inserts an answer submission into the attempt log.
	//
	// On success the ID and CreatedAt fields of "attempt" are filled in.
	// If some error will occur during insert, the error will be returned.
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	// Method GetSummaryBySession counts the attempts of a session.
	//
	// A session without attempts yields a summary with zero counts, not an error.
	GetSummaryBySession(ctx context.Context, sessionID string) (*models.AttemptSummary, error)
}

// SessionConfig holds the settings of newly created sessions
type SessionConfig struct {
	DefaultLanguage   models.Language
	InitialHearts     int
	InitialExperience int
	InitialStreak     int
	TTL               time.Duration // Sessions idle for longer are evicted by CleanupExpired
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*session.Session

	catalog  Catalog
	engine   session.RoundGenerator
	attempts AttemptRepository
	cfg      SessionConfig
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
	opts  []session.Option
}

// NewSessionService creates a new session service
func NewSessionService(catalog Catalog, engine session.RoundGenerator, attempts AttemptRepository, cfg SessionConfig, logger *zap.Logger) *sessionService {
	if attempts == nil {
		attempts = NoopAttemptRepository{}
	}
	return &sessionService{
		sessions: make(map[string]*session.Session),
		catalog:  catalog,
		engine:   engine,
		attempts: attempts,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create starts a new session on the home screen
//
// languageParam must be either "fr" (French) or "ru" (Russian); an empty value means the default language.
func (s *sessionService) Create(ctx context.Context, languageParam string) (*models.SessionResponse, error) {
	lang, err := resolveLanguage(languageParam, s.cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	progress := models.NewSessionProgress(s.cfg.InitialHearts, s.cfg.InitialExperience, s.cfg.InitialStreak)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := session.New(s.newID(), lang, progress, s.engine, s.now(), s.opts...)
	s.sessions[sess.ID] = sess

	s.logger.Info("session created", zap.String("session_id", sess.ID), zap.String("language", string(lang)))
	return sess.Snapshot(), nil
}

// Get returns the current state of a session
func (s *sessionService) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, func(*session.Session) error { return nil })
}

// Delete ends a session
func (s *sessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	delete(s.sessions, id)

	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// SetLanguage switches the target language of a session
func (s *sessionService) SetLanguage(ctx context.Context, id string, languageParam string) (*models.SessionResponse, error) {
	lang, err := models.ParseLanguage(languageParam)
	if err != nil {
		return nil, err
	}
	return s.update(id, func(sess *session.Session) error {
		sess.SetLanguage(lang)
		return nil
	})
}

// StartActivity opens flashcards or a quiz over a category
//
// activityParam must be either "flashcards" or "quiz".
func (s *sessionService) StartActivity(ctx context.Context, id string, categoryID string, activityParam string) (*models.SessionResponse, error) {
	activity, err := models.ParseActivity(activityParam)
	if err != nil {
		return nil, err
	}
	category, ok := s.catalog.Category(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, categoryID)
	}

	return s.update(id, func(sess *session.Session) error {
		return sess.StartActivity(category, activity)
	})
}

// FlipCard turns the current flashcard over
func (s *sessionService) FlipCard(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, (*session.Session).FlipCard)
}

// NextCard moves to the next flashcard, returning home after the last one
func (s *sessionService) NextCard(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, func(sess *session.Session) error {
		_, err := sess.NextCard()
		return err
	})
}

// PrevCard moves to the previous flashcard
func (s *sessionService) PrevCard(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, (*session.Session).PrevCard)
}

// Answer submits an option for the current quiz round
//
// Every applied answer is written to the attempt log. Failures of the log are only logged.
func (s *sessionService) Answer(ctx context.Context, id string, option string) (*models.AnswerResponse, error) {
	var (
		result  models.AnswerResponse
		attempt *models.QuizAttempt
	)

	snapshot, err := s.update(id, func(sess *session.Session) error {
		outcome, applied, err := sess.Answer(option)
		if err != nil {
			return err
		}
		result.Outcome = outcome
		result.Applied = applied

		if applied {
			v := sess.View.(session.QuizView)
			attempt = &models.QuizAttempt{
				SessionID:     sess.ID,
				CategoryID:    v.Category.ID,
				WordID:        v.Round.Target.ID,
				Language:      v.Round.Language,
				ChosenOption:  option,
				CorrectOption: v.Round.CorrectAnswer(),
				IsCorrect:     outcome == models.OutcomeCorrect,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if attempt != nil {
		if err := s.attempts.Create(ctx, attempt); err != nil {
			s.logger.Error("failed to record quiz attempt", zap.Error(err), zap.String("session_id", id))
		}
	}

	result.Session = snapshot
	return &result, nil
}

// Continue advances the quiz after the current round was answered
func (s *sessionService) Continue(ctx context.Context, id string) (*models.ContinueResponse, error) {
	var completed bool
	snapshot, err := s.update(id, func(sess *session.Session) error {
		var err error
		completed, err = sess.Continue()
		return err
	})
	if err != nil {
		return nil, err
	}

	if completed {
		s.logger.Info("category completed", zap.String("session_id", id))
	}
	return &models.ContinueResponse{CategoryCompleted: completed, Session: snapshot}, nil
}

// Exit returns a session to the home screen
func (s *sessionService) Exit(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, func(sess *session.Session) error {
		sess.Exit()
		return nil
	})
}

// OpenDuel opens the duel lobby
func (s *sessionService) OpenDuel(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, (*session.Session).OpenDuel)
}

// CreateRoom generates a duel room code, keeping an existing one
func (s *sessionService) CreateRoom(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, func(sess *session.Session) error {
		_, err := sess.CreateRoom()
		return err
	})
}

// CancelRoom drops the duel room code
func (s *sessionService) CancelRoom(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.update(id, (*session.Session).CancelRoom)
}

// AttemptSummary returns the attempt counts recorded for a session
func (s *sessionService) AttemptSummary(ctx context.Context, id string) (*models.AttemptSummary, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	summary, err := s.attempts.GetSummaryBySession(ctx, id)
	if err != nil {
		s.logger.Error("failed to get attempt summary", zap.Error(err), zap.String("session_id", id))
		return nil, fmt.Errorf("failed to get attempt summary: %w", err)
	}
	return summary, nil
}

// CleanupExpired evicts sessions idle for longer than the configured TTL
//
// Returns the number of evicted sessions. A non-positive TTL disables eviction.
func (s *sessionService) CleanupExpired(now time.Time) int {
	if s.cfg.TTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActive) > s.cfg.TTL {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Info("expired sessions evicted", zap.Int("count", evicted), zap.Int("remaining", len(s.sessions)))
	}
	return evicted
}

// Count returns the number of live sessions
func (s *sessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// update runs fn on the session under the registry lock and returns the resulting state
func (s *sessionService) update(id string, fn func(*session.Session) error) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	sess.LastActive = s.now()

	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// NoopAttemptRepository is used when no database is configured.
// It drops every attempt and reports empty summaries.
type NoopAttemptRepository struct{}

// Create discards the attempt
func (NoopAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return nil
}

// GetSummaryBySession returns zero counts
func (NoopAttemptRepository) GetSummaryBySession(ctx context.Context, sessionID string) (*models.AttemptSummary, error) {
	return &models.AttemptSummary{SessionID: sessionID}, nil
}
