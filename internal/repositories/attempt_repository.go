package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sangostudent/backend/internal/models"
	"go.uber.org/zap"
)

type attemptRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAttemptRepository creates a new quiz attempt log repository
func NewAttemptRepository(db *sql.DB, logger *zap.Logger) *attemptRepository {
	return &attemptRepository{
		db:     db,
		logger: logger,
	}
}

// Method Create is an AttemptRepository implementation for inserting an answer submission into the attempt log.
func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO quiz_attempts (session_id, category_id, word_id, language, chosen_option, correct_option, is_correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		attempt.SessionID,
		attempt.CategoryID,
		attempt.WordID,
		string(attempt.Language),
		attempt.ChosenOption,
		attempt.CorrectOption,
		attempt.IsCorrect,
		attempt.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert quiz attempt", zap.Error(err), zap.String("session_id", attempt.SessionID))
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	attempt.ID = id
	return nil
}

// Method GetSummaryBySession is an AttemptRepository implementation for counting the attempts of a session.
func (r *attemptRepository) GetSummaryBySession(ctx context.Context, sessionID string) (*models.AttemptSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)
		FROM quiz_attempts
		WHERE session_id = ?
	`

	summary := &models.AttemptSummary{SessionID: sessionID}
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&summary.Total, &summary.Correct); err != nil {
		r.logger.Error("failed to query attempt summary", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to get attempt summary: %w", err)
	}
	summary.Wrong = summary.Total - summary.Correct

	return summary, nil
}
