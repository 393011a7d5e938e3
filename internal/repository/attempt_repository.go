package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	insertAttemptQuery = `INSERT INTO attempts (
		id, quiz_id, quiz_title, quiz_description, score, total_questions, verdicts_json, completed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectAttemptQuery = `SELECT
		a.id "id",
		a.quiz_id "quiz_id",
		a.quiz_title "quiz_title",
		a.quiz_description "quiz_description",
		a.score "score",
		a.total_questions "total_questions",
		a.verdicts_json "verdicts_json",
		a.completed_at "completed_at",
		CASE WHEN q.id IS NULL THEN 0 ELSE 1 END "quiz_available"
	FROM attempts a
	LEFT JOIN quizzes q ON q.id = a.quiz_id
	WHERE a.id = ?`
)

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

// CreateAttempt stores a graded attempt and assigns its ID and completion time.
func (a *AttemptDatabaseAdapter) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot create nil attempt")
	}
	attempt.ID = util.NewULID()
	attempt.CompletedAt = util.NowUTC()

	m := toModelAttempt(attempt)
	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(insertAttemptQuery),
		m.ID, m.QuizID, m.QuizTitle, m.QuizDescription, m.Score, m.TotalQuestions, m.Verdicts, m.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create attempt for quiz %s: %w", attempt.QuizID, err)
	}
	return nil
}

// GetAttemptByID returns the attempt or nil when it does not exist.
func (a *AttemptDatabaseAdapter) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Attempt
	if err := exec.GetContext(ctx, &m, exec.Rebind(selectAttemptQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapScanError(fmt.Sprintf("failed to get attempt %s", id), err)
	}
	return toDomainAttempt(&m), nil
}
