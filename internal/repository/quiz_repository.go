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
	selectQuizQuery = `SELECT
		id "id",
		title "title",
		description "description",
		created_at "created_at",
		updated_at "updated_at"
	FROM quizzes
	WHERE id = ?`

	selectQuestionsQuery = `SELECT
		id "id",
		quiz_id "quiz_id",
		question_text "question_text",
		question_type "question_type",
		options_json "options_json",
		correct_answers_json "correct_answers_json",
		position "position",
		created_at "created_at"
	FROM questions
	WHERE quiz_id = ?
	ORDER BY position ASC`

	listQuizSummariesQuery = `SELECT
		q.id "id",
		q.title "title",
		q.description "description",
		(SELECT COUNT(*) FROM questions qs WHERE qs.quiz_id = q.id) "question_count",
		(SELECT COUNT(*) FROM attempts a WHERE a.quiz_id = q.id) "attempt_count",
		q.created_at "created_at",
		q.updated_at "updated_at"
	FROM quizzes q
	ORDER BY q.created_at DESC, q.id DESC`

	insertQuizQuery = `INSERT INTO quizzes (id, title, description, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`

	updateQuizQuery = `UPDATE quizzes SET title = ?, description = ?, updated_at = ? WHERE id = ?`

	deleteQuizQuery = `DELETE FROM quizzes WHERE id = ?`

	insertQuestionQuery = `INSERT INTO questions (
		id, quiz_id, question_text, question_type, options_json, correct_answers_json, position, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	deleteQuestionsQuery = `DELETE FROM questions WHERE quiz_id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// InsertQuiz stores the quiz header and assigns its ID and timestamps.
// Questions are stored separately with InsertQuestions.
func (a *QuizDatabaseAdapter) InsertQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot insert nil quiz")
	}
	now := util.NowUTC()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	m := toModelQuiz(quiz)
	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(insertQuizQuery),
		m.ID, m.Title, m.Description, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("quiz %s already exists", quiz.ID))
		}
		return fmt.Errorf("failed to insert quiz: %w", err)
	}
	return nil
}

// UpdateQuiz rewrites the quiz header and bumps updated_at.
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot update nil quiz")
	}
	quiz.UpdatedAt = util.NowUTC()

	m := toModelQuiz(quiz)
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(updateQuizQuery), m.Title, m.Description, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	return expectAffected(result)
}

// DeleteQuiz removes the quiz and its questions. Attempts are kept.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	if err := a.DeleteQuestions(ctx, id); err != nil {
		return err
	}
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(deleteQuizQuery), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return expectAffected(result)
}

// InsertQuestions stores questions in slice order. Each element gets its ID,
// QuizID, Position and CreatedAt filled in place.
func (a *QuizDatabaseAdapter) InsertQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(insertQuestionQuery)
	now := util.NowUTC()

	for i := range questions {
		q := &questions[i]
		q.ID = util.NewULID()
		q.QuizID = quizID
		q.Position = i
		q.CreatedAt = now

		m := toModelQuestion(q)
		_, err := exec.ExecContext(ctx, query,
			m.ID, m.QuizID, m.QuestionText, m.QuestionType, m.Options, m.CorrectAnswers, m.Position, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert question %d of quiz %s: %w", i, quizID, err)
		}
	}
	return nil
}

// DeleteQuestions removes every question of a quiz.
func (a *QuizDatabaseAdapter) DeleteQuestions(ctx context.Context, quizID string) error {
	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(deleteQuestionsQuery), quizID); err != nil {
		return fmt.Errorf("failed to delete questions of quiz %s: %w", quizID, err)
	}
	return nil
}

// GetQuizByID returns the quiz with its questions in position order, or nil
// when no such quiz exists.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var quiz models.Quiz
	if err := exec.GetContext(ctx, &quiz, exec.Rebind(selectQuizQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	var questions []models.Question
	if err := exec.SelectContext(ctx, &questions, exec.Rebind(selectQuestionsQuery), id); err != nil {
		return nil, wrapScanError(fmt.Sprintf("failed to get questions of quiz %s", id), err)
	}

	return toDomainQuiz(&quiz, questions), nil
}

// ListQuizSummaries returns every quiz, newest first, with question and attempt counts.
func (a *QuizDatabaseAdapter) ListQuizSummaries(ctx context.Context) ([]domain.QuizSummary, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.QuizSummary
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listQuizSummariesQuery)); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, toDomainSummary(&rows[i]))
	}
	return summaries, nil
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// wrapScanError turns undecodable stored columns into a data integrity error.
func wrapScanError(msg string, err error) error {
	var colErr *models.ColumnError
	if errors.As(err, &colErr) {
		return domain.NewDataIntegrityError(msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
