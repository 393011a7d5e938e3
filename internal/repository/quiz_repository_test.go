package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"quizdeck/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	quizColumns     = []string{"id", "title", "description", "created_at", "updated_at"}
	questionColumns = []string{"id", "quiz_id", "question_text", "question_type", "options_json", "correct_answers_json", "position", "created_at"}
)

func TestQuizRepository_InsertQuizAndQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	desc := "basics"
	quiz := domain.NewQuiz(domain.QuizDraft{
		Title:       "Go",
		Description: &desc,
		Questions: []domain.QuestionDraft{
			{Text: "Pick", Type: domain.QuestionTypeMultiple, Options: []string{"X", "Y", "Z"}, CorrectAnswers: []int{0, 2}},
			{Text: "True?", Type: domain.QuestionTypeTrueFalse, Options: domain.TrueFalseOptions(), CorrectAnswers: []int{1}},
		},
	})

	mock.ExpectExec(regexp.QuoteMeta(insertQuizQuery)).
		WithArgs(sqlmock.AnyArg(), "Go", "basics", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertQuiz(ctx, quiz))
	assert.Len(t, quiz.ID, 26)
	assert.False(t, quiz.CreatedAt.IsZero())

	mock.ExpectExec(regexp.QuoteMeta(insertQuestionQuery)).
		WithArgs(sqlmock.AnyArg(), quiz.ID, "Pick", "multiple", `["X","Y","Z"]`, `[0,2]`, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertQuestionQuery)).
		WithArgs(sqlmock.AnyArg(), quiz.ID, "True?", "truefalse", `["True","False"]`, `[1]`, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertQuestions(ctx, quiz.ID, quiz.Questions))
	for i, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, quiz.ID, q.QuizID)
		assert.Equal(t, i, q.Position)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_InsertQuizNilDescription(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(insertQuizQuery)).
		WithArgs(sqlmock.AnyArg(), "Untitled", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertQuiz(context.Background(), &domain.Quiz{Title: "Untitled"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetQuizByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(selectQuizQuery)).
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows(quizColumns).AddRow("quiz1", "Go", nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectQuestionsQuery)).
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow("q1", "quiz1", "Pick", "multiple", []byte(`["X","Y","Z"]`), []byte(`[0,2]`), 0, now).
			AddRow("q2", "quiz1", "True?", "truefalse", `["True","False"]`, `[1]`, 1, now))

	quiz, err := repo.GetQuizByID(context.Background(), "quiz1")
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "Go", quiz.Title)
	assert.Nil(t, quiz.Description)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, domain.QuestionTypeMultiple, quiz.Questions[0].Type)
	assert.Equal(t, []string{"X", "Y", "Z"}, quiz.Questions[0].Options)
	assert.Equal(t, []int{0, 2}, quiz.Questions[0].CorrectAnswers)
	assert.Equal(t, 1, quiz.Questions[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetQuizByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectQuizQuery)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	quiz, err := repo.GetQuizByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetQuizByID_CorruptOptions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(selectQuizQuery)).
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows(quizColumns).AddRow("quiz1", "Go", "d", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectQuestionsQuery)).
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow("q1", "quiz1", "Pick", "single", `{not json`, `[0]`, 0, now))

	quiz, err := repo.GetQuizByID(context.Background(), "quiz1")
	assert.Nil(t, quiz)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeDataIntegrity, domainErr.Code)
}

func TestQuizRepository_UpdateQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(updateQuizQuery)).
		WithArgs("New title", nil, sqlmock.AnyArg(), "quiz1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "quiz1", Title: "New title"}))

	mock.ExpectExec(regexp.QuoteMeta(updateQuizQuery)).
		WithArgs("x", nil, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_DeleteQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionsQuery)).WithArgs("quiz1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuizQuery)).WithArgs("quiz1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteQuiz(context.Background(), "quiz1"))

	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionsQuery)).WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuizQuery)).WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteQuiz(context.Background(), "gone"), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_ReplaceInsideTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateQuizQuery)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionsQuery)).WithArgs("quiz1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(insertQuestionQuery)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		quiz := &domain.Quiz{ID: "quiz1", Title: "t"}
		if err := repo.UpdateQuiz(ctx, quiz); err != nil {
			return err
		}
		if err := repo.DeleteQuestions(ctx, quiz.ID); err != nil {
			return err
		}
		return repo.InsertQuestions(ctx, quiz.ID, []domain.Question{{Text: "q", Type: domain.QuestionTypeSingle}})
	})

	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_ListQuizSummaries(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(listQuizSummariesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "question_count", "attempt_count", "created_at", "updated_at"}).
			AddRow("b", "Newer", "desc", 3, 5, now, now).
			AddRow("a", "Older", nil, 1, 0, now.Add(-time.Hour), now.Add(-time.Hour)))

	summaries, err := repo.ListQuizSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "b", summaries[0].ID)
	assert.Equal(t, 3, summaries[0].QuestionCount)
	assert.Equal(t, 5, summaries[0].AttemptCount)
	require.NotNil(t, summaries[0].Description)
	assert.Equal(t, "desc", *summaries[0].Description)
	assert.Nil(t, summaries[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_ListQuizSummaries_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(listQuizSummariesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "question_count", "attempt_count", "created_at", "updated_at"}))

	summaries, err := repo.ListQuizSummaries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestQuizRepository_GetQuizByID_MissingCorrectAnswers(t *testing.T) {
	for _, stored := range []interface{}{nil, "", "null"} {
		db, mock := setupTestDB(t)
		repo := NewQuizDatabaseAdapter(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(selectQuizQuery)).
			WithArgs("quiz1").
			WillReturnRows(sqlmock.NewRows(quizColumns).AddRow("quiz1", "Go", "d", now, now))
		mock.ExpectQuery(regexp.QuoteMeta(selectQuestionsQuery)).
			WithArgs("quiz1").
			WillReturnRows(sqlmock.NewRows(questionColumns).
				AddRow("q1", "quiz1", "Pick", "single", `["a","b"]`, stored, 0, now))

		quiz, err := repo.GetQuizByID(context.Background(), "quiz1")
		assert.Nil(t, quiz)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr), "stored %#v", stored)
		assert.Equal(t, domain.CodeDataIntegrity, domainErr.Code)
	}
}
