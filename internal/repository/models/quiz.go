package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Question is a row of the questions table.
type Question struct {
	ID             string      `db:"id"`
	QuizID         string      `db:"quiz_id"`
	QuestionText   string      `db:"question_text"`
	QuestionType   string      `db:"question_type"`
	Options        StringSlice `db:"options_json"`
	CorrectAnswers IntSlice    `db:"correct_answers_json"`
	Position       int         `db:"position"`
	CreatedAt      time.Time   `db:"created_at"`
}

// QuizSummary is a quizzes row joined with its question and attempt counts.
type QuizSummary struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	QuestionCount int            `db:"question_count"`
	AttemptCount  int            `db:"attempt_count"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Attempt is a row of the attempts table. QuizAvailable is computed on read.
type Attempt struct {
	ID              string         `db:"id"`
	QuizID          string         `db:"quiz_id"`
	QuizTitle       string         `db:"quiz_title"`
	QuizDescription sql.NullString `db:"quiz_description"`
	Score           int            `db:"score"`
	TotalQuestions  int            `db:"total_questions"`
	Verdicts        VerdictList    `db:"verdicts_json"`
	CompletedAt     time.Time      `db:"completed_at"`
	QuizAvailable   int            `db:"quiz_available"`
}
