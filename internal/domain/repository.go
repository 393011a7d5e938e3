package domain

import "context"

// QuizRepository persists quizzes and their questions.
// Lookups return (nil, nil) when the record does not exist; updates and deletes
// of a missing quiz return sql.ErrNoRows.
type QuizRepository interface {
	InsertQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
	InsertQuestions(ctx context.Context, quizID string, questions []Question) error
	DeleteQuestions(ctx context.Context, quizID string) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	ListQuizSummaries(ctx context.Context) ([]QuizSummary, error)
}

// AttemptRepository stores graded submissions. Attempts are append-only.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)
}

// AdminRepository stores admin accounts.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// TransactionManager runs fn inside a single store transaction. Repositories
// called with the ctx passed to fn take part in that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
