package domain

import (
	"fmt"
	"time"
)

// QuestionType is the answer mode of a question.
type QuestionType string

const (
	QuestionTypeSingle    QuestionType = "single"
	QuestionTypeMultiple  QuestionType = "multiple"
	QuestionTypeTrueFalse QuestionType = "truefalse"
)

// ParseQuestionType converts a wire value into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeSingle, QuestionTypeMultiple, QuestionTypeTrueFalse:
		return true
	}
	return false
}

// ExclusiveChoice reports whether exactly one option may be marked correct.
func (t QuestionType) ExclusiveChoice() bool {
	return t == QuestionTypeSingle || t == QuestionTypeTrueFalse
}

// TrueFalseOptions returns a fresh copy of the fixed options of a truefalse question.
func TrueFalseOptions() []string {
	return []string{"True", "False"}
}

// Question is a single prompt of a quiz. Position fixes its place in the quiz.
type Question struct {
	ID             string
	QuizID         string
	Text           string
	Type           QuestionType
	Options        []string
	CorrectAnswers []int
	Position       int
	CreatedAt      time.Time
}

// Quiz represents a quiz in the domain
type Quiz struct {
	ID          string
	Title       string
	Description *string
	Questions   []Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuiz builds a quiz from a validated draft. IDs and timestamps are set by the store.
func NewQuiz(draft QuizDraft) *Quiz {
	questions := make([]Question, len(draft.Questions))
	for i, q := range draft.Questions {
		questions[i] = Question{
			Text:           q.Text,
			Type:           q.Type,
			Options:        append([]string(nil), q.Options...),
			CorrectAnswers: append([]int(nil), q.CorrectAnswers...),
			Position:       i,
		}
	}
	return &Quiz{
		Title:       draft.Title,
		Description: draft.Description,
		Questions:   questions,
	}
}

// QuizSummary is a list entry with aggregate counts.
type QuizSummary struct {
	ID            string
	Title         string
	Description   *string
	QuestionCount int
	AttemptCount  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Verdict is the graded outcome of one question of an attempt.
type Verdict struct {
	QuestionID     string
	QuestionText   string
	QuestionType   QuestionType
	Options        []string
	UserAnswers    []int
	CorrectAnswers []int
	IsCorrect      bool
}

// Attempt is one graded submission. QuizTitle and QuizDescription are a snapshot
// taken at submission time, so results stay readable after the quiz is deleted.
type Attempt struct {
	ID              string
	QuizID          string
	QuizTitle       string
	QuizDescription *string
	Score           int
	TotalQuestions  int
	Verdicts        []Verdict
	CompletedAt     time.Time

	// QuizAvailable is filled on read; false once the quiz has been deleted.
	QuizAvailable bool
}

// NewAttempt records the result of grading the given quiz.
func NewAttempt(quiz *Quiz, result GradeResult) *Attempt {
	return &Attempt{
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		QuizDescription: quiz.Description,
		Score:           result.Score,
		TotalQuestions:  result.TotalQuestions,
		Verdicts:        result.Verdicts,
		QuizAvailable:   true,
	}
}
