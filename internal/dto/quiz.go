package dto

import "time"

// QuestionPayload is one question as sent by the editor and as found in an
// export file.
type QuestionPayload struct {
	QuestionText   string   `json:"questionText" validate:"max=2000"`
	QuestionType   string   `json:"questionType" validate:"max=16"`
	Options        []string `json:"options" validate:"max=20,dive,max=500"`
	CorrectAnswers []int    `json:"correctAnswers" validate:"max=20"`
}

// QuizPayload is the body of create and replace, and the export/import format.
// @Description Quiz document used for create, replace, export and import
type QuizPayload struct {
	Title       string            `json:"title" validate:"max=500"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	Questions   []QuestionPayload `json:"questions" validate:"max=200,dive"`
}

// QuestionResponse is a question with its correct answers, for admins.
type QuestionResponse struct {
	ID             string   `json:"id"`
	QuestionText   string   `json:"questionText"`
	QuestionType   string   `json:"questionType"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Position       int      `json:"position"`
}

// QuizResponse is the full quiz as seen by the editor.
// @Description Quiz with questions and correct answers
type QuizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// PublicQuestionResponse is a question as shown to a player; correct answers are withheld.
type PublicQuestionResponse struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	QuestionType string   `json:"questionType"`
	Options      []string `json:"options"`
	Position     int      `json:"position"`
}

// PublicQuizResponse is the player view of a quiz.
// @Description Quiz as shown to players
type PublicQuizResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description *string                  `json:"description"`
	Questions   []PublicQuestionResponse `json:"questions"`
}

// QuizSummaryResponse is one entry of a quiz list.
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	QuestionCount int       `json:"questionCount"`
	AttemptCount  int       `json:"attemptCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SubmitRequest carries one answer-index list per question, aligned with the
// quiz's question order.
// @Description Answers submitted for grading
type SubmitRequest struct {
	QuizID  string  `json:"quizId" validate:"required"`
	Answers [][]int `json:"answers" validate:"max=200"`
}

// SubmitResponse identifies the stored attempt.
type SubmitResponse struct {
	AttemptID string `json:"attemptId"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
}

// VerdictResponse is the graded outcome of one question.
type VerdictResponse struct {
	QuestionID     string   `json:"questionId"`
	QuestionText   string   `json:"questionText"`
	QuestionType   string   `json:"questionType"`
	Options        []string `json:"options"`
	UserAnswers    []int    `json:"userAnswers"`
	CorrectAnswers []int    `json:"correctAnswers"`
	IsCorrect      bool     `json:"isCorrect"`
}

// AttemptQuizInfo is the quiz header recorded with an attempt.
type AttemptQuizInfo struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Available   bool    `json:"available"`
}

// AttemptResponse is a stored result, re-rendered verbatim.
// @Description Graded attempt with per-question breakdown
type AttemptResponse struct {
	ID             string            `json:"id"`
	QuizID         string            `json:"quizId"`
	Quiz           AttemptQuizInfo   `json:"quiz"`
	QuizAvailable  bool              `json:"quizAvailable"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"totalQuestions"`
	Answers        []VerdictResponse `json:"answers"`
	CompletedAt    time.Time         `json:"completedAt"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
