package dto

import "quizdeck/internal/domain"

// ToQuizDraft converts a request body into an authoring draft.
func (p QuizPayload) ToQuizDraft() domain.QuizDraft {
	draft := domain.QuizDraft{
		Title:       p.Title,
		Description: p.Description,
		Questions:   make([]domain.QuestionDraft, 0, len(p.Questions)),
	}
	for _, q := range p.Questions {
		draft.Questions = append(draft.Questions, domain.QuestionDraft{
			Text:           q.QuestionText,
			Type:           domain.QuestionType(q.QuestionType),
			Options:        append([]string{}, q.Options...),
			CorrectAnswers: append([]int{}, q.CorrectAnswers...),
		})
	}
	return draft
}

// NewQuizPayload renders a quiz in the export format.
func NewQuizPayload(q *domain.Quiz) QuizPayload {
	p := QuizPayload{
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]QuestionPayload, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		p.Questions = append(p.Questions, QuestionPayload{
			QuestionText:   question.Text,
			QuestionType:   string(question.Type),
			Options:        nonNilStrings(question.Options),
			CorrectAnswers: nonNilInts(question.CorrectAnswers),
		})
	}
	return p
}

func NewQuizResponse(q *domain.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]QuestionResponse, 0, len(q.Questions)),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:             question.ID,
			QuestionText:   question.Text,
			QuestionType:   string(question.Type),
			Options:        nonNilStrings(question.Options),
			CorrectAnswers: nonNilInts(question.CorrectAnswers),
			Position:       question.Position,
		})
	}
	return resp
}

func NewPublicQuizResponse(q *domain.Quiz) PublicQuizResponse {
	resp := PublicQuizResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]PublicQuestionResponse, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, PublicQuestionResponse{
			ID:           question.ID,
			QuestionText: question.Text,
			QuestionType: string(question.Type),
			Options:      nonNilStrings(question.Options),
			Position:     question.Position,
		})
	}
	return resp
}

func NewQuizSummaryResponses(summaries []domain.QuizSummary) []QuizSummaryResponse {
	out := make([]QuizSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, QuizSummaryResponse{
			ID:            s.ID,
			Title:         s.Title,
			Description:   s.Description,
			QuestionCount: s.QuestionCount,
			AttemptCount:  s.AttemptCount,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return out
}

func NewAttemptResponse(a *domain.Attempt) AttemptResponse {
	resp := AttemptResponse{
		ID:     a.ID,
		QuizID: a.QuizID,
		Quiz: AttemptQuizInfo{
			Title:       a.QuizTitle,
			Description: a.QuizDescription,
			Available:   a.QuizAvailable,
		},
		QuizAvailable:  a.QuizAvailable,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Answers:        make([]VerdictResponse, 0, len(a.Verdicts)),
		CompletedAt:    a.CompletedAt,
	}
	for _, v := range a.Verdicts {
		resp.Answers = append(resp.Answers, VerdictResponse{
			QuestionID:     v.QuestionID,
			QuestionText:   v.QuestionText,
			QuestionType:   string(v.QuestionType),
			Options:        nonNilStrings(v.Options),
			UserAnswers:    nonNilInts(v.UserAnswers),
			CorrectAnswers: nonNilInts(v.CorrectAnswers),
			IsCorrect:      v.IsCorrect,
		})
	}
	return resp
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
