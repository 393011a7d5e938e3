package repository

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"
)

func toDomainQuiz(m *models.Quiz, questions []models.Question) *domain.Quiz {
	if m == nil {
		return nil
	}
	quiz := &domain.Quiz{
		ID:          m.ID,
		Title:       m.Title,
		Description: util.NullStringToStringPtr(m.Description),
		Questions:   make([]domain.Question, 0, len(questions)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range questions {
		quiz.Questions = append(quiz.Questions, toDomainQuestion(&questions[i]))
	}
	return quiz
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: util.StringPtrToNullString(q.Description),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) domain.Question {
	return domain.Question{
		ID:             m.ID,
		QuizID:         m.QuizID,
		Text:           m.QuestionText,
		Type:           domain.QuestionType(m.QuestionType),
		Options:        []string(m.Options),
		CorrectAnswers: []int(m.CorrectAnswers),
		Position:       m.Position,
		CreatedAt:      m.CreatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:             q.ID,
		QuizID:         q.QuizID,
		QuestionText:   q.Text,
		QuestionType:   string(q.Type),
		Options:        models.StringSlice(q.Options),
		CorrectAnswers: models.IntSlice(q.CorrectAnswers),
		Position:       q.Position,
		CreatedAt:      q.CreatedAt,
	}
}

func toDomainSummary(m *models.QuizSummary) domain.QuizSummary {
	return domain.QuizSummary{
		ID:            m.ID,
		Title:         m.Title,
		Description:   util.NullStringToStringPtr(m.Description),
		QuestionCount: m.QuestionCount,
		AttemptCount:  m.AttemptCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	verdicts := make([]domain.Verdict, 0, len(m.Verdicts))
	for _, v := range m.Verdicts {
		verdicts = append(verdicts, domain.Verdict{
			QuestionID:     v.QuestionID,
			QuestionText:   v.QuestionText,
			QuestionType:   domain.QuestionType(v.QuestionType),
			Options:        nonNilStrings(v.Options),
			UserAnswers:    nonNilInts(v.UserAnswers),
			CorrectAnswers: nonNilInts(v.CorrectAnswers),
			IsCorrect:      v.IsCorrect,
		})
	}
	return &domain.Attempt{
		ID:              m.ID,
		QuizID:          m.QuizID,
		QuizTitle:       m.QuizTitle,
		QuizDescription: util.NullStringToStringPtr(m.QuizDescription),
		Score:           m.Score,
		TotalQuestions:  m.TotalQuestions,
		Verdicts:        verdicts,
		CompletedAt:     m.CompletedAt,
		QuizAvailable:   m.QuizAvailable != 0,
	}
}

func toModelAttempt(a *domain.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	verdicts := make(models.VerdictList, 0, len(a.Verdicts))
	for _, v := range a.Verdicts {
		verdicts = append(verdicts, models.VerdictRecord{
			QuestionID:     v.QuestionID,
			QuestionText:   v.QuestionText,
			QuestionType:   string(v.QuestionType),
			Options:        nonNilStrings(v.Options),
			UserAnswers:    nonNilInts(v.UserAnswers),
			CorrectAnswers: nonNilInts(v.CorrectAnswers),
			IsCorrect:      v.IsCorrect,
		})
	}
	return &models.Attempt{
		ID:              a.ID,
		QuizID:          a.QuizID,
		QuizTitle:       a.QuizTitle,
		QuizDescription: util.StringPtrToNullString(a.QuizDescription),
		Score:           a.Score,
		TotalQuestions:  a.TotalQuestions,
		Verdicts:        verdicts,
		CompletedAt:     a.CompletedAt,
	}
}

func toDomainAdmin(m *models.Admin) *domain.Admin {
	if m == nil {
		return nil
	}
	return &domain.Admin{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
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
