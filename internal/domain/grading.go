package domain

import "sort"

// GradeResult is the outcome of grading one submission against a quiz.
type GradeResult struct {
	Score          int
	TotalQuestions int
	Verdicts       []Verdict
}

// Grade evaluates answers against questions by position. answers[i] holds the
// option indices submitted for questions[i]; a missing or nil entry counts as an
// empty selection. A question is correct only when the submitted index set equals
// the correct index set exactly. Inputs are not modified.
func Grade(questions []Question, answers [][]int) GradeResult {
	result := GradeResult{
		TotalQuestions: len(questions),
		Verdicts:       make([]Verdict, 0, len(questions)),
	}

	for i, q := range questions {
		submitted := []int{}
		if i < len(answers) && answers[i] != nil {
			submitted = append(submitted, answers[i]...)
		}

		isCorrect := IsExactMatch(q.CorrectAnswers, submitted)
		if isCorrect {
			result.Score++
		}

		result.Verdicts = append(result.Verdicts, Verdict{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			QuestionType:   q.Type,
			Options:        append([]string{}, q.Options...),
			UserAnswers:    submitted,
			CorrectAnswers: append([]int{}, q.CorrectAnswers...),
			IsCorrect:      isCorrect,
		})
	}

	return result
}

// IsExactMatch compares two index collections as sets after sorting.
// Duplicates are significant: [0,0] does not match [0].
func IsExactMatch(correct, submitted []int) bool {
	if len(correct) != len(submitted) {
		return false
	}
	a := sortedCopy(correct)
	b := sortedCopy(submitted)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}
