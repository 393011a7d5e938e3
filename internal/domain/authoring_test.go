package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() QuizDraft {
	desc := "basics"
	return QuizDraft{
		Title:       "Go quiz",
		Description: &desc,
		Questions: []QuestionDraft{
			{Text: "Pick one", Type: QuestionTypeSingle, Options: []string{"a", "b"}, CorrectAnswers: []int{1}},
			{Text: "Pick many", Type: QuestionTypeMultiple, Options: []string{"a", "b", "c"}, CorrectAnswers: []int{0, 2}},
			{Text: "True?", Type: QuestionTypeTrueFalse, Options: TrueFalseOptions(), CorrectAnswers: []int{0}},
		},
	}
}

func TestRemoveOption_PreservesCorrectMarks(t *testing.T) {
	q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"A", "B", "C"}, CorrectAnswers: []int{0, 2}}

	require.NoError(t, q.RemoveOption(1))
	assert.Equal(t, []string{"A", "C"}, q.Options)
	assert.Equal(t, []int{0, 1}, q.CorrectAnswers)
}

func TestRemoveOption_DropsRemovedMark(t *testing.T) {
	q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"A", "B", "C", "D"}, CorrectAnswers: []int{3, 1}}

	require.NoError(t, q.RemoveOption(1))
	assert.Equal(t, []string{"A", "C", "D"}, q.Options)
	assert.Equal(t, []int{2}, q.CorrectAnswers)
}

func TestRemoveOption_DoesNotAliasOptions(t *testing.T) {
	original := []string{"A", "B", "C"}
	q := QuestionDraft{Type: QuestionTypeSingle, Options: original, CorrectAnswers: []int{}}

	require.NoError(t, q.RemoveOption(0))
	assert.Equal(t, []string{"A", "B", "C"}, original)
}

func TestRemoveOption_Rejections(t *testing.T) {
	tf := QuestionDraft{Type: QuestionTypeTrueFalse, Options: TrueFalseOptions()}
	assert.Error(t, tf.RemoveOption(0))

	two := QuestionDraft{Type: QuestionTypeSingle, Options: []string{"a", "b"}}
	assert.Error(t, two.RemoveOption(0))

	three := QuestionDraft{Type: QuestionTypeSingle, Options: []string{"a", "b", "c"}}
	err := three.RemoveOption(3)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidEdit, domainErr.Code)
}

func TestToggleCorrectAnswer(t *testing.T) {
	single := QuestionDraft{Type: QuestionTypeSingle, Options: []string{"a", "b", "c"}, CorrectAnswers: []int{}}
	require.NoError(t, single.ToggleCorrectAnswer(0))
	require.NoError(t, single.ToggleCorrectAnswer(2))
	assert.Equal(t, []int{2}, single.CorrectAnswers)

	multi := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"a", "b", "c"}, CorrectAnswers: []int{}}
	require.NoError(t, multi.ToggleCorrectAnswer(0))
	require.NoError(t, multi.ToggleCorrectAnswer(2))
	assert.Equal(t, []int{0, 2}, multi.CorrectAnswers)
	require.NoError(t, multi.ToggleCorrectAnswer(0))
	assert.Equal(t, []int{2}, multi.CorrectAnswers)

	assert.Error(t, multi.ToggleCorrectAnswer(-1))
	assert.Error(t, multi.ToggleCorrectAnswer(3))
}

func TestChangeType(t *testing.T) {
	t.Run("to truefalse resets options and marks", func(t *testing.T) {
		q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"a", "b", "c"}, CorrectAnswers: []int{0, 1}}
		require.NoError(t, q.ChangeType(QuestionTypeTrueFalse))
		assert.Equal(t, TrueFalseOptions(), q.Options)
		assert.Empty(t, q.CorrectAnswers)
	})

	t.Run("away from truefalse resets to blank template", func(t *testing.T) {
		q := QuestionDraft{Type: QuestionTypeTrueFalse, Options: TrueFalseOptions(), CorrectAnswers: []int{1}}
		require.NoError(t, q.ChangeType(QuestionTypeMultiple))
		assert.Equal(t, []string{"", ""}, q.Options)
		assert.Empty(t, q.CorrectAnswers)
	})

	t.Run("multiple to single keeps a lone mark", func(t *testing.T) {
		q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"a", "b"}, CorrectAnswers: []int{1}}
		require.NoError(t, q.ChangeType(QuestionTypeSingle))
		assert.Equal(t, []int{1}, q.CorrectAnswers)
		assert.Equal(t, []string{"a", "b"}, q.Options)
	})

	t.Run("multiple to single clears several marks", func(t *testing.T) {
		q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"a", "b"}, CorrectAnswers: []int{0, 1}}
		require.NoError(t, q.ChangeType(QuestionTypeSingle))
		assert.Empty(t, q.CorrectAnswers)
	})

	t.Run("unknown type", func(t *testing.T) {
		q := NewQuestionDraft()
		assert.Error(t, q.ChangeType("essay"))
		assert.Equal(t, QuestionTypeSingle, q.Type)
	})
}

// Every editor mutation keeps exclusive-choice questions at no more than one mark.
func TestEditorMutations_ExclusiveCardinality(t *testing.T) {
	q := QuestionDraft{Type: QuestionTypeMultiple, Options: []string{"a", "b", "c", "d"}, CorrectAnswers: []int{}}
	steps := []func() error{
		func() error { return q.ToggleCorrectAnswer(0) },
		func() error { return q.ToggleCorrectAnswer(3) },
		func() error { return q.ChangeType(QuestionTypeSingle) },
		func() error { return q.ToggleCorrectAnswer(1) },
		func() error { return q.ToggleCorrectAnswer(2) },
		func() error { return q.RemoveOption(0) },
		func() error { return q.ChangeType(QuestionTypeTrueFalse) },
		func() error { return q.ToggleCorrectAnswer(1) },
		func() error { return q.ToggleCorrectAnswer(0) },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		if q.Type.ExclusiveChoice() {
			assert.LessOrEqual(t, len(q.CorrectAnswers), 1, "step %d", i)
		}
	}
	assert.Equal(t, []int{0}, q.CorrectAnswers)
	assert.NoError(t, QuizDraft{Title: "t", Questions: []QuestionDraft{{Text: "x", Type: q.Type, Options: q.Options, CorrectAnswers: q.CorrectAnswers}}}.Validate())
}

func TestQuizDraft_QuestionCollection(t *testing.T) {
	var d QuizDraft
	assert.Equal(t, 0, d.AddQuestion())
	assert.Equal(t, 1, d.AddQuestion())

	first := QuestionDraft{Text: "first", Type: QuestionTypeSingle}
	require.NoError(t, d.InsertQuestion(0, first))
	require.Len(t, d.Questions, 3)
	assert.Equal(t, "first", d.Questions[0].Text)

	require.NoError(t, d.ReplaceQuestion(2, QuestionDraft{Text: "last"}))
	assert.Equal(t, "last", d.Questions[2].Text)

	require.NoError(t, d.RemoveQuestion(1))
	require.Len(t, d.Questions, 2)
	assert.Equal(t, []string{"first", "last"}, []string{d.Questions[0].Text, d.Questions[1].Text})

	assert.Error(t, d.InsertQuestion(5, first))
	assert.Error(t, d.RemoveQuestion(2))
	assert.Error(t, d.ReplaceQuestion(-1, first))
}

func TestQuizDraft_Validate(t *testing.T) {
	assert.NoError(t, validDraft().Validate())

	tests := []struct {
		name   string
		mutate func(d *QuizDraft)
		field  string
	}{
		{"blank title", func(d *QuizDraft) { d.Title = "   " }, "title"},
		{"no questions", func(d *QuizDraft) { d.Questions = nil }, "questions"},
		{"blank question text", func(d *QuizDraft) { d.Questions[1].Text = "\t" }, "questions[1].questionText"},
		{"blank option", func(d *QuizDraft) { d.Questions[0].Options[1] = " " }, "questions[0].options[1]"},
		{"no correct answer", func(d *QuizDraft) { d.Questions[1].CorrectAnswers = []int{} }, "questions[1].correctAnswers"},
		{"index out of range", func(d *QuizDraft) { d.Questions[0].CorrectAnswers = []int{2} }, "questions[0].correctAnswers"},
		{"two marks on single", func(d *QuizDraft) { d.Questions[0].CorrectAnswers = []int{0, 1} }, "questions[0].correctAnswers"},
		{"duplicate marks", func(d *QuizDraft) { d.Questions[1].CorrectAnswers = []int{0, 0} }, "questions[1].correctAnswers"},
		{"one option", func(d *QuizDraft) {
			d.Questions[0].Options = []string{"a"}
			d.Questions[0].CorrectAnswers = []int{0}
		}, "questions[0].options"},
		{"three truefalse options", func(d *QuizDraft) { d.Questions[2].Options = []string{"True", "False", "Maybe"} }, "questions[2].options"},
		{"unknown type", func(d *QuizDraft) { d.Questions[2].Type = "essay" }, "questions[2].questionType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate()
			require.Error(t, err)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))

			fields := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				fields = append(fields, ve.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestQuizDraft_ValidateReportsEveryQuestion(t *testing.T) {
	d := validDraft()
	d.Questions[0].Text = ""
	d.Questions[2].CorrectAnswers = nil

	err := d.Validate()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "Question 1: question text is missing", verrs[0].Message)
	assert.Equal(t, "Question 3: mark a correct answer", verrs[1].Message)
}

func TestNewQuizAndDraftFromQuiz(t *testing.T) {
	d := validDraft()
	quiz := NewQuiz(d)
	require.Len(t, quiz.Questions, 3)
	for i, q := range quiz.Questions {
		assert.Equal(t, i, q.Position)
	}

	quiz.Questions[0].Options[0] = "changed"
	assert.Equal(t, "a", d.Questions[0].Options[0], "NewQuiz copies option slices")

	back := DraftFromQuiz(quiz)
	assert.Equal(t, d.Title, back.Title)
	assert.Equal(t, d.Questions[1], back.Questions[1])
}
