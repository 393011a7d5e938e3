package domain

import (
	"fmt"
	"strings"
)

const minChoiceOptions = 2

// QuizDraft is the authoring form of a quiz: an ordered, index-addressed list of
// question drafts plus the quiz header. Create and replace both consume a draft.
type QuizDraft struct {
	Title       string
	Description *string
	Questions   []QuestionDraft
}

// QuestionDraft is one editable question.
type QuestionDraft struct {
	Text           string
	Type           QuestionType
	Options        []string
	CorrectAnswers []int
}

// NewQuestionDraft returns the blank template used when a question is added.
func NewQuestionDraft() QuestionDraft {
	return QuestionDraft{
		Type:           QuestionTypeSingle,
		Options:        []string{"", ""},
		CorrectAnswers: []int{},
	}
}

// DraftFromQuiz turns a stored quiz back into an editable draft.
func DraftFromQuiz(q *Quiz) QuizDraft {
	draft := QuizDraft{Title: q.Title, Description: q.Description}
	for _, question := range q.Questions {
		draft.Questions = append(draft.Questions, QuestionDraft{
			Text:           question.Text,
			Type:           question.Type,
			Options:        append([]string(nil), question.Options...),
			CorrectAnswers: append([]int(nil), question.CorrectAnswers...),
		})
	}
	return draft
}

// AddQuestion appends a blank question and returns its index.
func (d *QuizDraft) AddQuestion() int {
	d.Questions = append(d.Questions, NewQuestionDraft())
	return len(d.Questions) - 1
}

// InsertQuestion places q at index i, shifting later questions back.
func (d *QuizDraft) InsertQuestion(i int, q QuestionDraft) error {
	if i < 0 || i > len(d.Questions) {
		return NewInvalidEditError(fmt.Sprintf("question index %d out of range", i))
	}
	d.Questions = append(d.Questions, QuestionDraft{})
	copy(d.Questions[i+1:], d.Questions[i:])
	d.Questions[i] = q
	return nil
}

// RemoveQuestion deletes the question at index i.
func (d *QuizDraft) RemoveQuestion(i int) error {
	if i < 0 || i >= len(d.Questions) {
		return NewInvalidEditError(fmt.Sprintf("question index %d out of range", i))
	}
	d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
	return nil
}

// ReplaceQuestion overwrites the question at index i.
func (d *QuizDraft) ReplaceQuestion(i int, q QuestionDraft) error {
	if i < 0 || i >= len(d.Questions) {
		return NewInvalidEditError(fmt.Sprintf("question index %d out of range", i))
	}
	d.Questions[i] = q
	return nil
}

// ChangeType switches the question type. Moving to or from truefalse resets the
// options to that type's template and clears the correct answers. Moving from
// multiple to single keeps a lone correct answer and clears several.
func (q *QuestionDraft) ChangeType(t QuestionType) error {
	if !t.IsValid() {
		return NewInvalidEditError(fmt.Sprintf("unknown question type %q", t))
	}
	if t == q.Type {
		return nil
	}

	switch {
	case t == QuestionTypeTrueFalse:
		q.Options = TrueFalseOptions()
		q.CorrectAnswers = []int{}
	case q.Type == QuestionTypeTrueFalse:
		q.Options = []string{"", ""}
		q.CorrectAnswers = []int{}
	case t == QuestionTypeSingle && len(q.CorrectAnswers) > 1:
		q.CorrectAnswers = []int{}
	}
	q.Type = t
	return nil
}

// ToggleCorrectAnswer marks option o. For single and truefalse the mark replaces
// any previous one; for multiple it toggles membership of o.
func (q *QuestionDraft) ToggleCorrectAnswer(o int) error {
	if o < 0 || o >= len(q.Options) {
		return NewInvalidEditError(fmt.Sprintf("option index %d out of range", o))
	}
	if q.Type.ExclusiveChoice() {
		q.CorrectAnswers = []int{o}
		return nil
	}

	kept := make([]int, 0, len(q.CorrectAnswers)+1)
	found := false
	for _, idx := range q.CorrectAnswers {
		if idx == o {
			found = true
			continue
		}
		kept = append(kept, idx)
	}
	if !found {
		kept = append(kept, o)
	}
	q.CorrectAnswers = kept
	return nil
}

// AddOption appends an empty option.
func (q *QuestionDraft) AddOption() error {
	if q.Type == QuestionTypeTrueFalse {
		return NewInvalidEditError("truefalse questions have fixed options")
	}
	q.Options = append(q.Options, "")
	return nil
}

// UpdateOption sets the text of option o.
func (q *QuestionDraft) UpdateOption(o int, text string) error {
	if q.Type == QuestionTypeTrueFalse {
		return NewInvalidEditError("truefalse questions have fixed options")
	}
	if o < 0 || o >= len(q.Options) {
		return NewInvalidEditError(fmt.Sprintf("option index %d out of range", o))
	}
	q.Options[o] = text
	return nil
}

// RemoveOption deletes option o and re-indexes the correct answers so every
// remaining mark still points at the same option text.
func (q *QuestionDraft) RemoveOption(o int) error {
	if q.Type == QuestionTypeTrueFalse {
		return NewInvalidEditError("truefalse questions have fixed options")
	}
	if o < 0 || o >= len(q.Options) {
		return NewInvalidEditError(fmt.Sprintf("option index %d out of range", o))
	}
	if len(q.Options) <= minChoiceOptions {
		return NewInvalidEditError(fmt.Sprintf("a question needs at least %d options", minChoiceOptions))
	}

	q.Options = append(q.Options[:o:o], q.Options[o+1:]...)

	reindexed := make([]int, 0, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		switch {
		case idx == o:
			continue
		case idx > o:
			reindexed = append(reindexed, idx-1)
		default:
			reindexed = append(reindexed, idx)
		}
	}
	q.CorrectAnswers = reindexed
	return nil
}

// Validate checks the draft before a create or replace. Every failed rule is
// reported with the 1-based question number; nothing is dropped silently.
func (d QuizDraft) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Code: CodeMissingField, Message: "Quiz title is required"})
	}
	if len(d.Questions) == 0 {
		errs = append(errs, ValidationError{Field: "questions", Code: CodeMissingField, Message: "Add at least one question"})
	}

	for i, q := range d.Questions {
		errs = append(errs, q.validate(i)...)
	}

	return errs.ErrOrNil()
}

func (q QuestionDraft) validate(i int) ValidationErrors {
	var errs ValidationErrors
	n := i + 1
	field := func(suffix string) string {
		return fmt.Sprintf("questions[%d].%s", i, suffix)
	}

	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, ValidationError{
			Field: field("questionText"), Code: CodeMissingField,
			Message: fmt.Sprintf("Question %d: question text is missing", n),
		})
	}

	if !q.Type.IsValid() {
		errs = append(errs, ValidationError{
			Field: field("questionType"), Code: CodeInvalidFormat,
			Message: fmt.Sprintf("Question %d: unknown question type %q", n, q.Type),
		})
		return errs
	}

	switch q.Type {
	case QuestionTypeTrueFalse:
		if len(q.Options) != 2 {
			errs = append(errs, ValidationError{
				Field: field("options"), Code: CodeValidation,
				Message: fmt.Sprintf("Question %d: a true/false question must have exactly 2 options", n),
			})
		}
	default:
		if len(q.Options) < minChoiceOptions {
			errs = append(errs, ValidationError{
				Field: field("options"), Code: CodeValidation,
				Message: fmt.Sprintf("Question %d: at least %d options are required", n, minChoiceOptions),
			})
		}
	}

	for o, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, ValidationError{
				Field: field(fmt.Sprintf("options[%d]", o)), Code: CodeMissingField,
				Message: fmt.Sprintf("Question %d: option %d is empty", n, o+1),
			})
		}
	}

	if len(q.CorrectAnswers) == 0 {
		errs = append(errs, ValidationError{
			Field: field("correctAnswers"), Code: CodeMissingField,
			Message: fmt.Sprintf("Question %d: mark a correct answer", n),
		})
		return errs
	}

	seen := make(map[int]bool, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			errs = append(errs, ValidationError{
				Field: field("correctAnswers"), Code: CodeOutOfRange,
				Message: fmt.Sprintf("Question %d: correct answer %d does not refer to an option", n, idx),
			})
			continue
		}
		if seen[idx] {
			errs = append(errs, ValidationError{
				Field: field("correctAnswers"), Code: CodeValidation,
				Message: fmt.Sprintf("Question %d: correct answer %d is listed twice", n, idx),
			})
		}
		seen[idx] = true
	}

	if q.Type.ExclusiveChoice() && len(q.CorrectAnswers) != 1 {
		errs = append(errs, ValidationError{
			Field: field("correctAnswers"), Code: CodeValidation,
			Message: fmt.Sprintf("Question %d: exactly one correct answer is allowed for %s questions", n, q.Type),
		})
	}

	return errs
}
