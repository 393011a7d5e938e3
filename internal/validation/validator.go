package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator checks request shapes at the HTTP boundary. Semantic quiz rules
// live in domain.QuizDraft.Validate; this layer enforces sizes and presence.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and converts failures into domain validation errors.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError("", err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

// ValidateQuizPayload runs the boundary checks and then the authoring rules,
// returning the draft ready for create or replace.
func (v *Validator) ValidateQuizPayload(p dto.QuizPayload) (domain.QuizDraft, error) {
	if errs := v.Struct(p); len(errs) > 0 {
		return domain.QuizDraft{}, errs
	}
	draft := p.ToQuizDraft()
	if err := draft.Validate(); err != nil {
		return domain.QuizDraft{}, err
	}
	return draft, nil
}

// ValidateSubmitRequest checks a grading submission.
func (v *Validator) ValidateSubmitRequest(req dto.SubmitRequest) domain.ValidationErrors {
	errs := v.Struct(req)
	if len(errs) == 0 && strings.TrimSpace(req.QuizID) == "" {
		errs = append(errs, domain.NewMissingFieldError("quizId"))
	}
	return errs
}

// DecodeQuizDocument strictly decodes an import file. Unknown fields, wrong
// JSON types and trailing data are format errors, not validation errors.
func DecodeQuizDocument(data []byte) (dto.QuizPayload, error) {
	var p dto.QuizPayload
	if len(bytes.TrimSpace(data)) == 0 {
		return p, domain.NewFormatError("Import file is empty", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return dto.QuizPayload{}, domain.NewFormatError(describeDecodeError(err), err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return dto.QuizPayload{}, domain.NewFormatError("Import file must contain a single quiz document", err)
	}
	return p, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid quiz file: field %q has the wrong type", typeErr.Field)
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Invalid quiz file: malformed JSON at offset %d", syntaxErr.Offset)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return "Invalid quiz file: " + strings.TrimPrefix(err.Error(), "json: ")
	default:
		return "Invalid quiz file"
	}
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "max":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at most %s", field, fe.Param()),
		}
	case "min":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at least %s", field, fe.Param()),
		}
	case "oneof":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeInvalidFormat,
			Message: fmt.Sprintf("%s must be one of: %s", field, fe.Param()),
		}
	default:
		return domain.NewValidationError(field, fmt.Sprintf("%s failed the %s rule", field, fe.Tag()))
	}
}
