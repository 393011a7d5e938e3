package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Array-valued fields are stored as JSON text so the same schema works on
// postgres, sqlite3 and oracle (CLOB). Question options and correct answers
// must hold a JSON array; NULL, "" and "null" are rejected with ErrMissingArray.
// A verdict list scans those as empty.

// ErrMissingArray reports a required array column holding no array at all.
var ErrMissingArray = errors.New("stored value is not a JSON array")

// StringSlice is a []string stored as a JSON array.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalColumn(s)
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	out := StringSlice{}
	if err := scanRequiredColumn("StringSlice", value, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

// IntSlice is a []int stored as a JSON array.
type IntSlice []int

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalColumn(s)
}

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	out := IntSlice{}
	if err := scanRequiredColumn("IntSlice", value, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

// VerdictRecord is the stored shape of one graded question.
type VerdictRecord struct {
	QuestionID     string   `json:"questionId"`
	QuestionText   string   `json:"questionText"`
	QuestionType   string   `json:"questionType"`
	Options        []string `json:"options"`
	UserAnswers    []int    `json:"userAnswers"`
	CorrectAnswers []int    `json:"correctAnswers"`
	IsCorrect      bool     `json:"isCorrect"`
}

// VerdictList is the per-question breakdown of an attempt, stored as JSON.
type VerdictList []VerdictRecord

// Value implements the driver.Valuer interface
func (v VerdictList) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	return marshalColumn(v)
}

// Scan implements the sql.Scanner interface
func (v *VerdictList) Scan(value interface{}) error {
	out := VerdictList{}
	if err := scanColumn("VerdictList", value, &out); err != nil {
		return err
	}
	*v = out
	return nil
}

// ColumnError reports a stored value that could not be decoded.
type ColumnError struct {
	Type string
	Err  error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s Scan: %v", e.Type, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

func marshalColumn(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// scanRequiredColumn is scanColumn for columns that may never be empty.
func scanRequiredColumn(typeName string, value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return &ColumnError{Type: typeName, Err: ErrMissingArray}
	case []byte:
		if isEmptyJSON(v) {
			return &ColumnError{Type: typeName, Err: ErrMissingArray}
		}
	case string:
		if isEmptyJSON([]byte(v)) {
			return &ColumnError{Type: typeName, Err: ErrMissingArray}
		}
	}
	return scanColumn(typeName, value, dest)
}

func isEmptyJSON(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func scanColumn(typeName string, value interface{}, dest interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return &ColumnError{Type: typeName, Err: fmt.Errorf("unsupported type %T", value)}
	}

	if isEmptyJSON(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &ColumnError{Type: typeName, Err: err}
	}
	return nil
}
