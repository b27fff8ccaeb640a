package model

import (
	"errors"
	"strings"
)

// QuestionKind distinguishes objective from subjective questions.
type QuestionKind string

const (
	QuestionKindMultipleChoice QuestionKind = "MULTIPLE_CHOICE"
	QuestionKindEssay          QuestionKind = "ESSAY"
)

// Authoring-time validation errors.
var (
	ErrEmptyText            = errors.New("question text is empty")
	ErrIncompleteOptions    = errors.New("multiple choice question has missing or blank options")
	ErrMissingCorrectAnswer = errors.New("multiple choice question has no correct answer among its options")
	ErrNonPositivePoints    = errors.New("question points must be positive")
)

// Question is a single assessment item inside an exam. Immutable once the
// owning exam is published.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Kind          QuestionKind `json:"kind"`
	Points        float64      `json:"points"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
}

// Validate enforces the authoring-time invariants:
//   - non-blank text and positive points for every kind
//   - MULTIPLE_CHOICE: non-empty options, none blank, and a correct answer
//     that is one of the options
//
// Pure; no store access.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyText
	}
	if q.Points <= 0 {
		return ErrNonPositivePoints
	}

	if q.Kind == QuestionKindMultipleChoice {
		if len(q.Options) == 0 {
			return ErrIncompleteOptions
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return ErrIncompleteOptions
			}
		}
		if !q.hasCorrectOption() {
			return ErrMissingCorrectAnswer
		}
	}
	return nil
}

func (q *Question) hasCorrectOption() bool {
	if q.CorrectAnswer == "" {
		return false
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}
