package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError reports a store document that does not match the expected
// schema. Malformed documents fail loudly at the store boundary instead of
// propagating as partially-populated values.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %s", e.Path, e.Reason)
}

func decodeErr(path, format string, args ...any) error {
	return &DecodeError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// DecodeExam decodes and shape-checks an exam document read from the store.
func DecodeExam(path string, raw json.RawMessage) (*Exam, error) {
	var exam Exam
	if err := json.Unmarshal(raw, &exam); err != nil {
		return nil, decodeErr(path, "invalid JSON: %v", err)
	}

	if exam.ID == "" {
		return nil, decodeErr(path, "missing exam id")
	}
	if strings.TrimSpace(exam.Title) == "" {
		return nil, decodeErr(path, "missing exam title")
	}
	if exam.OwnerID == "" {
		return nil, decodeErr(path, "missing owner id")
	}
	if len(exam.Questions) == 0 {
		return nil, decodeErr(path, "exam has no questions")
	}

	seen := make(map[string]struct{}, len(exam.Questions))
	for i, q := range exam.Questions {
		if q.ID == "" {
			return nil, decodeErr(path, "question %d: missing id", i)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, decodeErr(path, "question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}

		switch q.Kind {
		case QuestionKindMultipleChoice, QuestionKindEssay:
		default:
			return nil, decodeErr(path, "question %q: unknown kind %q", q.ID, q.Kind)
		}
		if err := q.Validate(); err != nil {
			return nil, decodeErr(path, "question %q: %v", q.ID, err)
		}
	}

	return &exam, nil
}

// DecodeSubmission decodes and shape-checks a submission document read from
// the store.
func DecodeSubmission(path string, raw json.RawMessage) (*Submission, error) {
	var sub Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, decodeErr(path, "invalid JSON: %v", err)
	}

	if sub.ExamID == "" {
		return nil, decodeErr(path, "missing exam id")
	}
	if sub.RespondentID == "" {
		return nil, decodeErr(path, "missing respondent id")
	}
	if sub.SubmittedAt.IsZero() {
		return nil, decodeErr(path, "missing submitted_at timestamp")
	}
	if sub.Answers == nil {
		sub.Answers = map[string]string{}
	}

	return &sub, nil
}
