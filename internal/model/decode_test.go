package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validExamJSON(t *testing.T) json.RawMessage {
	t.Helper()
	exam := Exam{
		ID:        "exam-1",
		Title:     "Quiz",
		OwnerID:   "author-1",
		CreatedAt: time.Now(),
		Questions: []Question{
			{ID: "q1", Text: "2+2?", Kind: QuestionKindMultipleChoice, Points: 2, Options: []string{"3", "4"}, CorrectAnswer: "4"},
			{ID: "q2", Text: "Explain", Kind: QuestionKindEssay, Points: 5},
		},
		IsActive: true,
	}
	raw, err := json.Marshal(exam)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func TestDecodeExam(t *testing.T) {
	exam, err := DecodeExam("exams/author-1/exam-1", validExamJSON(t))
	if err != nil {
		t.Fatalf("DecodeExam: %v", err)
	}
	if exam.ID != "exam-1" || len(exam.Questions) != 2 {
		t.Fatalf("decoded exam = %+v", exam)
	}
}

func TestDecodeExam_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "invalid json", raw: `{"id":`, reason: "invalid JSON"},
		{name: "missing id", raw: `{"title":"Quiz","owner_id":"a","questions":[{"id":"q1","text":"x","kind":"ESSAY","points":1}]}`, reason: "missing exam id"},
		{name: "blank title", raw: `{"id":"e1","title":"  ","owner_id":"a","questions":[{"id":"q1","text":"x","kind":"ESSAY","points":1}]}`, reason: "missing exam title"},
		{name: "missing owner", raw: `{"id":"e1","title":"Quiz","questions":[{"id":"q1","text":"x","kind":"ESSAY","points":1}]}`, reason: "missing owner id"},
		{name: "no questions", raw: `{"id":"e1","title":"Quiz","owner_id":"a","questions":[]}`, reason: "no questions"},
		{name: "question without id", raw: `{"id":"e1","title":"Quiz","owner_id":"a","questions":[{"text":"x","kind":"ESSAY","points":1}]}`, reason: "missing id"},
		{name: "duplicate question ids", raw: `{"id":"e1","title":"Quiz","owner_id":"a","questions":[{"id":"q1","text":"x","kind":"ESSAY","points":1},{"id":"q1","text":"y","kind":"ESSAY","points":1}]}`, reason: "duplicate id"},
		{name: "unknown kind", raw: `{"id":"e1","title":"Quiz","owner_id":"a","questions":[{"id":"q1","text":"x","kind":"TRUE_FALSE","points":1}]}`, reason: "unknown kind"},
		{name: "invalid question", raw: `{"id":"e1","title":"Quiz","owner_id":"a","questions":[{"id":"q1","text":"x","kind":"ESSAY","points":0}]}`, reason: "points"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeExam("exams/a/e1", json.RawMessage(tc.raw))
			if err == nil {
				t.Fatal("expected decode error")
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if decErr.Path != "exams/a/e1" {
				t.Fatalf("error path = %q", decErr.Path)
			}
			if !strings.Contains(decErr.Reason, tc.reason) {
				t.Fatalf("reason %q does not mention %q", decErr.Reason, tc.reason)
			}
		})
	}
}

func TestDecodeSubmission(t *testing.T) {
	raw := json.RawMessage(`{"exam_id":"e1","respondent_id":"r1","respondent_name":"Ann","answers":{"q1":"A"},"score":2,"graded":false,"submitted_at":"2026-08-01T10:00:00Z"}`)

	sub, err := DecodeSubmission("submissions/e1/r1", raw)
	if err != nil {
		t.Fatalf("DecodeSubmission: %v", err)
	}
	if sub.ExamID != "e1" || sub.RespondentID != "r1" || sub.Answers["q1"] != "A" {
		t.Fatalf("decoded submission = %+v", sub)
	}
}

func TestDecodeSubmission_NilAnswersBecomesEmptyMap(t *testing.T) {
	raw := json.RawMessage(`{"exam_id":"e1","respondent_id":"r1","submitted_at":"2026-08-01T10:00:00Z"}`)

	sub, err := DecodeSubmission("submissions/e1/r1", raw)
	if err != nil {
		t.Fatalf("DecodeSubmission: %v", err)
	}
	if sub.Answers == nil || len(sub.Answers) != 0 {
		t.Fatalf("answers = %v, want empty map", sub.Answers)
	}
}

func TestDecodeSubmission_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "invalid json", raw: `not json`},
		{name: "missing exam id", raw: `{"respondent_id":"r1","submitted_at":"2026-08-01T10:00:00Z"}`},
		{name: "missing respondent id", raw: `{"exam_id":"e1","submitted_at":"2026-08-01T10:00:00Z"}`},
		{name: "missing submitted_at", raw: `{"exam_id":"e1","respondent_id":"r1"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeSubmission("submissions/e1/r1", json.RawMessage(tc.raw)); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}
