package model

import (
	"time"
)

// Exam is an authored, ordered collection of questions owned by one author.
// Exams are immutable once published.
type Exam struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	Questions []Question `json:"questions"`
	IsActive  bool       `json:"is_active"`
}

// TotalPoints returns the sum of all question weights.
func (e *Exam) TotalPoints() float64 {
	var total float64
	for _, q := range e.Questions {
		total += q.Points
	}
	return total
}

// QuestionByID returns the question with the given id, or nil.
func (e *Exam) QuestionByID(id string) *Question {
	for i := range e.Questions {
		if e.Questions[i].ID == id {
			return &e.Questions[i]
		}
	}
	return nil
}

// QuestionForRespondent is a question with the correct answer stripped,
// safe to send to the test-taker.
type QuestionForRespondent struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Kind    QuestionKind `json:"kind"`
	Points  float64      `json:"points"`
	Options []string     `json:"options,omitempty"`
}

// ExamPayload is the respondent-facing view of an exam (no correct answers).
type ExamPayload struct {
	ExamID    string                  `json:"exam_id"`
	Title     string                  `json:"title"`
	CreatedAt time.Time               `json:"created_at"`
	Questions []QuestionForRespondent `json:"questions"`
}

// PayloadFor builds the respondent-facing payload for an exam.
func PayloadFor(exam *Exam) *ExamPayload {
	questions := make([]QuestionForRespondent, len(exam.Questions))
	for i, q := range exam.Questions {
		questions[i] = QuestionForRespondent{
			ID:      q.ID,
			Text:    q.Text,
			Kind:    q.Kind,
			Points:  q.Points,
			Options: q.Options,
		}
	}
	return &ExamPayload{
		ExamID:    exam.ID,
		Title:     exam.Title,
		CreatedAt: exam.CreatedAt,
		Questions: questions,
	}
}

// QuestionInput is the payload for one question when creating an exam.
type QuestionInput struct {
	Text          string   `json:"text" binding:"required"`
	Kind          string   `json:"kind" binding:"required,oneof=MULTIPLE_CHOICE ESSAY"`
	Points        float64  `json:"points" binding:"required"`
	Options       []string `json:"options" binding:"omitempty"`
	CorrectAnswer string   `json:"correct_answer" binding:"omitempty"`
}

// CreateExamRequest is the payload for publishing a new exam.
type CreateExamRequest struct {
	Title     string          `json:"title" binding:"required,max=255"`
	Questions []QuestionInput `json:"questions" binding:"dive"`
}
