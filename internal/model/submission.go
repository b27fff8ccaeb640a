package model

import (
	"time"
)

// Submission is one respondent's recorded attempt at one exam. Its identity
// is the (exam_id, respondent_id) pair: at most one submission exists per
// pair, and a later submit replaces the earlier one in full.
type Submission struct {
	ExamID         string            `json:"exam_id"`
	RespondentID   string            `json:"respondent_id"`
	RespondentName string            `json:"respondent_name"`
	Answers        map[string]string `json:"answers"`
	Score          float64           `json:"score"`
	Graded         bool              `json:"graded"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

// SubmitRequest is the payload for submitting answers to an exam.
// Unanswered questions are simply absent from the map.
type SubmitRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// FinalizeRequest is the payload for finalizing a submission's grade.
// The score is unconstrained: the author has full override authority.
type FinalizeRequest struct {
	Score *float64 `json:"score" binding:"required"`
}
