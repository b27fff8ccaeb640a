// Package grading implements automatic scoring of objective answers and the
// per-question review rows used during manual grading. Everything here is
// pure: no store access, no clock, no randomness.
package grading

import (
	"github.com/tutorlane/assess-backend/internal/model"
)

// Score computes the objective score for an answer map: the sum of points of
// every multiple choice question whose answer exactly equals the stored
// correct answer. Matching is exact string equality — no trimming or case
// folding. Essay questions and unanswered questions contribute 0.
func Score(exam *model.Exam, answers map[string]string) float64 {
	var total float64
	for _, q := range exam.Questions {
		if q.Kind != model.QuestionKindMultipleChoice {
			continue
		}
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectAnswer {
			total += q.Points
		}
	}
	return total
}

// ReviewRow pairs one question with the respondent's answer for manual
// review. ModelAnswer and Correct are populated for multiple choice items
// only; essays carry no stored model answer and must be judged on the
// prompt alone.
type ReviewRow struct {
	QuestionID  string             `json:"question_id"`
	Text        string             `json:"text"`
	Kind        model.QuestionKind `json:"kind"`
	Points      float64            `json:"points"`
	Answer      string             `json:"answer"`
	Answered    bool               `json:"answered"`
	ModelAnswer string             `json:"model_answer,omitempty"`
	Correct     *bool              `json:"correct,omitempty"`
}

// Review builds one row per exam question, in exam order.
func Review(exam *model.Exam, answers map[string]string) []ReviewRow {
	rows := make([]ReviewRow, len(exam.Questions))
	for i, q := range exam.Questions {
		answer, answered := answers[q.ID]

		row := ReviewRow{
			QuestionID: q.ID,
			Text:       q.Text,
			Kind:       q.Kind,
			Points:     q.Points,
			Answer:     answer,
			Answered:   answered,
		}

		if q.Kind == model.QuestionKindMultipleChoice {
			correct := answered && answer == q.CorrectAnswer
			row.ModelAnswer = q.CorrectAnswer
			row.Correct = &correct
		}

		rows[i] = row
	}
	return rows
}
