package config

import (
	"fmt"
)

// StorePathStruct builds document store paths. Exams live under a per-author
// namespace; submissions live under a per-exam namespace keyed by respondent,
// so the (exam, respondent) pair maps to exactly one document.
type StorePathStruct struct{}

func NewStorePathStruct() *StorePathStruct {
	return &StorePathStruct{}
}

// ExamsPrefix returns the namespace holding all exams owned by an author.
func (r *StorePathStruct) ExamsPrefix(ownerID string) string {
	return fmt.Sprintf("exams/%s", ownerID)
}

// ExamPath returns the document path for a single exam.
func (r *StorePathStruct) ExamPath(ownerID, examID string) string {
	return fmt.Sprintf("exams/%s/%s", ownerID, examID)
}

// SubmissionsPrefix returns the namespace holding all submissions for an exam.
func (r *StorePathStruct) SubmissionsPrefix(examID string) string {
	return fmt.Sprintf("submissions/%s", examID)
}

// SubmissionPath returns the document path for a respondent's submission.
// The path is deterministic: a second submit for the same pair overwrites.
func (r *StorePathStruct) SubmissionPath(examID, respondentID string) string {
	return fmt.Sprintf("submissions/%s/%s", examID, respondentID)
}

var StorePath = NewStorePathStruct()
