package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/grading"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/store"
)

// ErrSubmissionWriteFailed indicates the submission could not be persisted.
// The attempt is not considered complete; no partial state is exposed.
var ErrSubmissionWriteFailed = errors.New("submission write failed")

// AvailableExam is an exam as shown to a respondent: the stripped payload
// overlaid with the respondent's own submission status, if any.
type AvailableExam struct {
	model.ExamPayload
	Submitted   bool       `json:"submitted"`
	Graded      *bool      `json:"graded,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// DeliveryService presents exams to a respondent and records submissions.
type DeliveryService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(st store.Store, log zerolog.Logger) *DeliveryService {
	return &DeliveryService{
		store: st,
		log:   log.With().Str("component", "delivery_service").Logger(),
		now:   time.Now,
	}
}

// GetExam reads the full exam record, correct answers included. Callers that
// face the respondent must strip it through model.PayloadFor.
func (s *DeliveryService) GetExam(ctx context.Context, ownerID, examID string) (*model.Exam, error) {
	path := config.StorePath.ExamPath(ownerID, examID)
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("read exam: %w", err)
	}
	return model.DecodeExam(path, raw)
}

// ExamPaper returns the respondent-facing payload for one exam.
func (s *DeliveryService) ExamPaper(ctx context.Context, ownerID, examID string) (*model.ExamPayload, error) {
	exam, err := s.GetExam(ctx, ownerID, examID)
	if err != nil {
		return nil, err
	}
	return model.PayloadFor(exam), nil
}

// ListAvailable returns all of the author's exams as stripped payloads,
// overlaid with the respondent's own submission status. One point-in-time
// read per view; no long-lived per-exam watches.
func (s *DeliveryService) ListAvailable(ctx context.Context, ownerID, respondentID string) ([]AvailableExam, error) {
	docs, err := s.store.ReadAll(ctx, config.StorePath.ExamsPrefix(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	available := make([]AvailableExam, 0, len(docs))
	for _, doc := range docs {
		exam, err := model.DecodeExam(doc.Path, doc.Doc)
		if err != nil {
			return nil, err
		}

		entry := AvailableExam{ExamPayload: *model.PayloadFor(exam)}

		sub, err := s.GetSubmission(ctx, exam.ID, respondentID)
		switch {
		case err == nil:
			entry.Submitted = true
			entry.Graded = &sub.Graded
			entry.Score = &sub.Score
			entry.SubmittedAt = &sub.SubmittedAt
		case errors.Is(err, ErrSubmissionNotFound):
			// Not attempted yet.
		default:
			return nil, err
		}

		available = append(available, entry)
	}
	return available, nil
}

// GetSubmission reads the respondent's own submission for an exam.
func (s *DeliveryService) GetSubmission(ctx context.Context, examID, respondentID string) (*model.Submission, error) {
	path := config.StorePath.SubmissionPath(examID, respondentID)
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("read submission: %w", err)
	}
	return model.DecodeSubmission(path, raw)
}

// Submit auto-grades the answer map and writes the submission under the
// deterministic (exam, respondent) key in one durable write.
//
// A second submit for the same pair silently replaces the prior submission in
// full — including resetting graded to false and discarding any manual grade.
// Blocking a retake is a policy decision left to the caller.
func (s *DeliveryService) Submit(ctx context.Context, exam *model.Exam, respondentID, respondentName string, answers map[string]string) (*model.Submission, error) {
	if answers == nil {
		answers = map[string]string{}
	}

	sub := &model.Submission{
		ExamID:         exam.ID,
		RespondentID:   respondentID,
		RespondentName: respondentName,
		Answers:        answers,
		Score:          grading.Score(exam, answers),
		Graded:         false,
		SubmittedAt:    s.now(),
	}

	path := config.StorePath.SubmissionPath(exam.ID, respondentID)
	if err := s.store.Write(ctx, path, sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionWriteFailed, err)
	}

	s.log.Info().
		Str("exam_id", exam.ID).
		Str("respondent_id", respondentID).
		Float64("auto_score", sub.Score).
		Msg("Submission recorded")
	return sub, nil
}
