package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/grading"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/store"
)

// ErrSubmissionNotFound indicates no submission exists for the
// (exam, respondent) pair.
var ErrSubmissionNotFound = errors.New("submission not found")

// ReviewContext exposes everything an author needs to judge one submission:
// the submission itself and one row per question pairing the respondent's
// answer with the model answer and correctness flag (objective items only).
type ReviewContext struct {
	Exam       *model.Exam         `json:"-"`
	Submission *model.Submission   `json:"submission"`
	Rows       []grading.ReviewRow `json:"rows"`
}

// GradingService is the author-facing review and override workflow. All
// operations are gated on exam ownership: exams live under the author's own
// namespace, so a successful exam read proves ownership.
type GradingService struct {
	store store.Store
	log   zerolog.Logger
}

// NewGradingService creates a new GradingService.
func NewGradingService(st store.Store, log zerolog.Logger) *GradingService {
	return &GradingService{
		store: st,
		log:   log.With().Str("component", "grading_service").Logger(),
	}
}

// ListSubmissions returns a point-in-time read of all current submissions for
// the exam, ordered by respondent key. Submissions arriving after the read
// are not visible until re-fetched. Empty slice if none exist.
func (s *GradingService) ListSubmissions(ctx context.Context, examID string) ([]model.Submission, error) {
	docs, err := s.store.ReadAll(ctx, config.StorePath.SubmissionsPrefix(examID))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	subs := make([]model.Submission, 0, len(docs))
	for _, doc := range docs {
		sub, err := model.DecodeSubmission(doc.Path, doc.Doc)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

// OpenForReview loads the respondent's submission and builds the per-question
// review rows against the exam.
func (s *GradingService) OpenForReview(ctx context.Context, exam *model.Exam, respondentID string) (*ReviewContext, error) {
	path := config.StorePath.SubmissionPath(exam.ID, respondentID)
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("read submission: %w", err)
	}

	sub, err := model.DecodeSubmission(path, raw)
	if err != nil {
		return nil, err
	}

	return &ReviewContext{
		Exam:       exam,
		Submission: sub,
		Rows:       grading.Review(exam, sub.Answers),
	}, nil
}

// Finalize overwrites the submission's score with the author-supplied value
// and marks it graded. The score is unconstrained — not tied to the auto
// score or the sum of question points. Idempotent and re-enterable: calling
// again, with the same or a different score, simply replaces the values.
func (s *GradingService) Finalize(ctx context.Context, examID, respondentID string, finalScore float64) (*model.Submission, error) {
	path := config.StorePath.SubmissionPath(examID, respondentID)
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("read submission: %w", err)
	}

	sub, err := model.DecodeSubmission(path, raw)
	if err != nil {
		return nil, err
	}

	sub.Score = finalScore
	sub.Graded = true

	if err := s.store.Write(ctx, path, sub); err != nil {
		return nil, fmt.Errorf("persist grade: %w", err)
	}

	s.log.Info().
		Str("exam_id", examID).
		Str("respondent_id", respondentID).
		Float64("final_score", finalScore).
		Msg("Submission graded")
	return sub, nil
}
