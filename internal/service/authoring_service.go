package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/idgen"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/store"
)

// Authoring domain errors.
var (
	ErrEmptyTitle          = errors.New("exam title is empty")
	ErrNoQuestions         = errors.New("exam has no questions")
	ErrIndexOutOfRange     = errors.New("question index out of range")
	ErrDuplicateQuestionID = errors.New("duplicate question id")
	ErrExamNotFound        = errors.New("exam not found")
)

// Draft is an in-progress ordered question sequence. A failed AddQuestion
// leaves the draft untouched, so already-added questions survive.
type Draft struct {
	questions []model.Question
}

// NewDraft creates an empty draft.
func NewDraft() *Draft { return &Draft{} }

// Questions returns the draft's questions in order.
func (d *Draft) Questions() []model.Question { return d.questions }

// Len returns the number of questions in the draft.
func (d *Draft) Len() int { return len(d.questions) }

// AuthoringService builds validated question sequences into persisted exams.
type AuthoringService struct {
	store store.Store
	ids   idgen.Generator
	log   zerolog.Logger
	now   func() time.Time
}

// NewAuthoringService creates a new AuthoringService.
func NewAuthoringService(st store.Store, ids idgen.Generator, log zerolog.Logger) *AuthoringService {
	return &AuthoringService{
		store: st,
		ids:   ids,
		log:   log.With().Str("component", "authoring_service").Logger(),
		now:   time.Now,
	}
}

// AddQuestion validates q and appends it to the draft. Essay questions are
// normalized: options and correct answer are cleared before validation, since
// they carry no meaning for subjective items. An invalid question is rejected
// without mutating the draft.
func (s *AuthoringService) AddQuestion(d *Draft, q model.Question) error {
	if q.Kind == model.QuestionKindEssay {
		q.Options = nil
		q.CorrectAnswer = ""
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = s.ids.NewID()
	}
	d.questions = append(d.questions, q)
	return nil
}

// RemoveQuestion removes the question at index, preserving order.
func (s *AuthoringService) RemoveQuestion(d *Draft, index int) error {
	if index < 0 || index >= len(d.questions) {
		return ErrIndexOutOfRange
	}
	d.questions = append(d.questions[:index], d.questions[index+1:]...)
	return nil
}

// Publish allocates an exam id, stamps the creation time, and persists the
// full exam record in one durable write. Validation failures surface before
// any store interaction.
func (s *AuthoringService) Publish(ctx context.Context, title string, d *Draft, ownerID string) (*model.Exam, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if len(d.questions) == 0 {
		return nil, ErrNoQuestions
	}

	// Question ids must be unique within the exam. Auto-assigned ids always
	// are; caller-supplied ids are checked here so a bad draft fails at
	// publish instead of poisoning every later read.
	seen := make(map[string]struct{}, len(d.questions))
	for _, q := range d.questions {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestionID, q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	exam := &model.Exam{
		ID:        s.ids.NewID(),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: s.now(),
		Questions: d.questions,
		IsActive:  true,
	}

	path := config.StorePath.ExamPath(ownerID, exam.ID)
	if err := s.store.Write(ctx, path, exam); err != nil {
		return nil, fmt.Errorf("persist exam: %w", err)
	}

	s.log.Info().
		Str("exam_id", exam.ID).
		Str("owner_id", ownerID).
		Int("questions", len(exam.Questions)).
		Msg("Exam published")
	return exam, nil
}

// GetExam reads one of the author's exams, with answers included.
func (s *AuthoringService) GetExam(ctx context.Context, ownerID, examID string) (*model.Exam, error) {
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

// ListExams reads all exams in the author's namespace, ordered by creation
// time, newest first. A point-in-time read.
func (s *AuthoringService) ListExams(ctx context.Context, ownerID string) ([]model.Exam, error) {
	docs, err := s.store.ReadAll(ctx, config.StorePath.ExamsPrefix(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	exams := make([]model.Exam, 0, len(docs))
	for _, doc := range docs {
		exam, err := model.DecodeExam(doc.Path, doc.Doc)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *exam)
	}

	sort.Slice(exams, func(i, j int) bool {
		return exams[i].CreatedAt.After(exams[j].CreatedAt)
	})
	return exams, nil
}
