package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/idgen"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/store"
)

var testTime = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

func newTestAuthoring(st store.Store) *AuthoringService {
	svc := NewAuthoringService(st, idgen.NewSequence("id"), zerolog.Nop())
	svc.now = func() time.Time { return testTime }
	return svc
}

func mcQuestion(text string, points float64, options []string, correct string) model.Question {
	return model.Question{
		Text:          text,
		Kind:          model.QuestionKindMultipleChoice,
		Points:        points,
		Options:       options,
		CorrectAnswer: correct,
	}
}

func essayQuestion(text string, points float64) model.Question {
	return model.Question{Text: text, Kind: model.QuestionKindEssay, Points: points}
}

// publishTestExam publishes the three-question fixture used across the
// service tests: two objective questions worth 2 and 3 points, one essay
// worth 5.
func publishTestExam(t *testing.T, st store.Store, ownerID string) *model.Exam {
	t.Helper()

	svc := newTestAuthoring(st)
	draft := NewDraft()
	questions := []model.Question{
		mcQuestion("2+2?", 2, []string{"A", "B"}, "A"),
		mcQuestion("Pick Y", 3, []string{"X", "Y"}, "Y"),
		essayQuestion("Explain limits", 5),
	}
	for _, q := range questions {
		if err := svc.AddQuestion(draft, q); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}

	exam, err := svc.Publish(context.Background(), "Algebra Basics", draft, ownerID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return exam
}

func TestAddQuestion(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	draft := NewDraft()

	if err := svc.AddQuestion(draft, mcQuestion("2+2?", 2, []string{"3", "4"}, "4")); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if draft.Len() != 1 {
		t.Fatalf("draft length = %d", draft.Len())
	}
	if got := draft.Questions()[0].ID; got != "id-1" {
		t.Fatalf("assigned id = %q", got)
	}
}

func TestAddQuestion_EssayNormalization(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	draft := NewDraft()

	q := essayQuestion("Explain", 5)
	q.Options = []string{"A", "B"}
	q.CorrectAnswer = "A"

	if err := svc.AddQuestion(draft, q); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	added := draft.Questions()[0]
	if added.Options != nil || added.CorrectAnswer != "" {
		t.Fatalf("essay kept objective fields: %+v", added)
	}
}

func TestAddQuestion_InvalidLeavesDraftUntouched(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	draft := NewDraft()

	if err := svc.AddQuestion(draft, mcQuestion("2+2?", 2, []string{"3", "4"}, "4")); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	tests := []struct {
		name    string
		q       model.Question
		wantErr error
	}{
		{name: "blank text", q: essayQuestion("  ", 1), wantErr: model.ErrEmptyText},
		{name: "zero points", q: essayQuestion("Q", 0), wantErr: model.ErrNonPositivePoints},
		{name: "no options", q: mcQuestion("Q", 1, nil, "A"), wantErr: model.ErrIncompleteOptions},
		{name: "correct answer not an option", q: mcQuestion("Q", 1, []string{"A"}, "B"), wantErr: model.ErrMissingCorrectAnswer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.AddQuestion(draft, tc.q); !errors.Is(err, tc.wantErr) {
				t.Fatalf("AddQuestion = %v, want %v", err, tc.wantErr)
			}
			if draft.Len() != 1 {
				t.Fatalf("rejected question mutated draft: length = %d", draft.Len())
			}
		})
	}
}

func TestRemoveQuestion(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	draft := NewDraft()
	for _, text := range []string{"first", "second", "third"} {
		if err := svc.AddQuestion(draft, essayQuestion(text, 1)); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}

	if err := svc.RemoveQuestion(draft, 1); err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	if draft.Len() != 2 {
		t.Fatalf("draft length = %d", draft.Len())
	}
	if draft.Questions()[0].Text != "first" || draft.Questions()[1].Text != "third" {
		t.Fatalf("order broken: %q, %q", draft.Questions()[0].Text, draft.Questions()[1].Text)
	}

	for _, index := range []int{-1, 2} {
		if err := svc.RemoveQuestion(draft, index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("RemoveQuestion(%d) = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestPublish(t *testing.T) {
	st := store.NewMemStore()
	exam := publishTestExam(t, st, "author-1")

	if exam.ID == "" || exam.OwnerID != "author-1" {
		t.Fatalf("published exam = %+v", exam)
	}
	if !exam.IsActive {
		t.Fatal("published exam must be active")
	}
	if !exam.CreatedAt.Equal(testTime) {
		t.Fatalf("created_at = %v, want %v", exam.CreatedAt, testTime)
	}
	if exam.TotalPoints() != 10 {
		t.Fatalf("total points = %v", exam.TotalPoints())
	}

	// The exam is readable back from the store as one complete record.
	raw, err := st.Read(context.Background(), config.StorePath.ExamPath("author-1", exam.ID))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	stored, err := model.DecodeExam("exams/author-1/"+exam.ID, raw)
	if err != nil {
		t.Fatalf("DecodeExam: %v", err)
	}
	if stored.Title != "Algebra Basics" || len(stored.Questions) != 3 {
		t.Fatalf("stored exam = %+v", stored)
	}
}

func TestPublish_ValidationFailuresDoNotWrite(t *testing.T) {
	st := store.NewMemStore()
	svc := newTestAuthoring(st)
	ctx := context.Background()

	draft := NewDraft()
	if err := svc.AddQuestion(draft, essayQuestion("Q", 1)); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	if _, err := svc.Publish(ctx, "   ", draft, "author-1"); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Publish blank title = %v, want ErrEmptyTitle", err)
	}
	if _, err := svc.Publish(ctx, "Quiz", NewDraft(), "author-1"); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Publish empty draft = %v, want ErrNoQuestions", err)
	}

	docs, err := st.ReadAll(ctx, config.StorePath.ExamsPrefix("author-1"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("rejected publish reached the store: %d docs", len(docs))
	}
}

func TestPublish_DuplicateQuestionIDs(t *testing.T) {
	st := store.NewMemStore()
	svc := newTestAuthoring(st)
	ctx := context.Background()

	draft := NewDraft()
	for _, text := range []string{"first", "second"} {
		q := essayQuestion(text, 1)
		q.ID = "q-dup"
		if err := svc.AddQuestion(draft, q); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}

	if _, err := svc.Publish(ctx, "Quiz", draft, "author-1"); !errors.Is(err, ErrDuplicateQuestionID) {
		t.Fatalf("Publish = %v, want ErrDuplicateQuestionID", err)
	}

	docs, err := st.ReadAll(ctx, config.StorePath.ExamsPrefix("author-1"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("rejected publish reached the store: %d docs", len(docs))
	}
}

func TestGetExam_NotFound(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	if _, err := svc.GetExam(context.Background(), "author-1", "missing"); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("GetExam = %v, want ErrExamNotFound", err)
	}
}

func TestListExams(t *testing.T) {
	st := store.NewMemStore()
	svc := newTestAuthoring(st)
	ctx := context.Background()

	times := []time.Time{testTime, testTime.Add(time.Hour)}
	titles := []string{"Older", "Newer"}
	for i := range titles {
		svc.now = func() time.Time { return times[i] }
		draft := NewDraft()
		if err := svc.AddQuestion(draft, essayQuestion("Q", 1)); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		if _, err := svc.Publish(ctx, titles[i], draft, "author-1"); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	// Another author's exam stays out of the listing.
	publishTestExam(t, st, "author-2")

	exams, err := svc.ListExams(ctx, "author-1")
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("expected 2 exams, got %d", len(exams))
	}
	if exams[0].Title != "Newer" || exams[1].Title != "Older" {
		t.Fatalf("order = %q, %q, want newest first", exams[0].Title, exams[1].Title)
	}
}

func TestListExams_EmptyNamespace(t *testing.T) {
	svc := newTestAuthoring(store.NewMemStore())
	exams, err := svc.ListExams(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if exams == nil || len(exams) != 0 {
		t.Fatalf("exams = %v, want empty slice", exams)
	}
}
