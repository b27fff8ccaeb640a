package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorlane/assess-backend/internal/middleware"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/response"
	"github.com/tutorlane/assess-backend/internal/service"
	"github.com/tutorlane/assess-backend/internal/store"
	"github.com/tutorlane/assess-backend/internal/validator"
)

// AuthoringHandler handles author-side exam creation endpoints.
type AuthoringHandler struct {
	authoringService *service.AuthoringService
}

// NewAuthoringHandler creates a new AuthoringHandler.
func NewAuthoringHandler(authoringService *service.AuthoringService) *AuthoringHandler {
	return &AuthoringHandler{authoringService: authoringService}
}

// CreateExam godoc
// POST /api/v1/author/exams
// Validates every question, then publishes the exam in one durable write.
func (h *AuthoringHandler) CreateExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft := service.NewDraft()
	for _, input := range req.Questions {
		question := model.Question{
			Text:          input.Text,
			Kind:          model.QuestionKind(input.Kind),
			Points:        input.Points,
			Options:       input.Options,
			CorrectAnswer: input.CorrectAnswer,
		}
		if err := h.authoringService.AddQuestion(draft, question); err != nil {
			response.Fail(c, http.StatusBadRequest, questionErrorCode(err))
			return
		}
	}

	exam, err := h.authoringService.Publish(c.Request.Context(), req.Title, draft, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle):
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyTitle)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		case errors.Is(err, service.ErrDuplicateQuestionID):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		case errors.Is(err, store.ErrUnavailable):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// ListExams godoc
// GET /api/v1/author/exams
// Lists the author's own exams, newest first.
func (h *AuthoringHandler) ListExams(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	exams, err := h.authoringService.ListExams(c.Request.Context(), claims.UserID)
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExam godoc
// GET /api/v1/author/exams/:exam_id
// Returns one of the author's exams, correct answers included.
func (h *AuthoringHandler) GetExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	exam, err := h.authoringService.GetExam(c.Request.Context(), claims.UserID, c.Param("exam_id"))
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// questionErrorCode maps authoring validation errors to API error codes.
func questionErrorCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, model.ErrEmptyText):
		return response.ErrEmptyQuestionText
	case errors.Is(err, model.ErrIncompleteOptions):
		return response.ErrIncompleteOptions
	case errors.Is(err, model.ErrMissingCorrectAnswer):
		return response.ErrMissingCorrectAnswer
	case errors.Is(err, model.ErrNonPositivePoints):
		return response.ErrNonPositivePoints
	default:
		return response.ErrValidation
	}
}

// failRead maps read-path errors shared across handlers to API responses.
func failRead(c *gin.Context, err error) {
	var decodeErr *model.DecodeError
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSubmissionNotFound)
	case errors.Is(err, store.ErrUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	case errors.As(err, &decodeErr):
		response.Fail(c, http.StatusInternalServerError, response.ErrMalformedRecord)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
