package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorlane/assess-backend/internal/middleware"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/response"
	"github.com/tutorlane/assess-backend/internal/service"
	"github.com/tutorlane/assess-backend/internal/validator"
)

// GradingHandler handles the author-side review and override workflow. Every
// route first resolves the exam inside the author's own namespace, which
// doubles as the ownership check.
type GradingHandler struct {
	authoringService *service.AuthoringService
	gradingService   *service.GradingService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(authoringService *service.AuthoringService, gradingService *service.GradingService) *GradingHandler {
	return &GradingHandler{
		authoringService: authoringService,
		gradingService:   gradingService,
	}
}

// ListSubmissions godoc
// GET /api/v1/author/exams/:exam_id/submissions
// Point-in-time read of all current submissions for the exam.
func (h *GradingHandler) ListSubmissions(c *gin.Context) {
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

	subs, err := h.gradingService.ListSubmissions(c.Request.Context(), exam.ID)
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

// OpenForReview godoc
// GET /api/v1/author/exams/:exam_id/submissions/:respondent_id/review
// Returns the submission plus per-question review rows.
func (h *GradingHandler) OpenForReview(c *gin.Context) {
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

	review, err := h.gradingService.OpenForReview(c.Request.Context(), exam, c.Param("respondent_id"))
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// Finalize godoc
// POST /api/v1/author/exams/:exam_id/submissions/:respondent_id/finalize
// Sets the authoritative final score and marks the submission graded.
// Idempotent; may be repeated with the same or a different score.
func (h *GradingHandler) Finalize(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.FinalizeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.authoringService.GetExam(c.Request.Context(), claims.UserID, c.Param("exam_id"))
	if err != nil {
		failRead(c, err)
		return
	}

	sub, err := h.gradingService.Finalize(c.Request.Context(), exam.ID, c.Param("respondent_id"), *req.Score)
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}
