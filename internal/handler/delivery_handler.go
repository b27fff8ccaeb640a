package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorlane/assess-backend/internal/middleware"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/response"
	"github.com/tutorlane/assess-backend/internal/service"
	"github.com/tutorlane/assess-backend/internal/validator"
)

// DeliveryHandler handles respondent-facing endpoints (exam taking).
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// ListAvailable godoc
// GET /api/v1/respondent/exams
// Returns the author's exams as stripped payloads, overlaid with the
// respondent's own submission status.
func (h *DeliveryHandler) ListAvailable(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	exams, err := h.deliveryService.ListAvailable(c.Request.Context(), claims.OwnerID, claims.UserID)
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExamPaper godoc
// GET /api/v1/respondent/exams/:exam_id/paper
// Returns the exam without correct answers.
func (h *DeliveryHandler) GetExamPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	payload, err := h.deliveryService.ExamPaper(c.Request.Context(), claims.OwnerID, c.Param("exam_id"))
	if err != nil {
		failRead(c, err)
		return
	}

	response.Success(c, http.StatusOK, payload)
}

// Submit godoc
// POST /api/v1/respondent/exams/:exam_id/submit
// Auto-grades the answers and records the submission. A repeat submit for the
// same exam replaces the earlier submission in full.
func (h *DeliveryHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.deliveryService.GetExam(c.Request.Context(), claims.OwnerID, c.Param("exam_id"))
	if err != nil {
		failRead(c, err)
		return
	}

	sub, err := h.deliveryService.Submit(c.Request.Context(), exam, claims.UserID, claims.DisplayName, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionWriteFailed) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrSubmissionWriteFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": sub})
}
