package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/middleware"
	"github.com/tutorlane/assess-backend/internal/model"
	"github.com/tutorlane/assess-backend/internal/service"
	"github.com/tutorlane/assess-backend/internal/store"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// statusFrame is one message on the submission status stream.
type statusFrame struct {
	Type       string            `json:"type"` // "snapshot" | "change" | "error"
	Submission *model.Submission `json:"submission,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// WSHandler streams a respondent's own submission status.
type WSHandler struct {
	store           store.Store
	deliveryService *service.DeliveryService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(st store.Store, deliveryService *service.DeliveryService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		store:           st,
		deliveryService: deliveryService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// SubmissionStream godoc
// WS /ws/v1/respondent/exams/:exam_id/stream
// Streams the respondent's own submission for one exam: an initial snapshot
// (if a submission exists), then every subsequent change. The subscription is
// scoped to exactly the one key the respondent owns — never a sweep over all
// exams with one watch per exam.
func (h *WSHandler) SubmissionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	examID := c.Param("exam_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("respondent_id", claims.UserID).
		Str("exam_id", examID).
		Logger()

	// Serialize writes: the subscription callback and this handler both
	// write to the connection. Enqueueing never blocks; a full buffer
	// drops the frame rather than stalling the producer.
	frames := make(chan statusFrame, 8)
	enqueue := func(frame statusFrame) {
		select {
		case frames <- frame:
		default:
			wsLog.Warn().Str("type", frame.Type).Msg("Stream backlogged, dropping frame")
		}
	}

	path := config.StorePath.SubmissionPath(examID, claims.UserID)
	unsubscribe, err := h.store.Subscribe(c.Request.Context(), path, func(ev store.Event) {
		sub, err := model.DecodeSubmission(ev.Path, ev.Doc)
		if err != nil {
			wsLog.Warn().Err(err).Msg("Malformed submission event")
			return
		}
		enqueue(statusFrame{Type: "change", Submission: sub})
	})
	if err != nil {
		_ = conn.WriteJSON(statusFrame{Type: "error", Message: "subscription unavailable"})
		return
	}
	defer unsubscribe()

	// Initial snapshot. Change frames that raced the subscription may
	// already occupy the buffer; they supersede the snapshot, so dropping
	// it in that case is correct.
	sub, err := h.deliveryService.GetSubmission(context.Background(), examID, claims.UserID)
	switch {
	case err == nil:
		enqueue(statusFrame{Type: "snapshot", Submission: sub})
	case errors.Is(err, service.ErrSubmissionNotFound):
		enqueue(statusFrame{Type: "snapshot"})
	default:
		wsLog.Error().Err(err).Msg("Snapshot read failed")
		enqueue(statusFrame{Type: "error", Message: "snapshot unavailable"})
	}

	wsLog.Info().Msg("Respondent connected")

	// Read pump: the client sends nothing meaningful; reading detects close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Connection closed")
			return
		case frame := <-frames:
			if err := conn.WriteJSON(frame); err != nil {
				wsLog.Warn().Err(err).Msg("Write failed")
				return
			}
		}
	}
}
