package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/handler"
	"github.com/tutorlane/assess-backend/internal/middleware"
	"github.com/tutorlane/assess-backend/internal/response"
	"github.com/tutorlane/assess-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Authoring *handler.AuthoringHandler
	Delivery  *handler.DeliveryHandler
	Grading   *handler.GradingHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Author Group (JWT, role=author) ────────────────────────────
	authorAPI := router.Group("/api/v1/author")
	authorAPI.Use(middleware.RequireAuthorJWT(authService))
	{
		authorAPI.GET("/exams", handlers.Authoring.ListExams)
		authorAPI.POST("/exams", handlers.Authoring.CreateExam)
		authorAPI.GET("/exams/:exam_id", handlers.Authoring.GetExam)

		authorAPI.GET("/exams/:exam_id/submissions", handlers.Grading.ListSubmissions)
		authorAPI.GET("/exams/:exam_id/submissions/:respondent_id/review", handlers.Grading.OpenForReview)
		authorAPI.POST("/exams/:exam_id/submissions/:respondent_id/finalize", handlers.Grading.Finalize)
	}

	// ─── 2. Respondent Group (JWT, role=respondent) ────────────────────
	respondentAPI := router.Group("/api/v1/respondent")
	respondentAPI.Use(middleware.RequireRespondentJWT(authService))
	{
		respondentAPI.GET("/exams", handlers.Delivery.ListAvailable)
		respondentAPI.GET("/exams/:exam_id/paper", handlers.Delivery.GetExamPaper)
		respondentAPI.POST("/exams/:exam_id/submit", handlers.Delivery.Submit)
	}

	// ─── 3. WebSocket Group (Respondent WS Auth) ───────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireRespondentWSAuth(authService))
	{
		ws.GET("/respondent/exams/:exam_id/stream", handlers.WS.SubmissionStream)
	}

	return router
}
