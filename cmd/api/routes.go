package main

import (
	"net/http"

	"github.com/abhishek622/mockmate/internal/logger"
	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinLogger(app.Logger))
	r.Use(app.Metrics.Middleware())
	r.Use(app.CORSMiddleware())
	r.MaxMultipartMemory = 12 << 20

	r.GET("/healthz", app.health)
	r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))

	h := app.Handler
	api := r.Group("/api")
	api.Use(app.AuthMiddleware())
	{
		api.GET("/me", h.Me)

		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSession)
		api.GET("/sessions/:id/analytics", h.GetSessionAnalytics)
		api.POST("/sessions/:id/analytics", h.CompleteSessionAnalytics)

		api.POST("/analytics/questions", h.TrackQuestion)
		api.GET("/analytics/me", h.MyAnalytics)
		api.GET("/analytics/insights", h.QuestionInsights)

		api.GET("/cache/stats", h.CacheStats)
		api.GET("/cache/popular", h.PopularQuestionSets)

		api.POST("/extract-text", h.ExtractText)
		api.POST("/fetch-job-description", h.FetchJobDescription)
	}

	// routes that call the LLM
	llmRoutes := api.Group("")
	if app.Config.Limiter.Enabled {
		llmRoutes.Use(app.Limiter.Middleware(rateLimitKey, app.Logger))
	}
	{
		llmRoutes.POST("/generate-questions", h.CreateSession)
		llmRoutes.POST("/sessions/:id/questions", h.SessionQuestions)
		llmRoutes.POST("/interview-chat", h.InterviewChat)
		llmRoutes.POST("/score-answer", h.ScoreAnswer)
		llmRoutes.POST("/session-feedback", h.SessionFeedback)
		llmRoutes.POST("/generate-questions-on-demand", h.GenerateQuestionsOnDemand)
	}

	return r
}

// health reports database and Redis reachability. Redis being down only
// degrades rate limiting, so it never fails the check.
func (app *application) health(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"status": "ok", "database": "ok", "redis": "ok"}
	code := http.StatusOK

	if err := app.DB.Ping(ctx); err != nil {
		status["status"], status["database"] = "degraded", "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := app.Redis.Ping(ctx).Err(); err != nil {
		status["redis"] = "unavailable"
	}
	c.JSON(code, status)
}
