package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	httpmw "github.com/fahmidhamim/echobrief/internal/infrastructure/http/middleware"
	"github.com/fahmidhamim/echobrief/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authHandler    *Auth
	meetingHandler *Meeting
	aiHandler      *AI
	audioHandler   *Audio
	adminHandler   *Admin
	authMW         echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authHandler *Auth, meetingHandler *Meeting, aiHandler *AI, audioHandler *Audio, adminHandler *Admin, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		aiHandler:      aiHandler,
		audioHandler:   audioHandler,
		adminHandler:   adminHandler,
		authMW:         authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupAIRoutes(v1)
	rt.setupAudioRoutes(v1)
	rt.setupAdminRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/register", rt.authHandler.Register)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.GET("/me", rt.authHandler.Me, rt.authMW)
}

// setupMeetingRoutes configures meeting lifecycle routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", rt.authMW)

	meetingGroup.POST("", rt.meetingHandler.Create)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	meetingGroup.POST("/:id/join", rt.meetingHandler.Join)
	meetingGroup.POST("/:id/leave", rt.meetingHandler.Leave)
	meetingGroup.POST("/:id/end", rt.meetingHandler.End)
	meetingGroup.GET("/:id/participants", rt.meetingHandler.Participants)
	meetingGroup.POST("/:id/transcripts", rt.meetingHandler.AddTranscript)
	meetingGroup.GET("/:id/transcripts", rt.meetingHandler.Transcripts)
}

// setupAIRoutes configures summarization routes
func (rt *Router) setupAIRoutes(g *echo.Group) {
	aiGroup := g.Group("/ai", rt.authMW)

	aiGroup.POST("/summarize", rt.aiHandler.Summarize)
	aiGroup.GET("/summary/:meeting_id", rt.aiHandler.GetSummary)
}

// setupAudioRoutes configures audio upload routes
func (rt *Router) setupAudioRoutes(g *echo.Group) {
	audioGroup := g.Group("/audio", rt.authMW)

	audioGroup.POST("/upload", rt.audioHandler.Upload)
}

// setupAdminRoutes configures admin-only routes
func (rt *Router) setupAdminRoutes(g *echo.Group) {
	adminGroup := g.Group("/admin", rt.authMW, httpmw.RequireAdmin())

	adminGroup.GET("/metrics", rt.adminHandler.Metrics)
	adminGroup.GET("/users", rt.adminHandler.Users)
	adminGroup.GET("/meetings", rt.adminHandler.Meetings)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
