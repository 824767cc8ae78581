package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claritynotes/clarity-client/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingController *MeetingController
	sessionController *SessionController
	chatController    *ChatController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingController *MeetingController, sessionController *SessionController, chatController *ChatController) *Router {
	return &Router{
		cfg:               cfg,
		meetingController: meetingController,
		sessionController: sessionController,
		chatController:    chatController,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupRecordingRoutes(v1)
	rt.setupChatRoutes(v1)

	v1.POST("/feedback", rt.meetingController.Feedback)
}

// setupMeetingRoutes configures meeting upload routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("/process", rt.meetingController.Process)
}

// setupRecordingRoutes configures real-time recording session routes
func (rt *Router) setupRecordingRoutes(g *echo.Group) {
	recordingGroup := g.Group("/recording")

	recordingGroup.POST("/start", rt.sessionController.Start)
	recordingGroup.POST("/stop", rt.sessionController.Stop)
	recordingGroup.GET("/status", rt.sessionController.Status)
	recordingGroup.GET("/results", rt.meetingController.Results)
}

// setupChatRoutes configures chat relay routes
func (rt *Router) setupChatRoutes(g *echo.Group) {
	chatGroup := g.Group("/chat")

	chatGroup.GET("/meetings", rt.chatController.Meetings)
	chatGroup.GET("/messages", rt.chatController.Messages)
	chatGroup.POST("/messages", rt.chatController.Send)
	chatGroup.POST("/select", rt.chatController.Select)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
