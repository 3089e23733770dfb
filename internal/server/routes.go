package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/v1")

	// Reservations and lifecycle
	v1.POST("/sessions", s.handleCreateSession)
	v1.GET("/sessions", s.handleListSessions)
	v1.GET("/sessions/search", s.handleSearchSessions)
	v1.GET("/sessions/stats", s.handleStats)
	v1.GET("/sessions/:id", s.handleGetSession)
	v1.PUT("/sessions/:id", s.handleModifySession)
	v1.DELETE("/sessions/:id", s.handleDeleteSession)
	v1.PATCH("/sessions/:id/status", s.handleUpdateStatus)
	v1.PATCH("/sessions/:id/counselor", s.handleAssignCounselor)

	// Counselee history
	v1.GET("/sessions/:id/previous", s.handlePreviousSessions)
	v1.GET("/sessions/:id/previous/details", s.handlePreviousSessionDetails)

	// Calendar read model
	v1.GET("/session-dates", s.handleSessionDates)
}
