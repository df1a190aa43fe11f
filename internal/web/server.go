// Package web is the thin HTTP surface over the agent: route registration,
// request parsing, and the CORS policy. No decision logic lives here.
package web

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dsacoach/internal/agent"
	"dsacoach/internal/sessionlog"
)

// Orchestrator is what the handlers need from the agent. An interface so
// handler tests can mock it.
type Orchestrator interface {
	HandleMessage(ctx context.Context, input, sessionID, model, level string) agent.Response
	Logs(sessionID string) []sessionlog.Entry
	ClearSession(sessionID string)
}

// Server hosts the HTTP API.
type Server struct {
	agent  Orchestrator
	router *gin.Engine
}

// NewServer builds the router with CORS restricted to allowedOrigins.
func NewServer(a Orchestrator, allowedOrigins []string) *Server {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	s := &Server{agent: a, router: router}

	router.GET("/", s.handleHome)
	router.GET("/healthy", s.handleHealthy)

	api := router.Group("/api")
	{
		api.POST("/message", s.handleMessage)
		api.GET("/memory", s.handleMemory)
		api.POST("/clear", s.handleClear)
	}
	return s
}

// Run starts the server on addr, blocking until it exits.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
