package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dsacoach/internal/sessionlog"
)

// messageRequest is the /api/message body. Only Message is required.
type messageRequest struct {
	Message   string `json:"message"`
	Model     string `json:"model"`
	SessionID string `json:"session_id"`
	Level     string `json:"level"`
}

func (s *Server) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "DSA study coach backend is running.")
}

func (s *Server) handleHealthy(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reply": "⚠️ Invalid request body."})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"reply": "⚠️ Message is missing."})
		return
	}
	resp := s.agent.HandleMessage(c.Request.Context(), req.Message, req.SessionID, req.Model, req.Level)
	c.JSON(http.StatusOK, gin.H{"reply": resp})
}

func (s *Server) handleMemory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusOK, []sessionlog.Entry{})
		return
	}
	entries := s.agent.Logs(sessionID)
	if entries == nil {
		entries = []sessionlog.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleClear(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing session_id"})
		return
	}
	s.agent.ClearSession(sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
