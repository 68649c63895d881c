package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
)

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("Health check failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.CodeUnavailable, "store unreachable")
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}
