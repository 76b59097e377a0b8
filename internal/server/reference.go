package server

import (
	"net/http"

	"github.com/fieldops/meterwatch/internal/schedule"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListFrequencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": schedule.Frequencies()})
}

func (s *Server) ListMarkTestedReasons(c *gin.Context) {
	cfg := s.reasons.Get()
	c.JSON(http.StatusOK, gin.H{"data": cfg.QuickReasons})
}
