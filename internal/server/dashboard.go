package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetHome(c *gin.Context) {
	resp, err := s.dashboardSvc.Home(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDue(c *gin.Context) {
	resp, err := s.dashboardSvc.Due(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
