package server

import (
	"net/http"
	"strings"

	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListMeterHistory(c *gin.Context) {
	meterID := strings.TrimSpace(c.Param("id"))
	resp, err := s.historySvc.ListByMeter(c.Request.Context(), meterID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type addHistoryRequest struct {
	EventDate string  `json:"event_date"`
	H2SPPM    *string `json:"h2s_ppm"`
	Notes     *string `json:"notes"`
}

func (s *Server) AddMeterHistory(c *gin.Context) {
	var req addHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.historySvc.Add(c.Request.Context(), historydomain.AddRequest{
		MeterID:   strings.TrimSpace(c.Param("id")),
		EventDate: strings.TrimSpace(req.EventDate),
		H2SPPM:    req.H2SPPM,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteHistoryEntry(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.historySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
