package server

import (
	"net/http"
	"strings"

	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": stationdomain.AllowedStations()})
}

func (s *Server) ListStationMeters(c *gin.Context) {
	station := strings.TrimSpace(c.Param("station"))
	resp, err := s.stationSvc.ListByStation(c.Request.Context(), station)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateStationMeter(c *gin.Context) {
	var req stationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStationMeter(c *gin.Context) {
	var req stationdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.stationSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStationMeter(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.stationSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
