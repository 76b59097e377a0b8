package server

import (
	"net/http"
	"strings"

	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"github.com/gin-gonic/gin"
)

type createBatteryRequest struct {
	FieldID string `json:"field_id"`
	Name    string `json:"name"`
}

func (s *Server) CreateBattery(c *gin.Context) {
	var req createBatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.batterySvc.Create(c.Request.Context(), batterydomain.CreateRequest{
		FieldID: strings.TrimSpace(req.FieldID),
		Name:    strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBatteries(c *gin.Context) {
	fieldID := strings.TrimSpace(c.Query("field_id"))
	if fieldID == "" {
		AbortWithError(c, newValidationError("field_id", "invalid_field", "invalid field_id"))
		return
	}

	resp, err := s.batterySvc.ListByField(c.Request.Context(), fieldID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBatteryByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.batterySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateBatteryRequest struct {
	Name *string `json:"name"`
}

func (s *Server) UpdateBattery(c *gin.Context) {
	var req updateBatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.batterySvc.Update(c.Request.Context(), batterydomain.UpdateRequest{
		ID:   strings.TrimSpace(c.Param("id")),
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBattery(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.batterySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
