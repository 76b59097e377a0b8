package server

import (
	"net/http"
	"strings"

	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	"github.com/gin-gonic/gin"
)

type createFieldRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateField(c *gin.Context) {
	var req createFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.fieldSvc.Create(c.Request.Context(), fielddomain.CreateRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFields(c *gin.Context) {
	resp, err := s.fieldSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetFieldByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.fieldSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateFieldRequest struct {
	Name *string `json:"name"`
}

func (s *Server) UpdateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.fieldSvc.Update(c.Request.Context(), fielddomain.UpdateRequest{
		ID:   strings.TrimSpace(c.Param("id")),
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteField(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.fieldSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
