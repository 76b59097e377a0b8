package server

import (
	"fmt"
	"net/http"
	"strings"

	importerdomain "github.com/fieldops/meterwatch/internal/importer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ImportExcel(c *gin.Context) {
	target := strings.TrimSpace(c.PostForm("target_station"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, importerdomain.ErrEmptyFile)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, importerdomain.ErrUnreadableFile)
		return
	}
	defer f.Close()

	resp, err := s.importerSvc.ImportExcel(c.Request.Context(), importerdomain.ImportRequest{
		TargetStation: target,
		File:          f,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportCSV(c *gin.Context) {
	station := strings.TrimSpace(c.Param("station"))
	station = strings.TrimSuffix(station, ".csv")

	resp, err := s.importerSvc.ExportCSV(c.Request.Context(), station)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	c.Data(http.StatusOK, "text/csv", resp.Content)
}
