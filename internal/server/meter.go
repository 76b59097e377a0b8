package server

import (
	"net/http"
	"strings"

	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/gin-gonic/gin"
)

type createMeterRequest struct {
	BatteryID        string  `json:"battery_id"`
	Name             string  `json:"name"`
	FlowCalID        *string `json:"flow_cal_id"`
	MeterType        *string `json:"meter_type"`
	MeterAddress     *string `json:"meter_address"`
	SerialNumber     *string `json:"serial_number"`
	TubeSerialNumber *string `json:"tube_serial_number"`
	TubeSize         *string `json:"tube_size"`
	OrificePlateSize *string `json:"orifice_plate_size"`
	H2SPPM           *string `json:"h2s_ppm"`
	Notes            *string `json:"notes"`
	Frequency        string  `json:"frequency"`
	LastTestDate     string  `json:"last_test_date"`
}

func (s *Server) CreateMeter(c *gin.Context) {
	var req createMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meterSvc.Create(c.Request.Context(), meterdomain.CreateRequest{
		BatteryID:        strings.TrimSpace(req.BatteryID),
		Name:             strings.TrimSpace(req.Name),
		FlowCalID:        req.FlowCalID,
		MeterType:        req.MeterType,
		MeterAddress:     req.MeterAddress,
		SerialNumber:     req.SerialNumber,
		TubeSerialNumber: req.TubeSerialNumber,
		TubeSize:         req.TubeSize,
		OrificePlateSize: req.OrificePlateSize,
		H2SPPM:           req.H2SPPM,
		Notes:            req.Notes,
		Frequency:        strings.TrimSpace(req.Frequency),
		LastTestDate:     strings.TrimSpace(req.LastTestDate),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMeters(c *gin.Context) {
	batteryID := strings.TrimSpace(c.Query("battery_id"))
	if batteryID == "" {
		AbortWithError(c, newValidationError("battery_id", "invalid_battery", "invalid battery_id"))
		return
	}

	resp, err := s.meterSvc.ListByBattery(c.Request.Context(), batteryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMeterByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.meterSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMeterRequest struct {
	Name             *string `json:"name"`
	FlowCalID        *string `json:"flow_cal_id"`
	MeterType        *string `json:"meter_type"`
	MeterAddress     *string `json:"meter_address"`
	SerialNumber     *string `json:"serial_number"`
	TubeSerialNumber *string `json:"tube_serial_number"`
	TubeSize         *string `json:"tube_size"`
	OrificePlateSize *string `json:"orifice_plate_size"`
	H2SPPM           *string `json:"h2s_ppm"`
	Notes            *string `json:"notes"`
	Frequency        *string `json:"frequency"`
	LastTestDate     *string `json:"last_test_date"`
	LogHistory       bool    `json:"log_history"`
	HistoryNote      *string `json:"history_note"`
}

func (s *Server) UpdateMeter(c *gin.Context) {
	var req updateMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meterSvc.Update(c.Request.Context(), meterdomain.UpdateRequest{
		ID:               strings.TrimSpace(c.Param("id")),
		Name:             req.Name,
		FlowCalID:        req.FlowCalID,
		MeterType:        req.MeterType,
		MeterAddress:     req.MeterAddress,
		SerialNumber:     req.SerialNumber,
		TubeSerialNumber: req.TubeSerialNumber,
		TubeSize:         req.TubeSize,
		OrificePlateSize: req.OrificePlateSize,
		H2SPPM:           req.H2SPPM,
		Notes:            req.Notes,
		Frequency:        req.Frequency,
		LastTestDate:     req.LastTestDate,
		LogHistory:       req.LogHistory,
		HistoryNote:      req.HistoryNote,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMeter(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.meterSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type markTestedRequest struct {
	H2SPPM string `json:"h2s_ppm"`
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

func (s *Server) MarkMeterTested(c *gin.Context) {
	var req markTestedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meterSvc.MarkTested(c.Request.Context(), meterdomain.MarkTestedRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		H2SPPM: req.H2SPPM,
		Reason: req.Reason,
		Note:   req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
