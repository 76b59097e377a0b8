package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/clock"
	importerdomain "github.com/fieldops/meterwatch/internal/importer/domain"
	"github.com/fieldops/meterwatch/internal/metrics"
	"github.com/fieldops/meterwatch/internal/schedule"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// headerMap folds the header variations seen across field spreadsheets onto
// canonical column names.
var headerMap = map[string]string{
	"station": "station",

	"meter name": "meter_name",
	"meter_name": "meter_name",

	"flow cal id": "flow_cal_id",
	"flow_cal_id": "flow_cal_id",
	"flowcal id":  "flow_cal_id",

	"test date":  "test_date",
	"test_date":  "test_date",
	"test dates": "test_date",

	"h2s":     "h2s_ppm",
	"h2s ppm": "h2s_ppm",
	"h2s_ppm": "h2s_ppm",

	"meter type": "meter_type",
	"meter_type": "meter_type",

	"meter address": "meter_address",
	"meter_address": "meter_address",
	"address":       "meter_address",

	"serial number": "serial_number",
	"device s/n":    "serial_number",
	"serial_number": "serial_number",

	"tube serial number": "tube_serial_number",
	"tube s/n":           "tube_serial_number",
	"tube_serial_number": "tube_serial_number",

	"tube size": "tube_size",
	"tube_size": "tube_size",

	"orifice plate size": "orifice_plate_size",
	"orifice/plate size": "orifice_plate_size",
	"orifice_plate_size": "orifice_plate_size",

	"notes":    "notes",
	"comments": "notes",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(h)
	return strings.Join(strings.Fields(h), " ")
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    stationdomain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    stationdomain.Repository
	metrics *metrics.Metrics
}

func New(p Params) importerdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("importer.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) ImportExcel(ctx context.Context, req importerdomain.ImportRequest) (*importerdomain.ImportResult, error) {
	target := strings.TrimSpace(req.TargetStation)
	if !stationdomain.IsAllowedStation(target) {
		return nil, importerdomain.ErrInvalidStation
	}
	if req.File == nil {
		return nil, importerdomain.ErrEmptyFile
	}

	wb, err := excelize.OpenReader(req.File)
	if err != nil {
		s.metrics.ImportFilesTotal.WithLabelValues("failed").Inc()
		return nil, importerdomain.ErrUnreadableFile
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		s.metrics.ImportFilesTotal.WithLabelValues("failed").Inc()
		return nil, importerdomain.ErrUnreadableFile
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		s.metrics.ImportFilesTotal.WithLabelValues("failed").Inc()
		return nil, importerdomain.ErrUnreadableFile
	}
	if len(rows) == 0 {
		s.metrics.ImportFilesTotal.WithLabelValues("failed").Inc()
		return nil, importerdomain.ErrEmptyFile
	}

	// Column index -> canonical name, taken from the header row.
	columns := make(map[int]string)
	for i, h := range rows[0] {
		if mapped, ok := headerMap[normalizeHeader(h)]; ok {
			columns[i] = mapped
		}
	}

	now := s.clock.Now()
	var pending []*stationdomain.Meter
	skipped := 0
	for _, row := range rows[1:] {
		m := &stationdomain.Meter{
			ID:        s.genID.Generate(),
			Station:   target,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for i, canonical := range columns {
			var raw string
			if i < len(row) {
				raw = strings.TrimSpace(row[i])
			}
			applyCell(m, canonical, raw, target)
		}
		// Rows without a meter name are header junk or padding.
		if m.MeterName == "" {
			skipped++
			continue
		}
		pending = append(pending, m)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range pending {
			if err := s.repo.Insert(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.ImportFilesTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	s.metrics.ImportFilesTotal.WithLabelValues("ok").Inc()
	s.metrics.ImportRowsTotal.Add(float64(len(pending)))
	s.log.Info("imported spreadsheet",
		zap.String("station", target),
		zap.Int("inserted", len(pending)),
		zap.Int("skipped", skipped),
	)

	return &importerdomain.ImportResult{Inserted: len(pending), Skipped: skipped}, nil
}

func applyCell(m *stationdomain.Meter, canonical, raw, target string) {
	switch canonical {
	case "station":
		if stationdomain.IsAllowedStation(raw) {
			m.Station = raw
		} else {
			m.Station = target
		}
	case "meter_name":
		m.MeterName = raw
	case "flow_cal_id":
		m.FlowCalID = optional(raw)
	case "test_date":
		m.TestDate = parseCellDate(raw)
	case "h2s_ppm":
		m.H2SPPM = optional(raw)
	case "meter_type":
		m.MeterType = optional(raw)
	case "meter_address":
		m.MeterAddress = optional(raw)
	case "serial_number":
		m.SerialNumber = optional(raw)
	case "tube_serial_number":
		m.TubeSerialNumber = optional(raw)
	case "tube_size":
		m.TubeSize = optional(raw)
	case "orifice_plate_size":
		m.OrificePlateSize = optional(raw)
	case "notes":
		m.Notes = optional(raw)
	}
}

// parseCellDate accepts the usual text layouts plus a bare Excel serial
// number, which is what an unformatted date cell reads back as.
func parseCellDate(raw string) *time.Time {
	if d := schedule.ParseDate(raw); d != nil {
		return d
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func optional(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// exportHeader is the fixed column order of the CSV download.
var exportHeader = []string{
	"Station", "Meter Name", "Flow Cal ID", "Test Date", "H2S PPM",
	"Meter Type", "Meter Address", "Serial Number", "Tube Serial Number",
	"Tube Size", "Orifice Plate Size", "Notes",
}

func (s *Service) ExportCSV(ctx context.Context, station string) (*importerdomain.ExportResult, error) {
	station = strings.TrimSpace(station)
	if !stationdomain.IsAllowedStation(station) {
		return nil, importerdomain.ErrInvalidStation
	}

	items, err := s.repo.ListByStation(ctx, s.db, station)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range items {
		m := &items[i]
		record := []string{
			m.Station,
			m.MeterName,
			deref(m.FlowCalID),
			isoDate(m.TestDate),
			deref(m.H2SPPM),
			deref(m.MeterType),
			deref(m.MeterAddress),
			deref(m.SerialNumber),
			deref(m.TubeSerialNumber),
			deref(m.TubeSize),
			deref(m.OrificePlateSize),
			deref(m.Notes),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.metrics.ExportFilesTotal.Inc()

	return &importerdomain.ExportResult{
		Filename: fmt.Sprintf("%s_meters.csv", station),
		Content:  buf.Bytes(),
	}, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
