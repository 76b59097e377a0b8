package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"github.com/fieldops/meterwatch/internal/clock"
	"github.com/fieldops/meterwatch/internal/config"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/fieldops/meterwatch/internal/metrics"
	"github.com/fieldops/meterwatch/internal/schedule"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        meterdomain.Repository
	BatteryRepo batterydomain.Repository
	HistoryRepo historydomain.Repository
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        meterdomain.Repository
	batteryRepo batterydomain.Repository
	historyRepo historydomain.Repository
	metrics     *metrics.Metrics
}

func New(p Params) meterdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("meter.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		batteryRepo: p.BatteryRepo,
		historyRepo: p.HistoryRepo,
		metrics:     p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req meterdomain.CreateRequest) (*meterdomain.Response, error) {
	batteryID, err := meterdomain.ParseID(strings.TrimSpace(req.BatteryID))
	if err != nil || batteryID == 0 {
		return nil, meterdomain.ErrInvalidBattery
	}

	parent, err := s.batteryRepo.FindByID(ctx, s.db, batteryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, meterdomain.ErrInvalidBattery
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, meterdomain.ErrInvalidName
	}

	now := s.clock.Now()
	lastTest := schedule.ParseDate(req.LastTestDate)
	frequency := strings.TrimSpace(req.Frequency)

	m := &meterdomain.Meter{
		ID:               s.genID.Generate(),
		BatteryID:        batteryID,
		Name:             name,
		FlowCalID:        trimPtr(req.FlowCalID),
		MeterType:        trimPtr(req.MeterType),
		MeterAddress:     trimPtr(req.MeterAddress),
		SerialNumber:     trimPtr(req.SerialNumber),
		TubeSerialNumber: trimPtr(req.TubeSerialNumber),
		TubeSize:         trimPtr(req.TubeSize),
		OrificePlateSize: trimPtr(req.OrificePlateSize),
		H2SPPM:           trimPtr(req.H2SPPM),
		Notes:            trimPtr(req.Notes),
		Frequency:        frequency,
		LastTestDate:     lastTest,
		NextInspection:   schedule.NextInspection(lastTest, frequency),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		return nil, err
	}

	return s.toResponse(m), nil
}

func (s *Service) ListByBattery(ctx context.Context, batteryID string) ([]meterdomain.Response, error) {
	id, err := meterdomain.ParseID(strings.TrimSpace(batteryID))
	if err != nil {
		return nil, meterdomain.ErrInvalidBattery
	}

	items, err := s.repo.ListByBattery(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := make([]meterdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*meterdomain.Response, error) {
	meterID, err := meterdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, meterdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, meterdomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, req meterdomain.UpdateRequest) (*meterdomain.Response, error) {
	meterID, err := meterdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, meterdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, meterdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, meterdomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.FlowCalID != nil {
		item.FlowCalID = trimPtr(req.FlowCalID)
	}
	if req.MeterType != nil {
		item.MeterType = trimPtr(req.MeterType)
	}
	if req.MeterAddress != nil {
		item.MeterAddress = trimPtr(req.MeterAddress)
	}
	if req.SerialNumber != nil {
		item.SerialNumber = trimPtr(req.SerialNumber)
	}
	if req.TubeSerialNumber != nil {
		item.TubeSerialNumber = trimPtr(req.TubeSerialNumber)
	}
	if req.TubeSize != nil {
		item.TubeSize = trimPtr(req.TubeSize)
	}
	if req.OrificePlateSize != nil {
		item.OrificePlateSize = trimPtr(req.OrificePlateSize)
	}
	if req.H2SPPM != nil {
		item.H2SPPM = trimPtr(req.H2SPPM)
	}
	if req.Notes != nil {
		item.Notes = trimPtr(req.Notes)
	}
	if req.Frequency != nil {
		item.Frequency = strings.TrimSpace(*req.Frequency)
	}
	if req.LastTestDate != nil {
		item.LastTestDate = schedule.ParseDate(*req.LastTestDate)
	}

	// Schedule fields are re-derived on every edit, whether or not their
	// inputs changed this time.
	item.NextInspection = schedule.NextInspection(item.LastTestDate, item.Frequency)

	now := s.clock.Now()
	item.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}
		if !req.LogHistory {
			return nil
		}
		today := schedule.Day(now)
		entry := &historydomain.Entry{
			ID:         s.genID.Generate(),
			MeterID:    item.ID,
			EventDate:  today,
			H2SPPM:     item.H2SPPM,
			Notes:      editHistoryNote(req.HistoryNote),
			CreatedVia: historydomain.ViaEdit,
			CreatedAt:  now,
		}
		return s.historyRepo.Insert(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	meterID, err := meterdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return meterdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return err
	}
	if item == nil {
		return meterdomain.ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.historyRepo.DeleteByMeter(ctx, tx, meterID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, meterID)
	})
}

func (s *Service) MarkTested(ctx context.Context, req meterdomain.MarkTestedRequest) (*meterdomain.Response, error) {
	meterID, err := meterdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, meterdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, meterdomain.ErrNotFound
	}

	now := s.clock.Now()
	today := schedule.Day(now)

	newH2S := strings.TrimSpace(req.H2SPPM)
	sampled := newH2S != ""
	if sampled {
		item.H2SPPM = &newH2S
	}

	item.LastTestDate = &today
	item.NextInspection = schedule.NextInspection(&today, item.Frequency)
	item.UpdatedAt = now

	var entryH2S *string
	if sampled {
		entryH2S = &newH2S
	}
	entry := &historydomain.Entry{
		ID:         s.genID.Generate(),
		MeterID:    item.ID,
		EventDate:  today,
		H2SPPM:     entryH2S,
		Notes:      markTestedNote(req.Reason, req.Note, sampled),
		CreatedVia: historydomain.ViaMarkTested,
		CreatedAt:  now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}
		return s.historyRepo.Insert(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.MarkTestedTotal.Inc()
	}
	s.log.Info("meter marked tested",
		zap.String("meter_id", item.ID.String()),
		zap.Bool("h2s_sampled", sampled),
	)

	return s.toResponse(item), nil
}

// markTestedNote composes the ledger note: the quick reason (unless it is the
// placeholder), then the free-text note after an em-dash. With neither, the
// fallback message notes whether an H2S sample came in with this test.
func markTestedNote(reason, note string, sampled bool) *string {
	parts := make([]string, 0, 2)
	if r := strings.TrimSpace(reason); r != "" && r != config.ReasonPlaceholder {
		parts = append(parts, r)
	}
	if n := strings.TrimSpace(note); n != "" {
		parts = append(parts, n)
	}
	var msg string
	if len(parts) > 0 {
		msg = strings.Join(parts, " — ")
	} else {
		msg = "Marked tested"
		if !sampled {
			msg += " (no H2S sample)"
		}
	}
	return &msg
}

func editHistoryNote(note *string) *string {
	if note != nil {
		if n := strings.TrimSpace(*note); n != "" {
			return &n
		}
	}
	msg := "Meter details updated"
	return &msg
}

func (s *Service) toResponse(m *meterdomain.Meter) *meterdomain.Response {
	return &meterdomain.Response{
		ID:               m.ID.String(),
		BatteryID:        m.BatteryID.String(),
		Name:             m.Name,
		FlowCalID:        m.FlowCalID,
		MeterType:        m.MeterType,
		MeterAddress:     m.MeterAddress,
		SerialNumber:     m.SerialNumber,
		TubeSerialNumber: m.TubeSerialNumber,
		TubeSize:         m.TubeSize,
		OrificePlateSize: m.OrificePlateSize,
		H2SPPM:           m.H2SPPM,
		Notes:            m.Notes,
		Frequency:        m.Frequency,
		LastTestDate:     schedule.FormatDate(m.LastTestDate),
		NextInspection:   schedule.FormatDate(m.NextInspection),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
