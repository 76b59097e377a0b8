package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/clock"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/fieldops/meterwatch/internal/schedule"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      historydomain.Repository
	MeterRepo meterdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      historydomain.Repository
	meterRepo meterdomain.Repository
}

func New(p Params) historydomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("history.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		meterRepo: p.MeterRepo,
	}
}

func (s *Service) Add(ctx context.Context, req historydomain.AddRequest) (*historydomain.Response, error) {
	meterID, err := historydomain.ParseID(strings.TrimSpace(req.MeterID))
	if err != nil || meterID == 0 {
		return nil, historydomain.ErrInvalidMeter
	}

	meter, err := s.meterRepo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, historydomain.ErrInvalidMeter
	}

	now := s.clock.Now()
	eventDate := schedule.ParseDate(req.EventDate)
	if eventDate == nil {
		today := schedule.Day(now)
		eventDate = &today
	}

	entry := &historydomain.Entry{
		ID:         s.genID.Generate(),
		MeterID:    meterID,
		EventDate:  *eventDate,
		H2SPPM:     trimPtr(req.H2SPPM),
		Notes:      trimPtr(req.Notes),
		CreatedVia: historydomain.ViaManual,
		CreatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		return nil, err
	}

	return toResponse(entry), nil
}

func (s *Service) ListByMeter(ctx context.Context, meterID string) ([]historydomain.Response, error) {
	id, err := historydomain.ParseID(strings.TrimSpace(meterID))
	if err != nil {
		return nil, historydomain.ErrInvalidMeter
	}

	items, err := s.repo.ListByMeter(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := make([]historydomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	entryID, err := historydomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return historydomain.ErrInvalidID
	}

	entry, err := s.repo.FindByID(ctx, s.db, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return historydomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, entryID)
}

func toResponse(e *historydomain.Entry) *historydomain.Response {
	return &historydomain.Response{
		ID:         e.ID.String(),
		MeterID:    e.MeterID.String(),
		EventDate:  e.EventDate.Format("2006-01-02"),
		H2SPPM:     e.H2SPPM,
		Notes:      e.Notes,
		CreatedVia: e.CreatedVia,
		CreatedAt:  e.CreatedAt,
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
