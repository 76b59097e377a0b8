package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"github.com/fieldops/meterwatch/internal/clock"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
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
	Repo        batterydomain.Repository
	FieldRepo   fielddomain.Repository
	MeterRepo   meterdomain.Repository
	HistoryRepo historydomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        batterydomain.Repository
	fieldRepo   fielddomain.Repository
	meterRepo   meterdomain.Repository
	historyRepo historydomain.Repository
}

func New(p Params) batterydomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("battery.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		fieldRepo:   p.FieldRepo,
		meterRepo:   p.MeterRepo,
		historyRepo: p.HistoryRepo,
	}
}

func (s *Service) Create(ctx context.Context, req batterydomain.CreateRequest) (*batterydomain.Response, error) {
	fieldID, err := batterydomain.ParseID(strings.TrimSpace(req.FieldID))
	if err != nil || fieldID == 0 {
		return nil, batterydomain.ErrInvalidField
	}

	parent, err := s.fieldRepo.FindByID(ctx, s.db, fieldID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, batterydomain.ErrInvalidField
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, batterydomain.ErrInvalidName
	}

	now := s.clock.Now()
	b := &batterydomain.Battery{
		ID:        s.genID.Generate(),
		FieldID:   fieldID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, b); err != nil {
		return nil, err
	}

	return s.toResponse(b), nil
}

func (s *Service) ListByField(ctx context.Context, fieldID string) ([]batterydomain.Response, error) {
	id, err := batterydomain.ParseID(strings.TrimSpace(fieldID))
	if err != nil {
		return nil, batterydomain.ErrInvalidField
	}

	items, err := s.repo.ListByField(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := make([]batterydomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*batterydomain.Response, error) {
	batteryID, err := batterydomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, batterydomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, batteryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, batterydomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, req batterydomain.UpdateRequest) (*batterydomain.Response, error) {
	batteryID, err := batterydomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, batterydomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, batteryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, batterydomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, batterydomain.ErrInvalidName
		}
		item.Name = name
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	batteryID, err := batterydomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return batterydomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, batteryID)
	if err != nil {
		return err
	}
	if item == nil {
		return batterydomain.ErrNotFound
	}

	// Cascade is explicit: history first, then meters, then the battery.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.historyRepo.DeleteByBattery(ctx, tx, batteryID); err != nil {
			return err
		}
		if err := s.meterRepo.DeleteByBattery(ctx, tx, batteryID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, batteryID)
	})
}

func (s *Service) toResponse(b *batterydomain.Battery) *batterydomain.Response {
	return &batterydomain.Response{
		ID:        b.ID.String(),
		FieldID:   b.FieldID.String(),
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
