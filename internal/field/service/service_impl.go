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
	"github.com/fieldops/meterwatch/pkg/db"
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
	Repo        fielddomain.Repository
	BatteryRepo batterydomain.Repository
	MeterRepo   meterdomain.Repository
	HistoryRepo historydomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        fielddomain.Repository
	batteryRepo batterydomain.Repository
	meterRepo   meterdomain.Repository
	historyRepo historydomain.Repository
}

func New(p Params) fielddomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("field.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		batteryRepo: p.BatteryRepo,
		meterRepo:   p.MeterRepo,
		historyRepo: p.HistoryRepo,
	}
}

func (s *Service) Create(ctx context.Context, req fielddomain.CreateRequest) (*fielddomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fielddomain.ErrInvalidName
	}

	now := s.clock.Now()
	f := &fielddomain.Field{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, f); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, fielddomain.ErrDuplicateName
		}
		return nil, err
	}

	return s.toResponse(f), nil
}

func (s *Service) List(ctx context.Context) ([]fielddomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]fielddomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*fielddomain.Response, error) {
	fieldID, err := fielddomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, fielddomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, fieldID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fielddomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, req fielddomain.UpdateRequest) (*fielddomain.Response, error) {
	fieldID, err := fielddomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, fielddomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, fieldID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fielddomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fielddomain.ErrInvalidName
		}
		item.Name = name
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, fielddomain.ErrDuplicateName
		}
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	fieldID, err := fielddomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return fielddomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, fieldID)
	if err != nil {
		return err
	}
	if item == nil {
		return fielddomain.ErrNotFound
	}

	// Cascade is explicit: history first, then meters, batteries, the field.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.historyRepo.DeleteByField(ctx, tx, fieldID); err != nil {
			return err
		}
		if err := s.meterRepo.DeleteByField(ctx, tx, fieldID); err != nil {
			return err
		}
		if err := s.batteryRepo.DeleteByField(ctx, tx, fieldID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, fieldID)
	})
}

func (s *Service) toResponse(f *fielddomain.Field) *fielddomain.Response {
	return &fielddomain.Response{
		ID:        f.ID.String(),
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
