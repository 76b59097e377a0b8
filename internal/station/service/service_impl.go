package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/clock"
	"github.com/fieldops/meterwatch/internal/schedule"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  stationdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  stationdomain.Repository
}

func New(p Params) stationdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("station.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req stationdomain.CreateRequest) (*stationdomain.Response, error) {
	station := strings.TrimSpace(req.Station)
	if !stationdomain.IsAllowedStation(station) {
		return nil, stationdomain.ErrInvalidStation
	}

	name := strings.TrimSpace(req.MeterName)
	if name == "" {
		name = "Unnamed"
	}

	now := s.clock.Now()
	m := &stationdomain.Meter{
		ID:               s.genID.Generate(),
		Station:          station,
		MeterName:        name,
		FlowCalID:        trimPtr(req.FlowCalID),
		TestDate:         schedule.ParseDate(req.TestDate),
		H2SPPM:           trimPtr(req.H2SPPM),
		MeterType:        trimPtr(req.MeterType),
		MeterAddress:     trimPtr(req.MeterAddress),
		SerialNumber:     trimPtr(req.SerialNumber),
		TubeSerialNumber: trimPtr(req.TubeSerialNumber),
		TubeSize:         trimPtr(req.TubeSize),
		OrificePlateSize: trimPtr(req.OrificePlateSize),
		Notes:            trimPtr(req.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		return nil, err
	}

	return s.toResponse(m), nil
}

func (s *Service) ListByStation(ctx context.Context, station string) ([]stationdomain.Response, error) {
	station = strings.TrimSpace(station)
	if !stationdomain.IsAllowedStation(station) {
		return nil, stationdomain.ErrInvalidStation
	}

	items, err := s.repo.ListByStation(ctx, s.db, station)
	if err != nil {
		return nil, err
	}

	resp := make([]stationdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req stationdomain.UpdateRequest) (*stationdomain.Response, error) {
	meterID, err := stationdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, stationdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, stationdomain.ErrNotFound
	}

	if station := strings.TrimSpace(req.Station); station != "" {
		if !stationdomain.IsAllowedStation(station) {
			return nil, stationdomain.ErrInvalidStation
		}
		item.Station = station
	}

	// The edit form resubmits every column, so a submitted value always
	// wins. A blank meter name is the one exception, it keeps the old name.
	if name := strings.TrimSpace(req.MeterName); name != "" {
		item.MeterName = name
	}
	item.FlowCalID = trimPtr(req.FlowCalID)
	item.TestDate = schedule.ParseDate(req.TestDate)
	item.H2SPPM = trimPtr(req.H2SPPM)
	item.MeterType = trimPtr(req.MeterType)
	item.MeterAddress = trimPtr(req.MeterAddress)
	item.SerialNumber = trimPtr(req.SerialNumber)
	item.TubeSerialNumber = trimPtr(req.TubeSerialNumber)
	item.TubeSize = trimPtr(req.TubeSize)
	item.OrificePlateSize = trimPtr(req.OrificePlateSize)
	item.Notes = trimPtr(req.Notes)
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	meterID, err := stationdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return stationdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, meterID)
	if err != nil {
		return err
	}
	if item == nil {
		return stationdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, meterID)
}

func (s *Service) toResponse(m *stationdomain.Meter) *stationdomain.Response {
	return &stationdomain.Response{
		ID:               m.ID.String(),
		Station:          m.Station,
		MeterName:        m.MeterName,
		FlowCalID:        m.FlowCalID,
		TestDate:         schedule.FormatDate(m.TestDate),
		H2SPPM:           m.H2SPPM,
		MeterType:        m.MeterType,
		MeterAddress:     m.MeterAddress,
		SerialNumber:     m.SerialNumber,
		TubeSerialNumber: m.TubeSerialNumber,
		TubeSize:         m.TubeSize,
		OrificePlateSize: m.OrificePlateSize,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
