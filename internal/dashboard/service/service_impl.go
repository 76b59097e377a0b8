package service

import (
	"context"

	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"github.com/fieldops/meterwatch/internal/clock"
	dashboarddomain "github.com/fieldops/meterwatch/internal/dashboard/domain"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/fieldops/meterwatch/internal/schedule"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	FieldRepo   fielddomain.Repository
	BatteryRepo batterydomain.Repository
	MeterRepo   meterdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	fieldRepo   fielddomain.Repository
	batteryRepo batterydomain.Repository
	meterRepo   meterdomain.Repository
}

func New(p Params) dashboarddomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		clock:       p.Clock,
		fieldRepo:   p.FieldRepo,
		batteryRepo: p.BatteryRepo,
		meterRepo:   p.MeterRepo,
	}
}

func (s *Service) Home(ctx context.Context) (*dashboarddomain.HomeView, error) {
	due, err := s.Due(ctx)
	if err != nil {
		return nil, err
	}

	tree, err := s.fieldsTree(ctx)
	if err != nil {
		return nil, err
	}

	return &dashboarddomain.HomeView{
		Fields:  tree,
		DueView: *due,
	}, nil
}

func (s *Service) Due(ctx context.Context) (*dashboarddomain.DueView, error) {
	entries, err := s.meterRepo.ListScheduled(ctx, s.db)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := schedule.WeekBounds(s.clock.Now())
	overdue, dueWeek := schedule.Classify(entries, weekStart, weekEnd)

	return &dashboarddomain.DueView{
		Overdue:   overdue,
		DueWeek:   dueWeek,
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
	}, nil
}

func (s *Service) fieldsTree(ctx context.Context) ([]dashboarddomain.FieldNode, error) {
	fields, err := s.fieldRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	batteries, err := s.batteryRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	meters, err := s.meterRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	metersByBattery := make(map[int64][]dashboarddomain.MeterNode)
	for i := range meters {
		m := &meters[i]
		metersByBattery[int64(m.BatteryID)] = append(metersByBattery[int64(m.BatteryID)], dashboarddomain.MeterNode{
			ID:             m.ID.String(),
			Name:           m.Name,
			Frequency:      m.Frequency,
			H2SPPM:         m.H2SPPM,
			LastTestDate:   schedule.FormatDate(m.LastTestDate),
			NextInspection: schedule.FormatDate(m.NextInspection),
		})
	}

	batteriesByField := make(map[int64][]dashboarddomain.BatteryNode)
	for i := range batteries {
		b := &batteries[i]
		node := dashboarddomain.BatteryNode{
			ID:     b.ID.String(),
			Name:   b.Name,
			Meters: metersByBattery[int64(b.ID)],
		}
		if node.Meters == nil {
			node.Meters = []dashboarddomain.MeterNode{}
		}
		batteriesByField[int64(b.FieldID)] = append(batteriesByField[int64(b.FieldID)], node)
	}

	tree := make([]dashboarddomain.FieldNode, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		node := dashboarddomain.FieldNode{
			ID:        f.ID.String(),
			Name:      f.Name,
			Batteries: batteriesByField[int64(f.ID)],
		}
		if node.Batteries == nil {
			node.Batteries = []dashboarddomain.BatteryNode{}
		}
		tree = append(tree, node)
	}
	return tree, nil
}
