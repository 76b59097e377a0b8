package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/fieldops/meterwatch/internal/schedule"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"gorm.io/gorm"
)

const (
	demoFieldName   = "Eagleville"
	demoBatteryName = "Battery 1"
)

// EnsureDemoData seeds a small starter dataset so a fresh install has a
// field, a battery and a couple of scheduled meters to look at. It is a
// no-op when the field already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		field, created, err := ensureDemoFieldTx(ctx, tx, node)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		battery, err := insertDemoBatteryTx(ctx, tx, node, field.ID)
		if err != nil {
			return err
		}
		if err := insertDemoMetersTx(ctx, tx, node, battery.ID); err != nil {
			return err
		}
		return insertDemoStationMetersTx(ctx, tx, node)
	})
}

func ensureDemoFieldTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (fielddomain.Field, bool, error) {
	var field fielddomain.Field
	err := tx.WithContext(ctx).Where("name = ?", demoFieldName).First(&field).Error
	if err == nil {
		return field, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return field, false, err
	}
	now := time.Now().UTC()
	field = fielddomain.Field{
		ID:        node.Generate(),
		Name:      demoFieldName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&field).Error; err != nil {
		return field, false, err
	}
	return field, true, nil
}

func insertDemoBatteryTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, fieldID snowflake.ID) (batterydomain.Battery, error) {
	now := time.Now().UTC()
	battery := batterydomain.Battery{
		ID:        node.Generate(),
		FieldID:   fieldID,
		Name:      demoBatteryName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&battery).Error; err != nil {
		return battery, err
	}
	return battery, nil
}

func insertDemoMetersTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, batteryID snowflake.ID) error {
	now := time.Now().UTC()
	lastTest := schedule.Day(now.AddDate(0, -1, 0))

	specs := []struct {
		name      string
		frequency string
	}{
		{"Sales Meter 1", schedule.FreqMonthly},
		{"Check Meter 2", schedule.FreqQuarterly},
	}

	for _, sp := range specs {
		last := lastTest
		m := meterdomain.Meter{
			ID:             node.Generate(),
			BatteryID:      batteryID,
			Name:           sp.name,
			Frequency:      sp.frequency,
			LastTestDate:   &last,
			NextInspection: schedule.NextInspection(&last, sp.frequency),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertDemoStationMetersTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	testDate := schedule.Day(now.AddDate(0, -2, 0))

	m := stationdomain.Meter{
		ID:        node.Generate(),
		Station:   stationdomain.StationEagleville,
		MeterName: "Inlet Meter",
		TestDate:  &testDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&m).Error
}
