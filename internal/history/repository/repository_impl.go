package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() historydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *historydomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO meter_history (id, meter_id, event_date, h2s_ppm, notes, created_via, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.MeterID,
		e.EventDate,
		e.H2SPPM,
		e.Notes,
		e.CreatedVia,
		e.CreatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM meter_history WHERE id = ?`, id).Error
}

func (r *repo) DeleteByMeter(ctx context.Context, db *gorm.DB, meterID snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM meter_history WHERE meter_id = ?`, meterID).Error
}

func (r *repo) DeleteByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM meter_history
		 WHERE meter_id IN (SELECT id FROM meters WHERE battery_id = ?)`,
		batteryID,
	).Error
}

func (r *repo) DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM meter_history
		 WHERE meter_id IN (
		   SELECT m.id FROM meters m
		   JOIN batteries b ON b.id = m.battery_id
		   WHERE b.field_id = ?
		 )`,
		fieldID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*historydomain.Entry, error) {
	var entry historydomain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT id, meter_id, event_date, h2s_ppm, notes, created_via, created_at
		 FROM meter_history WHERE id = ?`,
		id,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, nil
	}
	return &entry, nil
}

func (r *repo) ListByMeter(ctx context.Context, db *gorm.DB, meterID snowflake.ID) ([]historydomain.Entry, error) {
	var entries []historydomain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT id, meter_id, event_date, h2s_ppm, notes, created_via, created_at
		 FROM meter_history WHERE meter_id = ?
		 ORDER BY event_date DESC, created_at DESC`,
		meterID,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
