package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	"github.com/fieldops/meterwatch/internal/schedule"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() meterdomain.Repository {
	return &repo{}
}

const meterColumns = `id, battery_id, name, flow_cal_id, meter_type, meter_address,
	 serial_number, tube_serial_number, tube_size, orifice_plate_size,
	 h2s_ppm, notes, frequency, last_test_date, next_inspection, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *meterdomain.Meter) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO meters (`+meterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.BatteryID,
		m.Name,
		m.FlowCalID,
		m.MeterType,
		m.MeterAddress,
		m.SerialNumber,
		m.TubeSerialNumber,
		m.TubeSize,
		m.OrificePlateSize,
		m.H2SPPM,
		m.Notes,
		m.Frequency,
		m.LastTestDate,
		m.NextInspection,
		m.CreatedAt,
		m.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *meterdomain.Meter) error {
	return db.WithContext(ctx).Exec(
		`UPDATE meters
		 SET name = ?, flow_cal_id = ?, meter_type = ?, meter_address = ?,
		     serial_number = ?, tube_serial_number = ?, tube_size = ?,
		     orifice_plate_size = ?, h2s_ppm = ?, notes = ?, frequency = ?,
		     last_test_date = ?, next_inspection = ?, updated_at = ?
		 WHERE id = ?`,
		m.Name,
		m.FlowCalID,
		m.MeterType,
		m.MeterAddress,
		m.SerialNumber,
		m.TubeSerialNumber,
		m.TubeSize,
		m.OrificePlateSize,
		m.H2SPPM,
		m.Notes,
		m.Frequency,
		m.LastTestDate,
		m.NextInspection,
		m.UpdatedAt,
		m.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM meters WHERE id = ?`, id).Error
}

func (r *repo) DeleteByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM meters WHERE battery_id = ?`, batteryID).Error
}

func (r *repo) DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM meters WHERE battery_id IN (SELECT id FROM batteries WHERE field_id = ?)`,
		fieldID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*meterdomain.Meter, error) {
	var meter meterdomain.Meter
	err := db.WithContext(ctx).Raw(
		`SELECT `+meterColumns+` FROM meters WHERE id = ?`,
		id,
	).Scan(&meter).Error
	if err != nil {
		return nil, err
	}
	if meter.ID == 0 {
		return nil, nil
	}
	return &meter, nil
}

func (r *repo) ListByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) ([]meterdomain.Meter, error) {
	var meters []meterdomain.Meter
	err := db.WithContext(ctx).Raw(
		`SELECT `+meterColumns+` FROM meters WHERE battery_id = ? ORDER BY name ASC`,
		batteryID,
	).Scan(&meters).Error
	if err != nil {
		return nil, err
	}
	return meters, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]meterdomain.Meter, error) {
	var meters []meterdomain.Meter
	err := db.WithContext(ctx).Raw(
		`SELECT ` + meterColumns + ` FROM meters ORDER BY name ASC`,
	).Scan(&meters).Error
	if err != nil {
		return nil, err
	}
	return meters, nil
}

type scheduledRow struct {
	MeterID        int64      `gorm:"column:meter_id"`
	MeterName      string     `gorm:"column:meter_name"`
	BatteryName    string     `gorm:"column:battery_name"`
	FieldName      string     `gorm:"column:field_name"`
	Frequency      string     `gorm:"column:frequency"`
	H2SPPM         *string    `gorm:"column:h2s_ppm"`
	LastTestDate   *time.Time `gorm:"column:last_test_date"`
	NextInspection *time.Time `gorm:"column:next_inspection"`
}

func (r *repo) ListScheduled(ctx context.Context, db *gorm.DB) ([]schedule.Entry, error) {
	var rows []scheduledRow
	err := db.WithContext(ctx).Raw(
		`SELECT m.id AS meter_id, m.name AS meter_name,
		        b.name AS battery_name, f.name AS field_name,
		        m.frequency, m.h2s_ppm, m.last_test_date, m.next_inspection
		 FROM meters m
		 JOIN batteries b ON b.id = m.battery_id
		 JOIN fields f ON f.id = b.field_id
		 WHERE m.frequency <> '' AND m.frequency <> ?
		   AND m.next_inspection IS NOT NULL`,
		schedule.FreqOutOfService,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]schedule.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, schedule.Entry{
			MeterID:        row.MeterID,
			MeterName:      row.MeterName,
			BatteryName:    row.BatteryName,
			FieldName:      row.FieldName,
			Frequency:      row.Frequency,
			H2SPPM:         row.H2SPPM,
			LastTestDate:   row.LastTestDate,
			NextInspection: row.NextInspection,
		})
	}
	return entries, nil
}
