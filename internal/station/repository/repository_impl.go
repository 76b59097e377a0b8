package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() stationdomain.Repository {
	return &repo{}
}

const stationColumns = `id, station, meter_name, flow_cal_id, test_date, h2s_ppm,
	 meter_type, meter_address, serial_number, tube_serial_number,
	 tube_size, orifice_plate_size, notes, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *stationdomain.Meter) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO station_meters (`+stationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Station,
		m.MeterName,
		m.FlowCalID,
		m.TestDate,
		m.H2SPPM,
		m.MeterType,
		m.MeterAddress,
		m.SerialNumber,
		m.TubeSerialNumber,
		m.TubeSize,
		m.OrificePlateSize,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *stationdomain.Meter) error {
	return db.WithContext(ctx).Exec(
		`UPDATE station_meters
		 SET station = ?, meter_name = ?, flow_cal_id = ?, test_date = ?,
		     h2s_ppm = ?, meter_type = ?, meter_address = ?, serial_number = ?,
		     tube_serial_number = ?, tube_size = ?, orifice_plate_size = ?,
		     notes = ?, updated_at = ?
		 WHERE id = ?`,
		m.Station,
		m.MeterName,
		m.FlowCalID,
		m.TestDate,
		m.H2SPPM,
		m.MeterType,
		m.MeterAddress,
		m.SerialNumber,
		m.TubeSerialNumber,
		m.TubeSize,
		m.OrificePlateSize,
		m.Notes,
		m.UpdatedAt,
		m.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM station_meters WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*stationdomain.Meter, error) {
	var meter stationdomain.Meter
	err := db.WithContext(ctx).Raw(
		`SELECT `+stationColumns+` FROM station_meters WHERE id = ?`,
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

func (r *repo) ListByStation(ctx context.Context, db *gorm.DB, station string) ([]stationdomain.Meter, error) {
	var meters []stationdomain.Meter
	err := db.WithContext(ctx).Raw(
		`SELECT `+stationColumns+` FROM station_meters
		 WHERE station = ? ORDER BY meter_name ASC`,
		station,
	).Scan(&meters).Error
	if err != nil {
		return nil, err
	}
	return meters, nil
}
