package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Allowed stations for the flat inventory table.
const (
	StationEagleville = "Eagleville"
	StationEagleford  = "Eagleford"
)

func AllowedStations() []string {
	return []string{StationEagleville, StationEagleford}
}

func IsAllowedStation(station string) bool {
	return station == StationEagleville || station == StationEagleford
}

// Meter is one row of the legacy per-station inventory. Unlike the
// hierarchical model there is no schedule here, just the recorded test date.
// H2SPPM stays opaque text for the same reason it does on the scheduled
// meters.
type Meter struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	Station          string       `json:"station" gorm:"type:text;not null;index:ix_station_meters_station"`
	MeterName        string       `json:"meter_name" gorm:"type:text;not null"`
	FlowCalID        *string      `json:"flow_cal_id" gorm:"type:text"`
	TestDate         *time.Time   `json:"test_date" gorm:"type:date"`
	H2SPPM           *string      `json:"h2s_ppm" gorm:"column:h2s_ppm;type:text"`
	MeterType        *string      `json:"meter_type" gorm:"type:text"`
	MeterAddress     *string      `json:"meter_address" gorm:"type:text"`
	SerialNumber     *string      `json:"serial_number" gorm:"type:text"`
	TubeSerialNumber *string      `json:"tube_serial_number" gorm:"type:text"`
	TubeSize         *string      `json:"tube_size" gorm:"type:text"`
	OrificePlateSize *string      `json:"orifice_plate_size" gorm:"type:text"`
	Notes            *string      `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Meter) TableName() string { return "station_meters" }
