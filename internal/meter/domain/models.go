package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Meter is a physical measurement device tracked for inspection compliance.
//
// H2SPPM is stored as opaque text on purpose: operators enter readings like
// "12", "<1" or "trace" and the source system accepted all of them. Do not
// coerce it to a number.
//
// NextInspection is derived from (LastTestDate, Frequency) and recomputed on
// every write that touches either; it is persisted so the due view can filter
// in SQL.
type Meter struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	BatteryID        snowflake.ID `json:"battery_id" gorm:"column:battery_id;not null;index:ix_meters_battery"`
	Name             string       `json:"name" gorm:"type:text;not null"`
	FlowCalID        *string      `json:"flow_cal_id" gorm:"type:text"`
	MeterType        *string      `json:"meter_type" gorm:"type:text"`
	MeterAddress     *string      `json:"meter_address" gorm:"type:text"`
	SerialNumber     *string      `json:"serial_number" gorm:"type:text"`
	TubeSerialNumber *string      `json:"tube_serial_number" gorm:"type:text"`
	TubeSize         *string      `json:"tube_size" gorm:"type:text"`
	OrificePlateSize *string      `json:"orifice_plate_size" gorm:"type:text"`
	H2SPPM           *string      `json:"h2s_ppm" gorm:"column:h2s_ppm;type:text"`
	Notes            *string      `json:"notes" gorm:"type:text"`
	Frequency        string       `json:"frequency" gorm:"type:text"`
	LastTestDate     *time.Time   `json:"last_test_date" gorm:"type:date"`
	NextInspection   *time.Time   `json:"next_inspection" gorm:"type:date;index:ix_meters_next_inspection"`
	CreatedAt        time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Meter) TableName() string { return "meters" }
