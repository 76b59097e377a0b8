package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Provenance tags recording which workflow produced a history entry.
const (
	ViaManual     = "manual"
	ViaMarkTested = "mark_tested"
	ViaEdit       = "edit"
)

// Entry is one row of the append-only per-meter test ledger. Entries are
// created and deleted, never updated, and never feed back into the meter's
// schedule fields.
type Entry struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	MeterID    snowflake.ID `json:"meter_id" gorm:"column:meter_id;not null;index:ix_meter_history_meter"`
	EventDate  time.Time    `json:"event_date" gorm:"type:date;not null"`
	H2SPPM     *string      `json:"h2s_ppm" gorm:"column:h2s_ppm;type:text"`
	Notes      *string      `json:"notes" gorm:"type:text"`
	CreatedVia string       `json:"created_via" gorm:"type:text;not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "meter_history" }
