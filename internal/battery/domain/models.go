package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Battery is a central tank battery grouping meters within a field.
type Battery struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	FieldID   snowflake.ID `json:"field_id" gorm:"column:field_id;not null;index:ix_batteries_field"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Battery) TableName() string { return "batteries" }
