package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Field is a top-level site grouping, e.g. a named oil/gas field.
type Field struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null;uniqueIndex:ux_fields_name"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Field) TableName() string { return "fields" }
