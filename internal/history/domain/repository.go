package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *Entry) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByMeter(ctx context.Context, db *gorm.DB, meterID snowflake.ID) error
	DeleteByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) error
	DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Entry, error)
	ListByMeter(ctx context.Context, db *gorm.DB, meterID snowflake.ID) ([]Entry, error)
}
