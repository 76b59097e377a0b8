package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/schedule"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, meter *Meter) error
	Update(ctx context.Context, db *gorm.DB, meter *Meter) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) error
	DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Meter, error)
	ListByBattery(ctx context.Context, db *gorm.DB, batteryID snowflake.ID) ([]Meter, error)
	List(ctx context.Context, db *gorm.DB) ([]Meter, error)
	// ListScheduled returns every meter with an active schedule, flattened
	// with its battery and field names for the due/overdue classifier.
	ListScheduled(ctx context.Context, db *gorm.DB) ([]schedule.Entry, error)
}
