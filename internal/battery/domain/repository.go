package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, battery *Battery) error
	Update(ctx context.Context, db *gorm.DB, battery *Battery) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Battery, error)
	ListByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) ([]Battery, error)
	List(ctx context.Context, db *gorm.DB) ([]Battery, error)
}
