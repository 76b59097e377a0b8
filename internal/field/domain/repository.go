package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, field *Field) error
	Update(ctx context.Context, db *gorm.DB, field *Field) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Field, error)
	List(ctx context.Context, db *gorm.DB) ([]Field, error)
}
