package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() fielddomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, f *fielddomain.Field) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO fields (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		f.ID,
		f.Name,
		f.CreatedAt,
		f.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, f *fielddomain.Field) error {
	return db.WithContext(ctx).Exec(
		`UPDATE fields SET name = ?, updated_at = ? WHERE id = ?`,
		f.Name,
		f.UpdatedAt,
		f.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM fields WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*fielddomain.Field, error) {
	var field fielddomain.Field
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, created_at, updated_at FROM fields WHERE id = ?`,
		id,
	).Scan(&field).Error
	if err != nil {
		return nil, err
	}
	if field.ID == 0 {
		return nil, nil
	}
	return &field, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]fielddomain.Field, error) {
	var fields []fielddomain.Field
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, created_at, updated_at FROM fields ORDER BY name ASC`,
	).Scan(&fields).Error
	if err != nil {
		return nil, err
	}
	return fields, nil
}
