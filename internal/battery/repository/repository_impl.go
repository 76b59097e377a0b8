package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() batterydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, b *batterydomain.Battery) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO batteries (id, field_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID,
		b.FieldID,
		b.Name,
		b.CreatedAt,
		b.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, b *batterydomain.Battery) error {
	return db.WithContext(ctx).Exec(
		`UPDATE batteries SET name = ?, updated_at = ? WHERE id = ?`,
		b.Name,
		b.UpdatedAt,
		b.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM batteries WHERE id = ?`, id).Error
}

func (r *repo) DeleteByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM batteries WHERE field_id = ?`, fieldID).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*batterydomain.Battery, error) {
	var battery batterydomain.Battery
	err := db.WithContext(ctx).Raw(
		`SELECT id, field_id, name, created_at, updated_at FROM batteries WHERE id = ?`,
		id,
	).Scan(&battery).Error
	if err != nil {
		return nil, err
	}
	if battery.ID == 0 {
		return nil, nil
	}
	return &battery, nil
}

func (r *repo) ListByField(ctx context.Context, db *gorm.DB, fieldID snowflake.ID) ([]batterydomain.Battery, error) {
	var batteries []batterydomain.Battery
	err := db.WithContext(ctx).Raw(
		`SELECT id, field_id, name, created_at, updated_at
		 FROM batteries WHERE field_id = ? ORDER BY name ASC`,
		fieldID,
	).Scan(&batteries).Error
	if err != nil {
		return nil, err
	}
	return batteries, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]batterydomain.Battery, error) {
	var batteries []batterydomain.Battery
	err := db.WithContext(ctx).Raw(
		`SELECT id, field_id, name, created_at, updated_at
		 FROM batteries ORDER BY name ASC`,
	).Scan(&batteries).Error
	if err != nil {
		return nil, err
	}
	return batteries, nil
}
