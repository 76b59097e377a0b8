package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByField(ctx context.Context, fieldID string) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	// Delete removes the battery together with its meters and their history
	// in one transaction.
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	FieldID string `json:"field_id"`
	Name    string `json:"name"`
}

type UpdateRequest struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
}

type Response struct {
	ID        string    `json:"id"`
	FieldID   string    `json:"field_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidField = errors.New("invalid_field")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
