package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Add appends a manual ledger entry; it never touches the meter's
	// schedule fields.
	Add(ctx context.Context, req AddRequest) (*Response, error)
	ListByMeter(ctx context.Context, meterID string) ([]Response, error)
	Delete(ctx context.Context, id string) error
}

type AddRequest struct {
	MeterID   string  `json:"meter_id"`
	EventDate string  `json:"event_date"`
	H2SPPM    *string `json:"h2s_ppm"`
	Notes     *string `json:"notes"`
}

type Response struct {
	ID         string    `json:"id"`
	MeterID    string    `json:"meter_id"`
	EventDate  string    `json:"event_date"`
	H2SPPM     *string   `json:"h2s_ppm"`
	Notes      *string   `json:"notes"`
	CreatedVia string    `json:"created_via"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrInvalidMeter = errors.New("invalid_meter")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
