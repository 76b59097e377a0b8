package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByStation(ctx context.Context, station string) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Station          string  `json:"station"`
	MeterName        string  `json:"meter_name"`
	FlowCalID        *string `json:"flow_cal_id"`
	TestDate         string  `json:"test_date"`
	H2SPPM           *string `json:"h2s_ppm"`
	MeterType        *string `json:"meter_type"`
	MeterAddress     *string `json:"meter_address"`
	SerialNumber     *string `json:"serial_number"`
	TubeSerialNumber *string `json:"tube_serial_number"`
	TubeSize         *string `json:"tube_size"`
	OrificePlateSize *string `json:"orifice_plate_size"`
	Notes            *string `json:"notes"`
}

// Update mirrors the legacy edit form: every submitted value overwrites the
// stored one, except a blank meter name keeps the old name.
type UpdateRequest struct {
	ID               string  `json:"id"`
	Station          string  `json:"station"`
	MeterName        string  `json:"meter_name"`
	FlowCalID        *string `json:"flow_cal_id"`
	TestDate         string  `json:"test_date"`
	H2SPPM           *string `json:"h2s_ppm"`
	MeterType        *string `json:"meter_type"`
	MeterAddress     *string `json:"meter_address"`
	SerialNumber     *string `json:"serial_number"`
	TubeSerialNumber *string `json:"tube_serial_number"`
	TubeSize         *string `json:"tube_size"`
	OrificePlateSize *string `json:"orifice_plate_size"`
	Notes            *string `json:"notes"`
}

type Response struct {
	ID               string    `json:"id"`
	Station          string    `json:"station"`
	MeterName        string    `json:"meter_name"`
	FlowCalID        *string   `json:"flow_cal_id"`
	TestDate         *string   `json:"test_date"`
	H2SPPM           *string   `json:"h2s_ppm"`
	MeterType        *string   `json:"meter_type"`
	MeterAddress     *string   `json:"meter_address"`
	SerialNumber     *string   `json:"serial_number"`
	TubeSerialNumber *string   `json:"tube_serial_number"`
	TubeSize         *string   `json:"tube_size"`
	OrificePlateSize *string   `json:"orifice_plate_size"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var (
	ErrInvalidStation = errors.New("invalid_station")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
