package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByBattery(ctx context.Context, batteryID string) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	// MarkTested records "tested today": sets the last test date to the
	// current date, rolls next inspection forward and appends one history
	// row, all in one transaction.
	MarkTested(ctx context.Context, req MarkTestedRequest) (*Response, error)
}

// Dates cross the API boundary as strings so the lenient multi-format parser
// can be applied uniformly; blank or unparseable values degrade to "no date".
type CreateRequest struct {
	BatteryID        string  `json:"battery_id"`
	Name             string  `json:"name"`
	FlowCalID        *string `json:"flow_cal_id"`
	MeterType        *string `json:"meter_type"`
	MeterAddress     *string `json:"meter_address"`
	SerialNumber     *string `json:"serial_number"`
	TubeSerialNumber *string `json:"tube_serial_number"`
	TubeSize         *string `json:"tube_size"`
	OrificePlateSize *string `json:"orifice_plate_size"`
	H2SPPM           *string `json:"h2s_ppm"`
	Notes            *string `json:"notes"`
	Frequency        string  `json:"frequency"`
	LastTestDate     string  `json:"last_test_date"`
}

type UpdateRequest struct {
	ID               string  `json:"id"`
	Name             *string `json:"name,omitempty"`
	FlowCalID        *string `json:"flow_cal_id,omitempty"`
	MeterType        *string `json:"meter_type,omitempty"`
	MeterAddress     *string `json:"meter_address,omitempty"`
	SerialNumber     *string `json:"serial_number,omitempty"`
	TubeSerialNumber *string `json:"tube_serial_number,omitempty"`
	TubeSize         *string `json:"tube_size,omitempty"`
	OrificePlateSize *string `json:"orifice_plate_size,omitempty"`
	H2SPPM           *string `json:"h2s_ppm,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Frequency        *string `json:"frequency,omitempty"`
	LastTestDate     *string `json:"last_test_date,omitempty"`
	// LogHistory appends an "edit" history row alongside the update. The
	// history write never feeds back into the schedule fields.
	LogHistory  bool    `json:"log_history,omitempty"`
	HistoryNote *string `json:"history_note,omitempty"`
}

type MarkTestedRequest struct {
	ID string `json:"id"`
	// H2SPPM empty means "no new sample, keep the stored value".
	H2SPPM string `json:"h2s_ppm"`
	// Reason is one of the quick-reason codes; the placeholder means "no
	// reason" and anything else passes through as free text.
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

type Response struct {
	ID               string    `json:"id"`
	BatteryID        string    `json:"battery_id"`
	Name             string    `json:"name"`
	FlowCalID        *string   `json:"flow_cal_id"`
	MeterType        *string   `json:"meter_type"`
	MeterAddress     *string   `json:"meter_address"`
	SerialNumber     *string   `json:"serial_number"`
	TubeSerialNumber *string   `json:"tube_serial_number"`
	TubeSize         *string   `json:"tube_size"`
	OrificePlateSize *string   `json:"orifice_plate_size"`
	H2SPPM           *string   `json:"h2s_ppm"`
	Notes            *string   `json:"notes"`
	Frequency        string    `json:"frequency"`
	LastTestDate     *string   `json:"last_test_date"`
	NextInspection   *string   `json:"next_inspection"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var (
	ErrInvalidBattery = errors.New("invalid_battery")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
