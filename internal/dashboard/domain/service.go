package domain

import (
	"context"

	"github.com/fieldops/meterwatch/internal/schedule"
)

type Service interface {
	// Home returns the full field/battery/meter tree plus the weekly
	// due/overdue lists.
	Home(ctx context.Context) (*HomeView, error)
	// Due returns only the weekly due/overdue lists.
	Due(ctx context.Context) (*DueView, error)
}

// DueView carries the weekly classification. The window is recomputed per
// request from the clock, never cached.
type DueView struct {
	Overdue   []schedule.Entry `json:"overdue"`
	DueWeek   []schedule.Entry `json:"due_week"`
	WeekStart string           `json:"week_start"`
	WeekEnd   string           `json:"week_end"`
}

type HomeView struct {
	Fields []FieldNode `json:"fields_tree"`
	DueView
}

type FieldNode struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Batteries []BatteryNode `json:"batteries"`
}

type BatteryNode struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Meters []MeterNode `json:"meters"`
}

type MeterNode struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Frequency      string  `json:"frequency"`
	H2SPPM         *string `json:"h2s_ppm"`
	LastTestDate   *string `json:"last_test_date"`
	NextInspection *string `json:"next_inspection"`
}
