package schedule

import (
	"sort"
	"time"
)

// Entry is one meter with an active schedule, flattened with the names of its
// owning battery and field for display and ordering.
type Entry struct {
	MeterID        int64      `json:"meter_id"`
	MeterName      string     `json:"meter_name"`
	BatteryName    string     `json:"battery_name"`
	FieldName      string     `json:"field_name"`
	Frequency      string     `json:"frequency"`
	H2SPPM         *string    `json:"h2s_ppm,omitempty"`
	LastTestDate   *time.Time `json:"last_test_date,omitempty"`
	NextInspection *time.Time `json:"next_inspection"`
}

// Classify partitions entries into overdue (next inspection before the week)
// and due this week (inside the window). Entries without a usable schedule or
// due after the window are dropped. Both lists come back in a deterministic
// order regardless of storage order: field name, battery name, next
// inspection, meter name, all ascending and case-sensitive.
func Classify(entries []Entry, weekStart, weekEnd time.Time) (overdue, dueWeek []Entry) {
	overdue = make([]Entry, 0)
	dueWeek = make([]Entry, 0)
	for _, e := range entries {
		if e.Frequency == "" || e.Frequency == FreqOutOfService || e.NextInspection == nil {
			continue
		}
		next := Day(*e.NextInspection)
		switch {
		case next.Before(weekStart):
			overdue = append(overdue, e)
		case !next.After(weekEnd):
			dueWeek = append(dueWeek, e)
		}
	}
	sortEntries(overdue)
	sortEntries(dueWeek)
	return overdue, dueWeek
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.FieldName != b.FieldName {
			return a.FieldName < b.FieldName
		}
		if a.BatteryName != b.BatteryName {
			return a.BatteryName < b.BatteryName
		}
		an, bn := Day(*a.NextInspection), Day(*b.NextInspection)
		if !an.Equal(bn) {
			return an.Before(bn)
		}
		return a.MeterName < b.MeterName
	})
}
