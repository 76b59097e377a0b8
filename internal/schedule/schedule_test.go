package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestAddMonthsClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{"leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"non-leap february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"mid month unchanged", date(2024, time.March, 15), 3, date(2024, time.June, 15)},
		{"year carry", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"thirty day month", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"twelve months", date(2023, time.February, 28), 12, date(2024, time.February, 28)},
		{"zero months", date(2024, time.July, 4), 0, date(2024, time.July, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonths(tc.in, tc.months))
		})
	}
}

func TestIntervalMonths(t *testing.T) {
	for freq, want := range map[string]int{
		FreqMonthly:    1,
		FreqQuarterly:  3,
		FreqSemiannual: 6,
		FreqAnnual:     12,
	} {
		got, ok := IntervalMonths(freq)
		assert.True(t, ok, freq)
		assert.Equal(t, want, got, freq)
	}

	for _, freq := range []string{"", FreqOutOfService, "Biweekly"} {
		_, ok := IntervalMonths(freq)
		assert.False(t, ok, freq)
	}
}

func TestNextInspection(t *testing.T) {
	assert.Nil(t, NextInspection(nil, FreqMonthly))
	assert.Nil(t, NextInspection(datePtr(2024, time.March, 15), ""))
	assert.Nil(t, NextInspection(datePtr(2024, time.March, 15), FreqOutOfService))
	assert.Nil(t, NextInspection(datePtr(2024, time.March, 15), "Fortnightly"))

	next := NextInspection(datePtr(2024, time.March, 15), FreqQuarterly)
	require.NotNil(t, next)
	assert.Equal(t, date(2024, time.June, 15), *next)

	next = NextInspection(datePtr(2023, time.January, 1), FreqAnnual)
	require.NotNil(t, next)
	assert.Equal(t, date(2024, time.January, 1), *next)
}

func TestWeekBounds(t *testing.T) {
	// A full week of reference days maps onto the same Monday..Sunday window.
	for i := 0; i < 7; i++ {
		ref := date(2024, time.April, 15).AddDate(0, 0, i) // Mon Apr 15 .. Sun Apr 21
		monday, sunday := WeekBounds(ref)
		assert.Equal(t, date(2024, time.April, 15), monday)
		assert.Equal(t, date(2024, time.April, 21), sunday)
		assert.Equal(t, time.Monday, monday.Weekday())
		assert.False(t, ref.Before(monday))
		assert.False(t, ref.After(sunday))
	}

	// Sunday belongs to the week that started six days earlier.
	monday, sunday := WeekBounds(date(2024, time.April, 21))
	assert.Equal(t, date(2024, time.April, 15), monday)
	assert.Equal(t, date(2024, time.April, 21), sunday)
}

func TestClassifyPartitionsAndExcludes(t *testing.T) {
	weekStart, weekEnd := WeekBounds(date(2024, time.April, 17))

	entries := []Entry{
		{MeterID: 1, MeterName: "late", FieldName: "A", BatteryName: "B1", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 14)},
		{MeterID: 2, MeterName: "this week", FieldName: "A", BatteryName: "B1", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 17)},
		{MeterID: 3, MeterName: "future", FieldName: "A", BatteryName: "B1", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 26)},
		{MeterID: 4, MeterName: "parked", FieldName: "A", BatteryName: "B1", Frequency: FreqOutOfService, NextInspection: datePtr(2024, time.April, 14)},
		{MeterID: 5, MeterName: "no schedule", FieldName: "A", BatteryName: "B1", Frequency: FreqMonthly},
	}

	overdue, dueWeek := Classify(entries, weekStart, weekEnd)

	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].MeterID)
	require.Len(t, dueWeek, 1)
	assert.Equal(t, int64(2), dueWeek[0].MeterID)
}

func TestClassifyOrderingIsDeterministic(t *testing.T) {
	weekStart, weekEnd := WeekBounds(date(2024, time.April, 17))

	entries := []Entry{
		{MeterID: 1, MeterName: "zeta", FieldName: "North", BatteryName: "CTB-2", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 16)},
		{MeterID: 2, MeterName: "alpha", FieldName: "North", BatteryName: "CTB-2", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 16)},
		{MeterID: 3, MeterName: "mid", FieldName: "North", BatteryName: "CTB-1", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 18)},
		{MeterID: 4, MeterName: "early", FieldName: "East", BatteryName: "CTB-9", Frequency: FreqMonthly, NextInspection: datePtr(2024, time.April, 19)},
	}

	_, dueWeek := Classify(entries, weekStart, weekEnd)
	require.Len(t, dueWeek, 4)

	// Field name first, then battery, then date, then meter name.
	assert.Equal(t, []int64{4, 3, 2, 1}, []int64{dueWeek[0].MeterID, dueWeek[1].MeterID, dueWeek[2].MeterID, dueWeek[3].MeterID})

	// Same input in a different storage order sorts identically.
	shuffled := []Entry{entries[2], entries[0], entries[3], entries[1]}
	_, again := Classify(shuffled, weekStart, weekEnd)
	require.Len(t, again, 4)
	for i := range dueWeek {
		assert.Equal(t, dueWeek[i].MeterID, again[i].MeterID)
	}
}
